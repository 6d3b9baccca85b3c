package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recetario/internal/common"
	"github.com/dmitrijs2005/recetario/internal/dbx"
	"github.com/dmitrijs2005/recetario/internal/server/models"
	"github.com/dmitrijs2005/recetario/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/recetario/internal/server/repositories/repomanager"
)

type CookbookService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCookbookService(db *sql.DB, m repomanager.RepositoryManager) *CookbookService {
	return &CookbookService{db: db, repomanager: m}
}

// fillRecipes loads the recipes of every cookbook with a single query.
func fillRecipes(ctx context.Context, repo recipes.Repository, cookbooks []models.Cookbook) error {
	if len(cookbooks) == 0 {
		return nil
	}

	ids := make([]int64, len(cookbooks))
	index := make(map[int64]int, len(cookbooks))
	for i, c := range cookbooks {
		ids[i] = c.ID
		index[c.ID] = i
		cookbooks[i].Recipes = []models.Recipe{}
	}

	list, err := repo.ListByCookbooks(ctx, ids)
	if err != nil {
		return fmt.Errorf("list cookbook recipes: %w", err)
	}
	for _, r := range list {
		if r.CookbookID == nil {
			continue
		}
		if i, ok := index[*r.CookbookID]; ok {
			cookbooks[i].Recipes = append(cookbooks[i].Recipes, r)
		}
	}
	return nil
}

func (s *CookbookService) List(ctx context.Context, filter models.CookbookFilter) ([]models.Cookbook, error) {
	if err := normalizePage(&filter.Skip, &filter.Limit); err != nil {
		return nil, err
	}
	cookbooks, err := s.repomanager.Cookbooks(s.db).List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list cookbooks: %w", err)
	}
	if err := fillRecipes(ctx, s.repomanager.Recipes(s.db), cookbooks); err != nil {
		return nil, err
	}
	return cookbooks, nil
}

func (s *CookbookService) Get(ctx context.Context, id int64) (*models.Cookbook, error) {
	return s.get(ctx, s.db, id)
}

func (s *CookbookService) get(ctx context.Context, db dbx.DBTX, id int64) (*models.Cookbook, error) {
	cookbook, err := s.repomanager.Cookbooks(db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrCookbookNotFound
		}
		return nil, fmt.Errorf("get cookbook %d: %w", id, err)
	}

	list := []models.Cookbook{*cookbook}
	if err := fillRecipes(ctx, s.repomanager.Recipes(db), list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// Create stores the cookbook and links those of in.RecipeIDs that belong to
// user. Foreign or unknown ids are skipped.
func (s *CookbookService) Create(ctx context.Context, user *models.User, in models.CookbookInput) (*models.Cookbook, error) {
	if field, ok := in.Normalize(); !ok {
		return nil, invalidField(field)
	}

	var result *models.Cookbook
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		cookbook, err := s.repomanager.Cookbooks(tx).Create(ctx, &models.Cookbook{
			Title:       in.Title,
			Description: in.Description.Value,
			OwnerID:     user.ID,
		})
		if err != nil {
			return fmt.Errorf("error creating cookbook: %w", err)
		}

		if in.RecipeIDs != nil {
			if err := s.repomanager.Recipes(tx).AttachToCookbook(ctx, cookbook.ID, user.ID, *in.RecipeIDs); err != nil {
				return fmt.Errorf("attach recipes: %w", err)
			}
		}

		result, err = s.get(ctx, tx, cookbook.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Update changes the title, and the description when it was sent. A non-nil in.RecipeIDs replaces the
// recipe set: listed recipes of the cookbook owner are linked, the rest are
// unlinked.
func (s *CookbookService) Update(ctx context.Context, user *models.User, id int64, in models.CookbookInput) (*models.Cookbook, error) {
	if field, ok := in.Normalize(); !ok {
		return nil, invalidField(field)
	}

	var result *models.Cookbook
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		cookbook, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if cookbook.OwnerID != user.ID {
			return ErrCookbookEditForbidden
		}

		cookbook.Title = in.Title
		if in.Description.Set {
			cookbook.Description = in.Description.Value
		}
		if err := s.repomanager.Cookbooks(tx).Update(ctx, cookbook); err != nil {
			return fmt.Errorf("error updating cookbook: %w", err)
		}

		if in.RecipeIDs != nil {
			repo := s.repomanager.Recipes(tx)
			if err := repo.DetachFromCookbook(ctx, id, *in.RecipeIDs); err != nil {
				return fmt.Errorf("detach recipes: %w", err)
			}
			if err := repo.AttachToCookbook(ctx, id, cookbook.OwnerID, *in.RecipeIDs); err != nil {
				return fmt.Errorf("attach recipes: %w", err)
			}
		}

		result, err = s.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Delete removes a cookbook owned by user. Its recipes are kept.
func (s *CookbookService) Delete(ctx context.Context, user *models.User, id int64) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		cookbook, err := s.repomanager.Cookbooks(tx).Get(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return ErrCookbookNotFound
			}
			return fmt.Errorf("get cookbook %d: %w", id, err)
		}
		if cookbook.OwnerID != user.ID {
			return ErrCookbookDeleteForbidden
		}
		if err := s.repomanager.Cookbooks(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("error deleting cookbook: %w", err)
		}
		return nil
	})
}
