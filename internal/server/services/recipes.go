package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recetario/internal/common"
	"github.com/dmitrijs2005/recetario/internal/dbx"
	"github.com/dmitrijs2005/recetario/internal/server/models"
	"github.com/dmitrijs2005/recetario/internal/server/repositories/repomanager"
)

// DefaultLimit is the page size used when a list request names none.
const DefaultLimit = 100

type RecipeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRecipeService(db *sql.DB, m repomanager.RepositoryManager) *RecipeService {
	return &RecipeService{db: db, repomanager: m}
}

func normalizePage(skip, limit *int) error {
	if *skip < 0 {
		return invalidField("skip")
	}
	if *limit < 0 {
		return invalidField("limit")
	}
	if *limit == 0 {
		*limit = DefaultLimit
	}
	return nil
}

func (s *RecipeService) List(ctx context.Context, filter models.RecipeFilter) ([]models.Recipe, error) {
	if err := normalizePage(&filter.Skip, &filter.Limit); err != nil {
		return nil, err
	}
	recipes, err := s.repomanager.Recipes(s.db).List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

func (s *RecipeService) Get(ctx context.Context, id int64) (*models.Recipe, error) {
	return s.get(ctx, s.db, id)
}

func (s *RecipeService) get(ctx context.Context, db dbx.DBTX, id int64) (*models.Recipe, error) {
	recipe, err := s.repomanager.Recipes(db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("get recipe %d: %w", id, err)
	}
	return recipe, nil
}

// checkCookbook allows a recipe to reference only cookbooks owned by userID.
func (s *RecipeService) checkCookbook(ctx context.Context, db dbx.DBTX, userID int64, cookbookID *int64) error {
	if cookbookID == nil {
		return nil
	}
	cookbook, err := s.repomanager.Cookbooks(db).Get(ctx, *cookbookID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return ErrCookbookNotFound
		}
		return fmt.Errorf("get cookbook %d: %w", *cookbookID, err)
	}
	if cookbook.OwnerID != userID {
		return ErrForeignCookbook
	}
	return nil
}

func (s *RecipeService) Create(ctx context.Context, user *models.User, in models.RecipeInput) (*models.Recipe, error) {
	if field, ok := in.Normalize(); !ok {
		return nil, invalidField(field)
	}
	if err := s.checkCookbook(ctx, s.db, user.ID, in.CookbookID); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{OwnerID: user.ID}
	recipe.Apply(in)

	recipe, err := s.repomanager.Recipes(s.db).Create(ctx, recipe)
	if err != nil {
		return nil, fmt.Errorf("error creating recipe: %w", err)
	}
	recipe.Owner = user.Basic()

	return recipe, nil
}

// Update replaces every editable field of a recipe owned by user.
func (s *RecipeService) Update(ctx context.Context, user *models.User, id int64, in models.RecipeInput) (*models.Recipe, error) {
	if field, ok := in.Normalize(); !ok {
		return nil, invalidField(field)
	}

	var recipe *models.Recipe
	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		recipe, err = s.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if recipe.OwnerID != user.ID {
			return ErrRecipeEditForbidden
		}
		if err := s.checkCookbook(ctx, tx, user.ID, in.CookbookID); err != nil {
			return err
		}

		recipe.Apply(in)
		if err := s.repomanager.Recipes(tx).Update(ctx, recipe); err != nil {
			return fmt.Errorf("error updating recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return recipe, nil
}

func (s *RecipeService) Delete(ctx context.Context, user *models.User, id int64) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		recipe, err := s.get(ctx, tx, id)
		if err != nil {
			return err
		}
		if recipe.OwnerID != user.ID {
			return ErrRecipeDeleteForbidden
		}
		if err := s.repomanager.Recipes(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("error deleting recipe: %w", err)
		}
		return nil
	})
}
