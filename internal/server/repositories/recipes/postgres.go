package recipes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recetario/internal/common"
	"github.com/dmitrijs2005/recetario/internal/dbx"
	"github.com/dmitrijs2005/recetario/internal/server/models"
)

const selectRecipes = `SELECT r.id, r.title, r.ingredients, r.instructions, r.instructions_format,
		r.country, r.type, r.image_url, r.cookbook_id, r.preparation_time_minutes,
		r.difficulty, r.notes, r.owner_id, r.created_at, u.username, u.email
	 FROM recipes r
	 JOIN users u ON u.id = r.owner_id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("encode ingredients: %w", err)
	}

	query :=
		`INSERT INTO recipes (title, ingredients, instructions, instructions_format, country, type,
			image_url, cookbook_id, preparation_time_minutes, difficulty, notes, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at`

	err = r.db.QueryRowContext(ctx, query,
		recipe.Title, string(ingredients), recipe.Instructions, recipe.InstructionsFormat,
		recipe.Country, recipe.Type, recipe.ImageURL, recipe.CookbookID,
		recipe.PreparationTimeMinutes, recipe.Difficulty, recipe.Notes, recipe.OwnerID,
	).Scan(&recipe.ID, &recipe.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return recipe, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Recipe, error) {
	row := r.db.QueryRowContext(ctx, selectRecipes+` WHERE r.id = $1`, id)

	recipe, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return recipe, nil
}

// List returns recipes ordered by id. Empty filter fields match everything.
func (r *PostgresRepository) List(ctx context.Context, filter models.RecipeFilter) ([]models.Recipe, error) {
	query := selectRecipes + `
	 WHERE ($1 = '' OR r.country = $1)
	   AND ($2 = '' OR r.type = $2)
	 ORDER BY r.id
	 OFFSET $3 LIMIT $4`

	return r.query(ctx, query, filter.Country, filter.Type, filter.Skip, filter.Limit)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Recipe, error) {
	return r.query(ctx, selectRecipes+` WHERE r.owner_id = $1 ORDER BY r.id`, ownerID)
}

func (r *PostgresRepository) ListByCookbooks(ctx context.Context, cookbookIDs []int64) ([]models.Recipe, error) {
	if len(cookbookIDs) == 0 {
		return []models.Recipe{}, nil
	}
	return r.query(ctx, selectRecipes+` WHERE r.cookbook_id = ANY($1) ORDER BY r.id`, cookbookIDs)
}

func (r *PostgresRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("encode ingredients: %w", err)
	}

	query :=
		`UPDATE recipes SET title = $1, ingredients = $2, instructions = $3, instructions_format = $4,
			country = $5, type = $6, image_url = $7, cookbook_id = $8,
			preparation_time_minutes = $9, difficulty = $10, notes = $11
		 WHERE id = $12`

	res, err := r.db.ExecContext(ctx, query,
		recipe.Title, string(ingredients), recipe.Instructions, recipe.InstructionsFormat,
		recipe.Country, recipe.Type, recipe.ImageURL, recipe.CookbookID,
		recipe.PreparationTimeMinutes, recipe.Difficulty, recipe.Notes, recipe.ID,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) AttachToCookbook(ctx context.Context, cookbookID, ownerID int64, recipeIDs []int64) error {
	if len(recipeIDs) == 0 {
		return nil
	}
	query :=
		`UPDATE recipes SET cookbook_id = $1
		 WHERE owner_id = $2 AND id = ANY($3)`

	if _, err := r.db.ExecContext(ctx, query, cookbookID, ownerID, recipeIDs); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DetachFromCookbook(ctx context.Context, cookbookID int64, keep []int64) error {
	if keep == nil {
		keep = []int64{}
	}
	query :=
		`UPDATE recipes SET cookbook_id = NULL
		 WHERE cookbook_id = $1 AND NOT (id = ANY($2))`

	if _, err := r.db.ExecContext(ctx, query, cookbookID, keep); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(s scanner) (*models.Recipe, error) {
	var (
		recipe      models.Recipe
		ingredients []byte
		owner       models.UserBasic
	)

	err := s.Scan(&recipe.ID, &recipe.Title, &ingredients, &recipe.Instructions, &recipe.InstructionsFormat,
		&recipe.Country, &recipe.Type, &recipe.ImageURL, &recipe.CookbookID, &recipe.PreparationTimeMinutes,
		&recipe.Difficulty, &recipe.Notes, &recipe.OwnerID, &recipe.CreatedAt, &owner.Username, &owner.Email)
	if err != nil {
		return nil, err
	}

	recipe.Ingredients = []models.Ingredient{}
	if len(ingredients) > 0 {
		if err := json.Unmarshal(ingredients, &recipe.Ingredients); err != nil {
			return nil, fmt.Errorf("decode ingredients of recipe %d: %w", recipe.ID, err)
		}
		if recipe.Ingredients == nil {
			recipe.Ingredients = []models.Ingredient{}
		}
	}

	owner.ID = recipe.OwnerID
	recipe.Owner = &owner
	return &recipe, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
