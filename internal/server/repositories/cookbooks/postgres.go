package cookbooks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recetario/internal/common"
	"github.com/dmitrijs2005/recetario/internal/dbx"
	"github.com/dmitrijs2005/recetario/internal/server/models"
)

const selectCookbooks = `SELECT c.id, c.title, c.description, c.owner_id, c.created_at, u.username, u.email
	 FROM cookbooks c
	 JOIN users u ON u.id = c.owner_id`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, cookbook *models.Cookbook) (*models.Cookbook, error) {
	query :=
		`INSERT INTO cookbooks (title, description, owner_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, cookbook.Title, cookbook.Description, cookbook.OwnerID).
		Scan(&cookbook.ID, &cookbook.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cookbook, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Cookbook, error) {
	cookbook, err := scanCookbook(r.db.QueryRowContext(ctx, selectCookbooks+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cookbook, nil
}

// List matches filter.Search as a case-sensitive substring of the title.
func (r *PostgresRepository) List(ctx context.Context, filter models.CookbookFilter) ([]models.Cookbook, error) {
	query := selectCookbooks + `
	 WHERE ($1 = '' OR strpos(c.title, $1) > 0)
	 ORDER BY c.id
	 OFFSET $2 LIMIT $3`

	return r.query(ctx, query, filter.Search, filter.Skip, filter.Limit)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Cookbook, error) {
	return r.query(ctx, selectCookbooks+` WHERE c.owner_id = $1 ORDER BY c.id`, ownerID)
}

func (r *PostgresRepository) Update(ctx context.Context, cookbook *models.Cookbook) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cookbooks SET title = $1, description = $2 WHERE id = $3`,
		cookbook.Title, cookbook.Description, cookbook.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

// Delete removes the cookbook; its recipes stay and lose the link.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cookbooks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOne(res)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.Cookbook, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Cookbook{}
	for rows.Next() {
		cookbook, err := scanCookbook(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *cookbook)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCookbook(s scanner) (*models.Cookbook, error) {
	var (
		cookbook models.Cookbook
		owner    models.UserBasic
	)
	err := s.Scan(&cookbook.ID, &cookbook.Title, &cookbook.Description, &cookbook.OwnerID,
		&cookbook.CreatedAt, &owner.Username, &owner.Email)
	if err != nil {
		return nil, err
	}

	owner.ID = cookbook.OwnerID
	cookbook.Owner = &owner
	cookbook.Recipes = []models.Recipe{}
	return &cookbook, nil
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
