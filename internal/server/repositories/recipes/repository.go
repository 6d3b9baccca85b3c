package recipes

import (
	"context"

	"github.com/dmitrijs2005/recetario/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	Get(ctx context.Context, id int64) (*models.Recipe, error)
	List(ctx context.Context, filter models.RecipeFilter) ([]models.Recipe, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Recipe, error)
	ListByCookbooks(ctx context.Context, cookbookIDs []int64) ([]models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id int64) error
	// AttachToCookbook links the listed recipes owned by ownerID to the cookbook.
	AttachToCookbook(ctx context.Context, cookbookID, ownerID int64, recipeIDs []int64) error
	// DetachFromCookbook unlinks every recipe of the cookbook not listed in keep.
	DetachFromCookbook(ctx context.Context, cookbookID int64, keep []int64) error
}
