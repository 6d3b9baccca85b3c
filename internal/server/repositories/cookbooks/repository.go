package cookbooks

import (
	"context"

	"github.com/dmitrijs2005/recetario/internal/server/models"
)

// Repository stores cookbook rows. Recipes are attached by the recipes
// repository; cookbooks returned here carry no recipes.
type Repository interface {
	Create(ctx context.Context, cookbook *models.Cookbook) (*models.Cookbook, error)
	Get(ctx context.Context, id int64) (*models.Cookbook, error)
	List(ctx context.Context, filter models.CookbookFilter) ([]models.Cookbook, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Cookbook, error)
	Update(ctx context.Context, cookbook *models.Cookbook) error
	Delete(ctx context.Context, id int64) error
}
