package recipes

import (
	"context"

	"fordinner/internal/models"
)

// Repository is the storage contract for the shared recipe catalog.
type Repository interface {
	Get(ctx context.Context, id string) (*models.Recipe, error)
	// Insert adds a recipe row. It reports false without error when a
	// concurrent transaction already inserted the same id.
	Insert(ctx context.Context, recipe *models.Recipe) (bool, error)
	// LinkIngredient attaches an ingredient to a recipe. Duplicate
	// links are a no-op, not an error.
	LinkIngredient(ctx context.Context, recipeID string, ingredientID int64, quantity string) error
}
