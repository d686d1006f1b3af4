package saved

import (
	"context"

	"fordinner/internal/models"
)

// Repository is the storage contract for per-user saved-recipe
// associations.
type Repository interface {
	Exists(ctx context.Context, userID, recipeID string) (bool, error)
	Insert(ctx context.Context, userID, recipeID string, notes *string) error
	// Delete removes an association, reporting whether a row existed.
	Delete(ctx context.Context, userID, recipeID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.SavedRecipe, error)
}
