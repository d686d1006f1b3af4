// Package recipe implements the save-recipe import pipeline: fetching
// an external recipe, caching it locally with deduplicated ingredient
// links, and associating it with a user — all in one transaction.
package recipe

import (
	"context"
	"database/sql"
	"errors"

	"fordinner/internal/core/mealdb"
	"fordinner/internal/dbx"
	"fordinner/internal/models"
	"fordinner/internal/pkg/common"
	"fordinner/internal/repository/repomanager"

	"go.uber.org/zap"
)

// RecipeSource is the external read-only catalog the importer pulls
// from.
type RecipeSource interface {
	GetByID(ctx context.Context, mealID string) (*mealdb.Recipe, error)
}

// SaveResult reports the outcome of a save request. AlreadySaved is a
// success outcome, not an error.
type SaveResult struct {
	RecipeID     string
	RecipeName   string
	AlreadySaved bool
}

// Service orchestrates recipe imports and per-user saved lists.
type Service struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	source RecipeSource
}

// NewService creates the recipe service.
func NewService(db *sql.DB, rm repomanager.RepositoryManager, source RecipeSource) *Service {
	return &Service{db: db, rm: rm, source: source}
}

// SaveRecipe imports the external recipe if needed and links it to the
// user, inside a single transaction. Saving an already-saved recipe is
// reported, not rejected.
func (s *Service) SaveRecipe(ctx context.Context, userID, mealDBID string, notes *string) (*SaveResult, error) {
	if mealDBID == "" {
		return nil, common.NewValidationError("recipe id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.WrapError(common.ErrTransaction, err)
	}
	defer tx.Rollback()

	recipe, err := s.importRecipe(ctx, tx, mealDBID)
	if err != nil {
		return nil, s.asSaveError(err)
	}

	savedRepo := s.rm.Saved(tx)

	exists, err := savedRepo.Exists(ctx, userID, recipe.ID)
	if err != nil {
		return nil, s.asSaveError(err)
	}

	if !exists {
		if err := savedRepo.Insert(ctx, userID, recipe.ID, notes); err != nil {
			return nil, s.asSaveError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, common.WrapError(common.ErrTransaction, err)
	}

	common.LogInfo("recipe save handled",
		zap.String("user_id", userID),
		zap.String("recipe_id", recipe.ID),
		zap.Bool("already_saved", exists),
	)

	return &SaveResult{
		RecipeID:     recipe.ID,
		RecipeName:   recipe.Name,
		AlreadySaved: exists,
	}, nil
}

// importRecipe ensures a local recipe row and its ingredient links
// exist, creating them if absent. It runs on the caller's transaction;
// any failure rolls the whole transaction back with it.
func (s *Service) importRecipe(ctx context.Context, tx dbx.DBTX, mealDBID string) (*models.Recipe, error) {
	recipesRepo := s.rm.Recipes(tx)

	// Already imported by some earlier save: no re-fetch, no re-link.
	existing, err := recipesRepo.Get(ctx, mealDBID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, common.ErrRecipeNotFound) {
		return nil, err
	}

	record, err := s.source.GetByID(ctx, mealDBID)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		ID:                     record.MealDBID,
		Name:                   record.Name,
		CuisineType:            record.Area,
		MealCategory:           record.Category,
		PreparationTimeMinutes: mealdb.EstimateCookingTime(record.Instructions),
		CookingInstructions:    record.Instructions,
		ImageURL:               record.Thumbnail,
		VideoURL:               record.YoutubeURL,
		Source:                 sourceLabel(record.SourceURL),
	}

	inserted, err := recipesRepo.Insert(ctx, recipe)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// A concurrent importer won the insert race; its links are its
		// responsibility, so just re-read the committed row.
		return recipesRepo.Get(ctx, mealDBID)
	}

	ingredientsRepo := s.rm.Ingredients(tx)
	for _, ing := range record.Ingredients {
		ingredientID, err := ingredientsRepo.Resolve(ctx, ing.Name)
		if err != nil {
			return nil, err
		}
		if err := recipesRepo.LinkIngredient(ctx, recipe.ID, ingredientID, ing.Measure); err != nil {
			return nil, err
		}
	}

	common.LogInfo("recipe imported",
		zap.String("recipe_id", recipe.ID),
		zap.Int("ingredients", len(record.Ingredients)),
	)

	return recipe, nil
}

// UnsaveRecipe removes an association. Deleting a non-existent
// association is a not-found failure, not a silent success.
func (s *Service) UnsaveRecipe(ctx context.Context, userID, recipeID string) error {
	deleted, err := s.rm.Saved(s.db).Delete(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !deleted {
		return common.ErrSavedNotFound
	}
	return nil
}

// ListSaved returns the user's saved recipes, most recent first.
func (s *Service) ListSaved(ctx context.Context, userID string) ([]models.SavedRecipe, error) {
	return s.rm.Saved(s.db).ListByUser(ctx, userID)
}

// asSaveError keeps not-found and upstream failures distinguishable;
// everything else inside the transaction surfaces as a single
// transaction error.
func (s *Service) asSaveError(err error) error {
	if ce, ok := common.AsCustomError(err); ok {
		if ce.Code == common.ErrCodeNotFound || ce.Code == common.ErrCodeUpstream {
			return err
		}
	}
	return common.WrapError(common.ErrTransaction, err)
}

func sourceLabel(sourceURL *string) *string {
	if sourceURL != nil {
		return sourceURL
	}
	label := "TheMealDB"
	return &label
}
