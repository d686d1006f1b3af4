package recipes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fordinner/internal/dbx"
	"fordinner/internal/models"
	"fordinner/internal/pkg/common"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Recipe, error) {
	query :=
		`SELECT recipe_id, recipe_name, cuisine_type, meal_category,
		        preparation_time_minutes, cooking_instructions, image_url, video_url, source
		 FROM recipes
		 WHERE recipe_id = $1
		 `

	recipe := &models.Recipe{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&recipe.ID, &recipe.Name, &recipe.CuisineType, &recipe.MealCategory,
		&recipe.PreparationTimeMinutes, &recipe.CookingInstructions,
		&recipe.ImageURL, &recipe.VideoURL, &recipe.Source)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return recipe, nil
}

// Insert relies on the recipe_id primary key as the safety net for
// concurrent importers: the loser's insert returns no row and reports
// false, and the caller re-reads the winner's row.
func (r *PostgresRepository) Insert(ctx context.Context, recipe *models.Recipe) (bool, error) {
	query :=
		`INSERT INTO recipes (recipe_id, recipe_name, cuisine_type, meal_category,
		        preparation_time_minutes, cooking_instructions, image_url, video_url, source)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (recipe_id) DO NOTHING
		 RETURNING recipe_id
		 `

	var id string
	err := r.db.QueryRowContext(ctx, query,
		recipe.ID, recipe.Name, recipe.CuisineType, recipe.MealCategory,
		recipe.PreparationTimeMinutes, recipe.CookingInstructions,
		recipe.ImageURL, recipe.VideoURL, recipe.Source).Scan(&id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}

	return true, nil
}

func (r *PostgresRepository) LinkIngredient(ctx context.Context, recipeID string, ingredientID int64, quantity string) error {
	query :=
		`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity, unit)
		 VALUES ($1, $2, $3, NULL)
		 ON CONFLICT DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, recipeID, ingredientID, quantity); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
