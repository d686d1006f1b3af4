package saved

import (
	"context"
	"fmt"

	"fordinner/internal/dbx"
	"fordinner/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Exists(ctx context.Context, userID, recipeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_saved_recipes WHERE user_id = $1 AND recipe_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, recipeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, userID, recipeID string, notes *string) error {
	query :=
		`INSERT INTO user_saved_recipes (user_id, recipe_id, notes)
		 VALUES ($1, $2, $3)
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, recipeID, notes); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, recipeID string) (bool, error) {
	query := `DELETE FROM user_saved_recipes WHERE user_id = $1 AND recipe_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, recipeID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.SavedRecipe, error) {
	query :=
		`SELECT r.recipe_id, r.recipe_name, r.cuisine_type, r.meal_category,
		        r.preparation_time_minutes, r.image_url, usr.saved_date, usr.notes
		 FROM user_saved_recipes usr
		 JOIN recipes r ON usr.recipe_id = r.recipe_id
		 WHERE usr.user_id = $1
		 ORDER BY usr.saved_date DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	recipes := make([]models.SavedRecipe, 0)
	for rows.Next() {
		var sr models.SavedRecipe
		if err := rows.Scan(&sr.RecipeID, &sr.RecipeName, &sr.CuisineType, &sr.MealCategory,
			&sr.PreparationTimeMinutes, &sr.ImageURL, &sr.SavedDate, &sr.Notes); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		recipes = append(recipes, sr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return recipes, nil
}
