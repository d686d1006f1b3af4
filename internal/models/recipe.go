package models

import "time"

// Recipe is the local cache of one external recipe. ID is the external
// source identifier reused verbatim; rows are immutable after insert.
type Recipe struct {
	ID                     string
	Name                   string
	CuisineType            *string
	MealCategory           *string
	PreparationTimeMinutes *int
	CookingInstructions    *string
	ImageURL               *string
	VideoURL               *string
	Source                 *string
}

// Ingredient is a deduplicated catalog entry.
type Ingredient struct {
	ID   int64
	Name string
}

// SavedRecipe is one row of a user's saved list, joined with the
// recipe it points at.
type SavedRecipe struct {
	RecipeID               string
	RecipeName             string
	CuisineType            *string
	MealCategory           *string
	PreparationTimeMinutes *int
	ImageURL               *string
	SavedDate              time.Time
	Notes                  *string
}
