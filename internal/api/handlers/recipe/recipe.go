// Package recipe exposes recipe search/discovery and the per-user
// saved-recipe endpoints.
package recipe

import (
	"context"
	"net/http"
	"time"

	"fordinner/internal/api/middleware"
	"fordinner/internal/core/mealdb"
	recipeService "fordinner/internal/core/recipe"
	"fordinner/internal/models"
	"fordinner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Source is the external catalog surface used by the public discovery
// endpoints.
type Source interface {
	SearchByName(ctx context.Context, query string) ([]mealdb.Recipe, error)
	SearchByIngredient(ctx context.Context, ingredient string) ([]mealdb.Summary, error)
	SearchByCategory(ctx context.Context, category string) ([]mealdb.Summary, error)
	GetByID(ctx context.Context, mealID string) (*mealdb.Recipe, error)
	Random(ctx context.Context) (*mealdb.Recipe, error)
}

// SaveRequest is the save-recipe payload.
type SaveRequest struct {
	MealDBID string  `json:"mealDbId"`
	Notes    *string `json:"notes,omitempty"`
}

// SavedRecipeResponse is one entry of the saved list.
type SavedRecipeResponse struct {
	RecipeID               string    `json:"recipeId"`
	RecipeName             string    `json:"recipeName"`
	CuisineType            *string   `json:"cuisineType"`
	MealCategory           *string   `json:"mealCategory"`
	PreparationTimeMinutes *int      `json:"preparationTimeMinutes"`
	ImageURL               *string   `json:"imageUrl"`
	SavedDate              time.Time `json:"savedDate"`
	Notes                  *string   `json:"notes"`
}

// Handler serves the recipe endpoints.
type Handler struct {
	source         Source
	recipes        *recipeService.Service
	includeDetails bool
}

// NewHandler creates the recipe handler.
func NewHandler(source Source, recipes *recipeService.Service, includeDetails bool) *Handler {
	return &Handler{
		source:         source,
		recipes:        recipes,
		includeDetails: includeDetails,
	}
}

// HandleSearch proxies a search against the external catalog. Exactly
// one of query, ingredient or category must be provided.
func (h *Handler) HandleSearch(c *gin.Context) {
	query := c.Query("query")
	ingredient := c.Query("ingredient")
	category := c.Query("category")

	ctx := c.Request.Context()

	switch {
	case query != "":
		recipes, err := h.source.SearchByName(ctx, query)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(recipes), "recipes": recipes})
	case ingredient != "":
		summaries, err := h.source.SearchByIngredient(ctx, ingredient)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(summaries), "recipes": summaries})
	case category != "":
		summaries, err := h.source.SearchByCategory(ctx, category)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": len(summaries), "recipes": summaries})
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Please provide a search query, ingredient, or category",
		})
	}
}

// HandleGetByID returns full details of one external recipe.
func (h *Handler) HandleGetByID(c *gin.Context) {
	recipe, err := h.source.GetByID(c.Request.Context(), c.Param("mealId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// HandleRandom returns a random recipe from the external catalog.
func (h *Handler) HandleRandom(c *gin.Context) {
	recipe, err := h.source.Random(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// HandleSave imports the recipe into the local store if needed and
// links it to the authenticated user. 201 on a fresh save, 200 when the
// recipe was already on the user's list.
func (h *Handler) HandleSave(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("invalid save payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.recipes.SaveRecipe(c.Request.Context(), middleware.UserID(c), req.MealDBID, req.Notes)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if result.AlreadySaved {
		c.JSON(http.StatusOK, gin.H{
			"message":  "Recipe already in your saved recipes",
			"recipeId": result.RecipeID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Recipe saved successfully",
		"recipeId":   result.RecipeID,
		"recipeName": result.RecipeName,
	})
}

// HandleListSaved returns the authenticated user's saved recipes.
func (h *Handler) HandleListSaved(c *gin.Context) {
	recipes, err := h.recipes.ListSaved(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	responses := make([]SavedRecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		responses = append(responses, toSavedResponse(r))
	}

	c.JSON(http.StatusOK, gin.H{"count": len(responses), "recipes": responses})
}

// HandleUnsave removes a recipe from the user's saved list.
func (h *Handler) HandleUnsave(c *gin.Context) {
	recipeID := c.Param("recipeId")

	if err := h.recipes.UnsaveRecipe(c.Request.Context(), middleware.UserID(c), recipeID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Recipe removed from saved recipes",
		"recipeId": recipeID,
	})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status, resp := common.MapError(err, h.includeDetails)
	c.JSON(status, resp)
}

func toSavedResponse(r models.SavedRecipe) SavedRecipeResponse {
	return SavedRecipeResponse{
		RecipeID:               r.RecipeID,
		RecipeName:             r.RecipeName,
		CuisineType:            r.CuisineType,
		MealCategory:           r.MealCategory,
		PreparationTimeMinutes: r.PreparationTimeMinutes,
		ImageURL:               r.ImageURL,
		SavedDate:              r.SavedDate,
		Notes:                  r.Notes,
	}
}
