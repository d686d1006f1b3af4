// Package mealdb is the client for TheMealDB, the external read-only
// recipe catalog. It decodes the raw numbered-field payload once at this
// boundary and hands normalized records to the rest of the system.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"fordinner/internal/infrastructure/cache"
	"fordinner/internal/infrastructure/config"
	"fordinner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// maxNumberedIngredients is the number of strIngredientN/strMeasureN
// field pairs TheMealDB encodes per meal.
const maxNumberedIngredients = 20

// Client queries TheMealDB over HTTP.
type Client struct {
	client *resty.Client
	cache  *cache.Service
}

// NewClient creates a TheMealDB client with a bounded request timeout.
// The cache is optional; pass nil to always hit the network.
func NewClient(cfg config.MealDBConfig, cacheService *cache.Service) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)

	return &Client{
		client: client,
		cache:  cacheService,
	}
}

// SearchByName searches recipes by free-text name query.
func (c *Client) SearchByName(ctx context.Context, query string) ([]Recipe, error) {
	env, err := c.fetch(ctx, "/search.php", map[string]string{"s": query})
	if err != nil {
		return nil, err
	}

	recipes := make([]Recipe, 0, len(env.Meals))
	for _, meal := range env.Meals {
		recipes = append(recipes, transformMeal(meal))
	}
	return recipes, nil
}

// SearchByIngredient searches recipes containing an ingredient. The
// filter endpoint only carries id, name and thumbnail.
func (c *Client) SearchByIngredient(ctx context.Context, ingredient string) ([]Summary, error) {
	env, err := c.fetch(ctx, "/filter.php", map[string]string{"i": ingredient})
	if err != nil {
		return nil, err
	}
	return transformSummaries(env), nil
}

// SearchByCategory searches recipes by meal category.
func (c *Client) SearchByCategory(ctx context.Context, category string) ([]Summary, error) {
	env, err := c.fetch(ctx, "/filter.php", map[string]string{"c": category})
	if err != nil {
		return nil, err
	}
	return transformSummaries(env), nil
}

// GetByID fetches one recipe by its external id. Returns
// common.ErrRecipeNotFound when the source has no match.
func (c *Client) GetByID(ctx context.Context, mealID string) (*Recipe, error) {
	if recipe := c.cacheLookup(ctx, mealID); recipe != nil {
		return recipe, nil
	}

	env, err := c.fetch(ctx, "/lookup.php", map[string]string{"i": mealID})
	if err != nil {
		return nil, err
	}

	if len(env.Meals) == 0 {
		return nil, common.ErrRecipeNotFound
	}

	recipe := transformMeal(env.Meals[0])
	c.cacheStore(ctx, mealID, &recipe)
	return &recipe, nil
}

// Random fetches a random recipe.
func (c *Client) Random(ctx context.Context) (*Recipe, error) {
	env, err := c.fetch(ctx, "/random.php", nil)
	if err != nil {
		return nil, err
	}

	if len(env.Meals) == 0 {
		return nil, common.ErrRecipeNotFound
	}

	recipe := transformMeal(env.Meals[0])
	return &recipe, nil
}

// fetch performs one GET against TheMealDB. Any transport or remote-side
// failure surfaces as a single "source unavailable" error; no retries.
func (c *Client) fetch(ctx context.Context, path string, params map[string]string) (*mealsEnvelope, error) {
	req := c.client.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(path)
	if err != nil {
		common.LogError("TheMealDB request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, common.WrapError(common.ErrSourceUnavailable, err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("TheMealDB returned unexpected status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, common.WrapError(common.ErrSourceUnavailable,
			fmt.Errorf("unexpected status %d", resp.StatusCode()))
	}

	var env mealsEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, common.WrapError(common.ErrSourceUnavailable, err)
	}

	return &env, nil
}

// transformMeal collapses the numbered ingredient/measure field pairs
// into an ordered slice, skipping pairs whose name is blank after
// trimming, and normalizes the optional fields.
func transformMeal(meal map[string]*string) Recipe {
	ingredients := make([]IngredientMeasure, 0, maxNumberedIngredients)
	for i := 1; i <= maxNumberedIngredients; i++ {
		name := field(meal, "strIngredient"+strconv.Itoa(i))
		if name == nil {
			continue
		}
		ingredients = append(ingredients, IngredientMeasure{
			Name:    *name,
			Measure: fieldOr(meal, "strMeasure"+strconv.Itoa(i)),
		})
	}

	var tags []string
	if raw := field(meal, "strTags"); raw != nil {
		tags = splitTags(*raw)
	} else {
		tags = []string{}
	}

	return Recipe{
		MealDBID:     fieldOr(meal, "idMeal"),
		Name:         fieldOr(meal, "strMeal"),
		Category:     field(meal, "strCategory"),
		Area:         field(meal, "strArea"),
		Instructions: field(meal, "strInstructions"),
		Thumbnail:    field(meal, "strMealThumb"),
		Tags:         tags,
		YoutubeURL:   field(meal, "strYoutube"),
		Ingredients:  ingredients,
		SourceURL:    field(meal, "strSource"),
	}
}

func transformSummaries(env *mealsEnvelope) []Summary {
	summaries := make([]Summary, 0, len(env.Meals))
	for _, meal := range env.Meals {
		summaries = append(summaries, Summary{
			MealDBID:  fieldOr(meal, "idMeal"),
			Name:      fieldOr(meal, "strMeal"),
			Thumbnail: field(meal, "strMealThumb"),
		})
	}
	return summaries
}

func (c *Client) cacheLookup(ctx context.Context, mealID string) *Recipe {
	if c.cache == nil {
		return nil
	}

	data, err := c.cache.Get(ctx, cacheKey(mealID))
	if err != nil {
		return nil
	}

	var recipe Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil
	}

	common.LogDebug("TheMealDB cache hit", zap.String("meal_id", mealID))
	return &recipe
}

func (c *Client) cacheStore(ctx context.Context, mealID string, recipe *Recipe) {
	if c.cache == nil {
		return
	}

	data, err := json.Marshal(recipe)
	if err != nil {
		return
	}

	if err := c.cache.Set(ctx, cacheKey(mealID), data); err != nil {
		common.LogWarn("TheMealDB cache store failed",
			zap.String("meal_id", mealID),
			zap.Error(err),
		)
	}
}

func cacheKey(mealID string) string {
	return "mealdb:lookup:" + mealID
}
