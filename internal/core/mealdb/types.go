package mealdb

import "strings"

// IngredientMeasure is one normalized (name, measure) pair from the
// numbered strIngredientN/strMeasureN fields.
type IngredientMeasure struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}

// Recipe is the normalized recipe record produced at the source-client
// boundary. Optional fields are nil when the source omits them, never "".
type Recipe struct {
	MealDBID     string              `json:"mealDbId"`
	Name         string              `json:"name"`
	Category     *string             `json:"category"`
	Area         *string             `json:"area"`
	Instructions *string             `json:"instructions"`
	Thumbnail    *string             `json:"thumbnail"`
	Tags         []string            `json:"tags"`
	YoutubeURL   *string             `json:"youtubeUrl"`
	Ingredients  []IngredientMeasure `json:"ingredients"`
	SourceURL    *string             `json:"sourceUrl"`
}

// Summary is the reduced record returned by the filter endpoints.
type Summary struct {
	MealDBID  string  `json:"mealDbId"`
	Name      string  `json:"name"`
	Thumbnail *string `json:"thumbnail"`
}

// mealsEnvelope is the raw TheMealDB payload. Every field value is a
// string or null, so a string-pointer map covers the whole shape.
type mealsEnvelope struct {
	Meals []map[string]*string `json:"meals"`
}

// field returns a trimmed field value, or nil when absent or blank.
func field(meal map[string]*string, key string) *string {
	v, ok := meal[key]
	if !ok || v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

// fieldOr returns a field value or the empty string when absent.
func fieldOr(meal map[string]*string, key string) string {
	if v := field(meal, key); v != nil {
		return *v
	}
	return ""
}

// splitTags splits the comma-separated strTags value, dropping blanks.
func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
