package ingredients

import "context"

// Repository is the storage contract for the deduplicated ingredient
// catalog.
type Repository interface {
	// Resolve returns the catalog id for a name, creating the entry if
	// none exists. Matching is case-insensitive; the submitted casing
	// is preserved on first insert.
	Resolve(ctx context.Context, name string) (int64, error)
}
