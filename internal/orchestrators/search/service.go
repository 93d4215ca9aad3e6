// Package search builds the home view's suggestion list
package search

import (
	"context"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/services/statcache"
)

const (
	// BaseListLimit is the size of the listing searched against
	BaseListLimit = 151
	// MaxSuggestions caps the suggestion list
	MaxSuggestions = 20
)

// Service defines the home/search operations
type Service interface {
	// ListBase fetches the base listing that searches filter
	ListBase(ctx context.Context) ([]pokedex.EntrySummary, error)

	// ListCategories fetches every category name
	ListCategories(ctx context.Context) ([]pokedex.Category, error)

	// Search filters and sorts the base listing.
	// An empty query with no category short-circuits without any fetch.
	Search(ctx context.Context, input *SearchInput) (*SearchOutput, error)
}

// SearchInput holds the recompute triggers
type SearchInput struct {
	Base      []pokedex.EntrySummary
	Query     string
	Category  string
	SortBy    pokedex.SortKey
	SortOrder pokedex.SortOrder
	// StatCache resolves stats for stat sorts; required when SortBy is a stat
	StatCache statcache.Service
}

// Suggestion is one result row
type Suggestion struct {
	Name      string
	URL       string
	ID        string
	SpriteURL string
}

// SearchOutput is the computed projection
type SearchOutput struct {
	Suggestions []Suggestion
	NoResults   bool
	// Skipped reports the empty-input short circuit
	Skipped bool
}
