// Package gallery builds the catalog grid
package gallery

import (
	"context"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/services/statcache"
)

const (
	// PageSize bounds the "all" listing request
	PageSize = 500
	// DisplayCap is the number of cards shown at once
	DisplayCap = 60
)

// Service defines the catalog operations
type Service interface {
	// ListCategories returns "all" followed by every category name
	ListCategories(ctx context.Context) ([]string, error)

	// ListEntries fetches the entries of one category, capped for display
	ListEntries(ctx context.Context, input *ListEntriesInput) (*ListEntriesOutput, error)
}

// ListEntriesInput selects a category and an optional ordering
type ListEntriesInput struct {
	// Category is a category name or pokedex.CategoryAll
	Category  string
	SortBy    pokedex.SortKey
	SortOrder pokedex.SortOrder
	// StatCache is required when SortBy is a stat
	StatCache statcache.Service
}

// ListEntriesOutput holds the displayed entries
type ListEntriesOutput struct {
	Entries []pokedex.EntrySummary
	// Total is the listing size before the display cap
	Total int
}
