// Package entry loads a single entry for the detail page
package entry

import (
	"context"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
)

// Service defines the detail operations
type Service interface {
	// GetEntry fetches one entry by name or numeric id
	GetEntry(ctx context.Context, input *GetEntryInput) (*GetEntryOutput, error)
}

// GetEntryInput names the entry to load
type GetEntryInput struct {
	NameOrID string
}

// GetEntryOutput holds the entry and its neighbours
type GetEntryOutput struct {
	Entry *pokedex.EntryDetail
	// PrevID is zero when there is no previous entry
	PrevID int
	// NextID has no upper bound; the gateway decides whether it exists
	NextID int
}

// PrevID returns id-1, or zero when id is the first entry
func PrevID(id int) int {
	if id > 1 {
		return id - 1
	}
	return 0
}

// NextID returns id+1
func NextID(id int) int {
	return id + 1
}
