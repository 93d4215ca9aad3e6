// Package stats provides storage for the per-session stat cache
package stats

//go:generate mockgen -destination=mock/mock_repository.go -package=statsmock github.com/KirkDiggler/pokedex-web/internal/repositories/stats Repository

import (
	"context"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
)

// Repository stores base stats by entry name. Entries are never evicted by
// the cache itself; values are immutable once written.
type Repository interface {
	// Get retrieves the cached stats for an entry
	// Returns errors.InvalidArgument for an empty name
	// Returns errors.NotFound if nothing is cached yet
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put stores stats for an entry, overwriting any previous value
	// Returns errors.InvalidArgument for an empty name
	// Returns errors.Internal for storage failures
	Put(ctx context.Context, input PutInput) (*PutOutput, error)
}

// GetInput defines the input for reading cached stats
type GetInput struct {
	Name string
}

// GetOutput defines the output for reading cached stats
type GetOutput struct {
	Name  string
	Stats pokedex.Stats
}

// PutInput defines the input for caching stats
type PutInput struct {
	Name  string
	Stats pokedex.Stats
}

// PutOutput defines the output for caching stats
type PutOutput struct{}
