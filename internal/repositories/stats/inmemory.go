package stats

import (
	"context"
	"sync"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
)

const errNameEmpty = "entry name cannot be empty"

// InMemoryRepository implements Repository with a plain map
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]pokedex.Stats
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]pokedex.Stats),
	}
}

// Get retrieves cached stats by name
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.store[input.Name]
	if !ok {
		return nil, errors.NotFoundf("stats for %s not cached", input.Name)
	}

	return &GetOutput{Name: input.Name, Stats: st}, nil
}

// Put caches stats by name
func (r *InMemoryRepository) Put(_ context.Context, input PutInput) (*PutOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.Name] = input.Stats
	return &PutOutput{}, nil
}

// Len returns the number of cached entries
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.store)
}
