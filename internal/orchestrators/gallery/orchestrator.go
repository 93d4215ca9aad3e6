package gallery

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/pokedex-web/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
	"github.com/KirkDiggler/pokedex-web/internal/pkg/ranking"
)

// Config holds the dependencies for the gallery orchestrator
type Config struct {
	Client pokeapi.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	return vb.Build()
}

// Orchestrator implements the gallery Service
type Orchestrator struct {
	client pokeapi.Client
}

// New creates a new gallery orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{client: cfg.Client}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// ListCategories returns the category buttons in display order
func (o *Orchestrator) ListCategories(ctx context.Context) ([]string, error) {
	categories, err := o.client.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	names := make([]string, 0, len(categories)+1)
	names = append(names, pokedex.CategoryAll)
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names, nil
}

// ListEntries fetches the category listing, caps it, and applies the ordering
func (o *Orchestrator) ListEntries(ctx context.Context, input *ListEntriesInput) (*ListEntriesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	category := input.Category
	if category == "" {
		category = pokedex.CategoryAll
	}

	var (
		entries []pokedex.EntrySummary
		err     error
	)
	if category == pokedex.CategoryAll {
		entries, err = o.client.ListEntries(ctx, PageSize)
	} else {
		entries, err = o.client.ListCategoryMembers(ctx, category)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s entries", category)
	}

	total := len(entries)
	if len(entries) > DisplayCap {
		entries = entries[:DisplayCap]
	}

	entries, err = o.order(ctx, input, entries)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "gallery listed",
		"category", category,
		"total", total,
		"displayed", len(entries))

	return &ListEntriesOutput{Entries: entries, Total: total}, nil
}

// order leaves the gateway order alone when no sort key was asked for
func (o *Orchestrator) order(ctx context.Context, input *ListEntriesInput, entries []pokedex.EntrySummary) ([]pokedex.EntrySummary, error) {
	switch {
	case input.SortBy == "":
		return entries, nil
	case !input.SortBy.IsStat():
		return ranking.ByName(entries, input.SortOrder), nil
	case input.StatCache == nil:
		return nil, errors.InvalidArgument("stat cache is required for stat sorts")
	}

	values, err := ranking.StatValues(ctx, input.StatCache, entries, input.SortBy)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", input.SortBy)
	}
	if input.SortOrder == pokedex.SortDescending {
		return ranking.ByValueDesc(entries, values), nil
	}
	return ranking.ByValueAsc(entries, values), nil
}
