package search

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/KirkDiggler/pokedex-web/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
	"github.com/KirkDiggler/pokedex-web/internal/pkg/ranking"
)

// Config holds the dependencies for the search orchestrator
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

// Orchestrator implements the search Service
type Orchestrator struct {
	client pokeapi.Client
}

// New creates a new search orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{client: cfg.Client}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// ListBase fetches the base listing
func (o *Orchestrator) ListBase(ctx context.Context) ([]pokedex.EntrySummary, error) {
	entries, err := o.client.ListEntries(ctx, BaseListLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list base entries")
	}
	return entries, nil
}

// ListCategories fetches every category
func (o *Orchestrator) ListCategories(ctx context.Context) ([]pokedex.Category, error) {
	categories, err := o.client.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}
	return categories, nil
}

// Search runs the filter, intersect, sort and truncate steps
func (o *Orchestrator) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if strings.TrimSpace(input.Query) == "" && input.Category == "" {
		return &SearchOutput{Skipped: true}, nil
	}

	candidates := input.Base
	if input.Query != "" {
		candidates = ranking.MatchPrefix(candidates, input.Query)
	}

	if input.Category != "" {
		members, err := o.client.ListCategoryMembers(ctx, input.Category)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list members of %s", input.Category)
		}
		candidates = ranking.Intersect(candidates, members)
	}

	sorted, err := o.sort(ctx, input, candidates)
	if err != nil {
		return nil, err
	}

	if len(sorted) > MaxSuggestions {
		sorted = sorted[:MaxSuggestions]
	}

	slog.DebugContext(ctx, "search recomputed",
		"query", input.Query,
		"category", input.Category,
		"sort_by", input.SortBy,
		"sort_order", input.SortOrder,
		"results", len(sorted))

	return &SearchOutput{
		Suggestions: toSuggestions(sorted),
		NoResults:   len(sorted) == 0,
	}, nil
}

func (o *Orchestrator) sort(ctx context.Context, input *SearchInput, candidates []pokedex.EntrySummary) ([]pokedex.EntrySummary, error) {
	if !input.SortBy.IsStat() {
		return ranking.ByName(candidates, input.SortOrder), nil
	}
	if input.StatCache == nil {
		return nil, errors.InvalidArgument("stat cache is required for stat sorts")
	}

	values, err := ranking.StatValues(ctx, input.StatCache, candidates, input.SortBy)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", input.SortBy)
	}

	// Always descending first; ascending is the reverse of that.
	sorted := ranking.ByValueDesc(candidates, values)
	if input.SortOrder == pokedex.SortAscending {
		slices.Reverse(sorted)
	}
	return sorted, nil
}

func toSuggestions(entries []pokedex.EntrySummary) []Suggestion {
	out := make([]Suggestion, 0, len(entries))
	for _, e := range entries {
		id := pokedex.IDFromURL(e.URL)
		out = append(out, Suggestion{
			Name:      e.Name,
			URL:       e.URL,
			ID:        id,
			SpriteURL: pokedex.SpriteURL(id),
		})
	}
	return out
}
