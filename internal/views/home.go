package views

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/search"
	"github.com/KirkDiggler/pokedex-web/internal/services/statcache"
)

// HomeParams are the inputs that trigger a recompute
type HomeParams struct {
	Query     string
	Category  string
	SortBy    pokedex.SortKey
	SortOrder pokedex.SortOrder
}

// HomeState is a snapshot of the home view
type HomeState struct {
	Params      HomeParams
	Categories  []pokedex.Category
	Suggestions []search.Suggestion
	Loading     bool
	NoResults   bool
}

// HomeConfig holds the dependencies for a home view
type HomeConfig struct {
	Search    search.Service
	StatCache statcache.Service
}

// Validate ensures all required dependencies are provided
func (c *HomeConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Search == nil {
		vb.RequiredField("Search")
	}
	if c.StatCache == nil {
		vb.RequiredField("StatCache")
	}
	return vb.Build()
}

// HomeView is the search page of one session
type HomeView struct {
	search search.Service
	stats  statcache.Service
	seq    Sequencer

	mountMu sync.Mutex

	mu             sync.Mutex
	base           []pokedex.EntrySummary
	baseVersion    int
	baseLoaded     bool
	categoryLoaded bool
	state          HomeState

	// inputs of the last applied recompute
	computed    HomeParams
	computedFor int
	hasComputed bool
}

// NewHomeView creates a home view for one session
func NewHomeView(cfg *HomeConfig) (*HomeView, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &HomeView{
		search: cfg.Search,
		stats:  cfg.StatCache,
		state: HomeState{
			Params: HomeParams{SortBy: pokedex.SortByName, SortOrder: pokedex.SortAscending},
		},
	}, nil
}

// Mount fetches the base listing and the categories unless an earlier
// mount already did. A failed fetch is logged and tried again next mount.
func (v *HomeView) Mount(ctx context.Context) {
	v.mountMu.Lock()
	defer v.mountMu.Unlock()

	v.mu.Lock()
	needBase, needCategories := !v.baseLoaded, !v.categoryLoaded
	v.mu.Unlock()

	var g errgroup.Group
	if needBase {
		g.Go(func() error {
			base, err := v.search.ListBase(ctx)
			if err != nil {
				slog.WarnContext(ctx, "home: base listing failed", "error", err)
				return nil
			}

			v.mu.Lock()
			v.base = base
			v.baseLoaded = true
			v.baseVersion++
			v.mu.Unlock()
			return nil
		})
	}
	if needCategories {
		g.Go(func() error {
			categories, err := v.search.ListCategories(ctx)
			if err != nil {
				slog.WarnContext(ctx, "home: category listing failed", "error", err)
				return nil
			}

			v.mu.Lock()
			v.state.Categories = categories
			v.categoryLoaded = true
			v.mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
}

// Update mounts the view, recomputes the suggestions if any input changed
// and returns the state for p. A recompute overtaken by a newer Update still
// returns its own result but does not replace the view's state. A failed
// recompute keeps the previous suggestions.
func (v *HomeView) Update(ctx context.Context, p HomeParams) HomeState {
	v.Mount(ctx)

	v.mu.Lock()
	if v.hasComputed && v.computed == p && v.computedFor == v.baseVersion {
		st := v.state
		v.mu.Unlock()
		st.Loading = false
		return st
	}
	token := v.seq.Next()
	base, version := v.base, v.baseVersion
	v.state.Loading = true
	v.mu.Unlock()

	out, err := v.search.Search(ctx, &search.SearchInput{
		Base:      base,
		Query:     p.Query,
		Category:  p.Category,
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
		StatCache: v.stats,
	})

	v.mu.Lock()
	defer v.mu.Unlock()

	current := v.seq.IsCurrent(token)
	if current {
		v.state.Loading = false
	}

	st := v.state
	st.Params = p
	st.Loading = false

	if err != nil {
		if errors.IsCanceled(err) {
			slog.DebugContext(ctx, "home: recompute abandoned", "error", err)
		} else {
			slog.WarnContext(ctx, "home: recompute failed, keeping previous suggestions", "error", err)
		}
		return st
	}

	st.Suggestions = out.Suggestions
	st.NoResults = out.NoResults
	if !current {
		slog.DebugContext(ctx, "home: superseded recompute not applied", "token", token)
		return st
	}

	v.state = st
	v.computed = p
	v.computedFor = version
	v.hasComputed = true
	return st
}

// State returns the current snapshot without recomputing
func (v *HomeView) State() HomeState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}
