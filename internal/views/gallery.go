package views

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/gallery"
	"github.com/KirkDiggler/pokedex-web/internal/services/statcache"
)

// GalleryParams select what the catalog shows
type GalleryParams struct {
	Category string
	// SortBy is empty for listing order
	SortBy    pokedex.SortKey
	SortOrder pokedex.SortOrder
}

// GalleryState is a snapshot of the catalog view
type GalleryState struct {
	Params     GalleryParams
	Categories []string
	Entries    []pokedex.EntrySummary
	Total      int
	Loading    bool
}

// GalleryConfig holds the dependencies for a gallery view
type GalleryConfig struct {
	Gallery   gallery.Service
	StatCache statcache.Service
}

// Validate ensures all required dependencies are provided
func (c *GalleryConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Gallery == nil {
		vb.RequiredField("Gallery")
	}
	if c.StatCache == nil {
		vb.RequiredField("StatCache")
	}
	return vb.Build()
}

// GalleryView is the catalog page of one session
type GalleryView struct {
	gallery gallery.Service
	stats   statcache.Service
	seq     Sequencer

	mountMu sync.Mutex

	mu               sync.Mutex
	categoriesLoaded bool
	state            GalleryState
	selected         GalleryParams
	hasSelected      bool
}

// NewGalleryView creates a gallery view for one session
func NewGalleryView(cfg *GalleryConfig) (*GalleryView, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &GalleryView{
		gallery: cfg.Gallery,
		stats:   cfg.StatCache,
		state: GalleryState{
			Params: GalleryParams{Category: pokedex.CategoryAll, SortOrder: pokedex.SortAscending},
		},
	}, nil
}

// Mount fetches the category buttons once
func (v *GalleryView) Mount(ctx context.Context) {
	v.mountMu.Lock()
	defer v.mountMu.Unlock()

	v.mu.Lock()
	loaded := v.categoriesLoaded
	v.mu.Unlock()
	if loaded {
		return
	}

	categories, err := v.gallery.ListCategories(ctx)
	if err != nil {
		slog.WarnContext(ctx, "gallery: category listing failed", "error", err)
		return
	}

	v.mu.Lock()
	v.state.Categories = categories
	v.categoriesLoaded = true
	v.mu.Unlock()
}

// Select mounts the view and loads the entries for p when p differs from
// the last applied selection. A selection overtaken by a newer one still
// returns its own entries but does not replace the view's state. A failed
// load keeps the previous selection and the entries already shown.
func (v *GalleryView) Select(ctx context.Context, p GalleryParams) GalleryState {
	if p.Category == "" {
		p.Category = pokedex.CategoryAll
	}
	v.Mount(ctx)

	v.mu.Lock()
	if v.hasSelected && v.selected == p {
		st := v.state
		v.mu.Unlock()
		st.Loading = false
		return st
	}
	token := v.seq.Next()
	v.state.Loading = true
	v.mu.Unlock()

	out, err := v.gallery.ListEntries(ctx, &gallery.ListEntriesInput{
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
	st.Loading = false

	if err != nil {
		if errors.IsCanceled(err) {
			slog.DebugContext(ctx, "gallery: selection abandoned", "error", err)
		} else {
			slog.WarnContext(ctx, "gallery: listing failed, keeping previous entries",
				"category", p.Category,
				"error", err)
		}
		return st
	}

	st.Params = p
	st.Entries = out.Entries
	st.Total = out.Total
	if !current {
		slog.DebugContext(ctx, "gallery: superseded selection not applied",
			"token", token,
			"category", p.Category)
		return st
	}

	v.state = st
	v.selected = p
	v.hasSelected = true
	return st
}

// State returns the current snapshot without loading
func (v *GalleryView) State() GalleryState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}
