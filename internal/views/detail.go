package views

import (
	"context"
	"strings"
	"sync"

	"github.com/KirkDiggler/pokedex-web/internal/errors"
	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/entry"
)

// DetailView is the detail page of one session. Each name has its own
// loader, so requests for different names never see each other's result.
type DetailView struct {
	entries entry.Service

	mu      sync.Mutex
	name    string
	loaders map[string]*Loader[*entry.GetEntryOutput]
}

// NewDetailView creates a detail view for one session
func NewDetailView(entries entry.Service) (*DetailView, error) {
	if entries == nil {
		return nil, errors.InvalidArgument("entry service is required")
	}

	return &DetailView{
		entries: entries,
		loaders: make(map[string]*Loader[*entry.GetEntryOutput]),
	}, nil
}

// Show navigates to name and waits for its detail. Showing the current
// name again reuses its result, including a failure, unless the last
// fetch was abandoned. A fetch abandoned by another request for the same
// name is restarted under ctx.
func (v *DetailView) Show(ctx context.Context, name string) Load[*entry.GetEntryOutput] {
	name = strings.ToLower(strings.TrimSpace(name))
	defer v.release()

	for {
		st := v.loaderFor(ctx, name).Wait(ctx)
		if st.IsFailed() && errors.IsCanceled(st.Err()) && ctx.Err() == nil {
			continue
		}
		return st
	}
}

// loaderFor returns the loader for name, starting its fetch when it has
// none, or when the last one was abandoned.
func (v *DetailView) loaderFor(ctx context.Context, name string) *Loader[*entry.GetEntryOutput] {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.name = name
	l, ok := v.loaders[name]
	if !ok {
		l = NewLoader[*entry.GetEntryOutput]()
		v.loaders[name] = l
	}

	st := l.State()
	abandoned := (st.IsLoading() && !l.Pending()) ||
		(st.IsFailed() && errors.IsCanceled(st.Err()))
	if !ok || abandoned {
		l.Start(ctx, func(ctx context.Context) (*entry.GetEntryOutput, error) {
			return v.entries.GetEntry(ctx, &entry.GetEntryInput{NameOrID: name})
		})
	}
	return l
}

// release drops settled loaders for names other than the current one
func (v *DetailView) release() {
	v.mu.Lock()
	defer v.mu.Unlock()

	for name, l := range v.loaders {
		if name != v.name && !l.Pending() {
			delete(v.loaders, name)
		}
	}
}

// Leave cancels every in-flight fetch
func (v *DetailView) Leave() {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, l := range v.loaders {
		l.Stop()
	}
}

// Name returns the entry most recently requested
func (v *DetailView) Name() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.name
}
