package views

import (
	"context"
	"strings"
	"sync"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/entry"
)

// Card shows one entry's sprite and name. Attaching it fetches the
// entry's detail; the fetch is re-issued whenever the name changes.
type Card struct {
	entries entry.Service
	loader  *Loader[*pokedex.EntryDetail]

	mu   sync.Mutex
	name string
}

// NewCard returns a detached card
func NewCard(entries entry.Service) *Card {
	return &Card{
		entries: entries,
		loader:  NewLoader[*pokedex.EntryDetail](),
	}
}

// Attach points the card at name and starts its fetch. Re-attaching the
// same name keeps the current result unless the last fetch failed or was
// abandoned.
func (c *Card) Attach(ctx context.Context, name string) {
	name = strings.TrimSpace(name)

	c.mu.Lock()
	same := name == c.name
	c.name = name
	c.mu.Unlock()

	state := c.loader.State()
	if same && (c.loader.Pending() || state.IsLoaded()) {
		return
	}

	c.loader.Start(ctx, func(ctx context.Context) (*pokedex.EntryDetail, error) {
		if name == "" {
			return nil, errors.InvalidArgument("card requires an entry name")
		}
		out, err := c.entries.GetEntry(ctx, &entry.GetEntryInput{NameOrID: name})
		if err != nil {
			return nil, err
		}
		return out.Entry, nil
	})
}

// Detach cancels any in-flight fetch
func (c *Card) Detach() {
	c.loader.Stop()
}

// Name returns the entry the card is attached to
func (c *Card) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

// State returns the current detail Load
func (c *Card) State() Load[*pokedex.EntryDetail] {
	return c.loader.State()
}

// Wait blocks until the current fetch settles or ctx is done
func (c *Card) Wait(ctx context.Context) Load[*pokedex.EntryDetail] {
	return c.loader.Wait(ctx)
}
