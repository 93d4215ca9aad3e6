// Package session owns the per-browser state: a stat cache and one
// instance of every view.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/pokedex-web/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/entry"
	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/gallery"
	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/search"
	"github.com/KirkDiggler/pokedex-web/internal/pkg/clock"
	"github.com/KirkDiggler/pokedex-web/internal/pkg/idgen"
	"github.com/KirkDiggler/pokedex-web/internal/services/statcache"
	"github.com/KirkDiggler/pokedex-web/internal/views"
)

// DefaultIdleTimeout drops sessions that have not been seen for this long
const DefaultIdleTimeout = 30 * time.Minute

// Session is one browser's state
type Session struct {
	ID        string
	StatCache statcache.Service
	Home      *views.HomeView
	Gallery   *views.GalleryView
	Detail    *views.DetailView

	lastSeen time.Time
}

// Config holds the dependencies for the session manager
type Config struct {
	Client  pokeapi.Client
	Search  search.Service
	Gallery gallery.Service
	Entries entry.Service
	// Stats builds each session's stat repository (optional, defaults to memory)
	Stats StatsFactory
	// IDGen mints session ids (optional, defaults to UUIDs)
	IDGen idgen.Generator
	// Clock drives idle expiry (optional)
	Clock clock.Clock
	// IdleTimeout (optional, defaults to DefaultIdleTimeout)
	IdleTimeout time.Duration
}

// Validate ensures all required dependencies are provided and sets defaults
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Search == nil {
		vb.RequiredField("Search")
	}
	if c.Gallery == nil {
		vb.RequiredField("Gallery")
	}
	if c.Entries == nil {
		vb.RequiredField("Entries")
	}
	if c.IdleTimeout < 0 {
		vb.InvalidField("IdleTimeout", "cannot be negative")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.Stats == nil {
		c.Stats = MemoryStats()
	}
	if c.IDGen == nil {
		c.IDGen = idgen.NewUUID("")
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
	return nil
}

// Manager creates, finds and expires sessions
type Manager struct {
	cfg Config

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager
func NewManager(cfg *Config) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Manager{
		cfg:      *cfg,
		sessions: make(map[string]*Session),
	}, nil
}

// IdleTimeout returns how long an unused session lives
func (m *Manager) IdleTimeout() time.Duration {
	return m.cfg.IdleTimeout
}

// Resolve returns the live session for id, or a new one when id is empty,
// unknown or expired. created reports the latter.
func (m *Manager) Resolve(ctx context.Context, id string) (sess *Session, created bool, err error) {
	now := m.cfg.Clock.Now()

	m.mu.Lock()
	if s, ok := m.sessions[id]; ok {
		if now.Sub(s.lastSeen) < m.cfg.IdleTimeout {
			s.lastSeen = now
			m.mu.Unlock()
			return s, false, nil
		}
		delete(m.sessions, id)
		slog.DebugContext(ctx, "session expired", "session_id", id)
	}
	m.mu.Unlock()

	s, err := m.create(m.cfg.IDGen.Generate(), now)
	if err != nil {
		return nil, false, err
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	slog.DebugContext(ctx, "session created", "session_id", s.ID)
	return s, true, nil
}

func (m *Manager) create(id string, now time.Time) (*Session, error) {
	repo, err := m.cfg.Stats(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create stat repository")
	}

	cache, err := statcache.New(&statcache.Config{Client: m.cfg.Client, Repository: repo})
	if err != nil {
		return nil, err
	}

	home, err := views.NewHomeView(&views.HomeConfig{Search: m.cfg.Search, StatCache: cache})
	if err != nil {
		return nil, err
	}
	catalog, err := views.NewGalleryView(&views.GalleryConfig{Gallery: m.cfg.Gallery, StatCache: cache})
	if err != nil {
		return nil, err
	}
	detail, err := views.NewDetailView(m.cfg.Entries)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:        id,
		StatCache: cache,
		Home:      home,
		Gallery:   catalog,
		Detail:    detail,
		lastSeen:  now,
	}, nil
}

// Sweep drops expired sessions and returns how many were removed
func (m *Manager) Sweep(ctx context.Context) int {
	now := m.cfg.Clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) >= m.cfg.IdleTimeout {
			s.Detail.Leave()
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		slog.DebugContext(ctx, "swept idle sessions", "removed", removed, "live", len(m.sessions))
	}
	return removed
}

// Run sweeps every interval until ctx is done
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(ctx)
		}
	}
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

type contextKey struct{}

// WithSession attaches s to ctx
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session attached by WithSession
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
