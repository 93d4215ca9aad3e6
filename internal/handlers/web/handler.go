// Package web serves the catalog pages over HTTP
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/KirkDiggler/pokedex-web/internal/errors"
	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/entry"
	"github.com/KirkDiggler/pokedex-web/internal/services/session"
)

// DefaultRequestTimeout bounds a single page render
const DefaultRequestTimeout = 30 * time.Second

// Config holds the dependencies for the web handler
type Config struct {
	Sessions *session.Manager
	Entries  entry.Service
	// Logger for access logs (optional, defaults to slog.Default)
	Logger *slog.Logger
	// RequestTimeout (optional, defaults to DefaultRequestTimeout)
	RequestTimeout time.Duration
}

// Validate ensures all required dependencies are provided and sets defaults
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Sessions == nil {
		vb.RequiredField("Sessions")
	}
	if c.Entries == nil {
		vb.RequiredField("Entries")
	}
	if c.RequestTimeout < 0 {
		vb.InvalidField("RequestTimeout", "cannot be negative")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	return nil
}

// Handler serves the HTML pages
type Handler struct {
	sessions *session.Manager
	entries  entry.Service
	logger   *slog.Logger
	timeout  time.Duration
	render   *renderer
}

// NewHandler creates a new web handler
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	rd, err := newRenderer()
	if err != nil {
		return nil, err
	}

	return &Handler{
		sessions: cfg.Sessions,
		entries:  cfg.Entries,
		logger:   cfg.Logger,
		timeout:  cfg.RequestTimeout,
		render:   rd,
	}, nil
}

// Routes builds the router
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(RequestLogger(h.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(h.timeout))

	r.Get("/healthz", h.Healthz)

	r.Group(func(r chi.Router) {
		r.Use(Sessions(h.sessions))
		r.Get("/", h.Home)
		r.Get("/gallery", h.Gallery)
		r.Get("/pokemon/{name}", h.Detail)
		r.Get("/cards/{name}", h.Card)
	})
	return r
}

// Healthz reports liveness
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// fail logs err and answers with the status its code maps to
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.GetCode(err).HTTPStatus()
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	http.Error(w, http.StatusText(status), status)
}

func currentSession(r *http.Request) (*session.Session, error) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		return nil, errors.Internal("no session on request")
	}
	return s, nil
}
