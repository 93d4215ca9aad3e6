// Package statcache memoizes the base stats used to sort entries
package statcache

//go:generate mockgen -destination=mock/mock_service.go -package=statcachemock github.com/KirkDiggler/pokedex-web/internal/services/statcache Service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/pokedex-web/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
	"github.com/KirkDiggler/pokedex-web/internal/repositories/stats"
)

// Service resolves an entry's stats, fetching them once per session
type Service interface {
	// GetStats returns cached stats or fetches the entry's detail to fill
	// the cache. A failed fetch caches and returns zero stats.
	// Only an abandoned caller context produces an error.
	GetStats(ctx context.Context, name string) (pokedex.Stats, error)
}

// Config holds the dependencies for the stat cache
type Config struct {
	Client     pokeapi.Client
	Repository stats.Repository
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
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	return vb.Build()
}

type service struct {
	client pokeapi.Client
	repo   stats.Repository
	group  singleflight.Group
}

// New creates a stat cache over the given repository
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &service{
		client: cfg.Client,
		repo:   cfg.Repository,
	}, nil
}

func (s *service) GetStats(ctx context.Context, name string) (pokedex.Stats, error) {
	if name == "" {
		return pokedex.Stats{}, errors.InvalidArgument("entry name is required")
	}

	if st, ok := s.lookup(ctx, name); ok {
		return st, nil
	}

	// The fill outlives any single caller so that concurrent sorts
	// asking for the same name share one gateway request.
	ch := s.group.DoChan(name, func() (any, error) {
		return s.fill(context.WithoutCancel(ctx), name), nil
	})

	select {
	case res := <-ch:
		return res.Val.(pokedex.Stats), nil
	case <-ctx.Done():
		return pokedex.Stats{}, errors.WrapWithCodef(ctx.Err(), errors.GetCode(ctx.Err()), "stats for %s abandoned", name)
	}
}

func (s *service) lookup(ctx context.Context, name string) (pokedex.Stats, bool) {
	out, err := s.repo.Get(ctx, stats.GetInput{Name: name})
	if err == nil {
		return out.Stats, true
	}
	if !errors.IsNotFound(err) {
		slog.WarnContext(ctx, "stat cache read failed", "name", name, "error", err)
	}
	return pokedex.Stats{}, false
}

func (s *service) fill(ctx context.Context, name string) pokedex.Stats {
	// Another flight may have finished between our miss and this call.
	if st, ok := s.lookup(ctx, name); ok {
		return st
	}

	var st pokedex.Stats
	detail, err := s.client.GetEntry(ctx, name)
	if err != nil {
		slog.WarnContext(ctx, "caching zero stats after failed fetch",
			"name", name,
			"error", err)
	} else {
		st = pokedex.StatsOf(detail)
	}

	if _, err := s.repo.Put(ctx, stats.PutInput{Name: name, Stats: st}); err != nil {
		slog.ErrorContext(ctx, "stat cache write failed", "name", name, "error", err)
	}
	return st
}
