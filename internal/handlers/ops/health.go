// Package ops serves the gRPC operations port: health and reflection
package ops

import (
	"context"
	"log/slog"
	"time"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/KirkDiggler/pokedex-web/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
)

// GatewayService is the health service name that tracks the remote gateway
const GatewayService = "pokedex.gateway"

// DefaultInterval between gateway checks
const DefaultInterval = 30 * time.Second

// Config holds the dependencies for the gateway watcher
type Config struct {
	Client pokeapi.Client
	Health *health.Server
	// Interval between checks (optional, defaults to DefaultInterval)
	Interval time.Duration
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
	if c.Health == nil {
		vb.RequiredField("Health")
	}
	if c.Interval < 0 {
		vb.InvalidField("Interval", "cannot be negative")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if c.Interval == 0 {
		c.Interval = DefaultInterval
	}
	return nil
}

// Watcher mirrors gateway reachability into the health server. The
// overall ("") status follows the gateway since every page depends on it.
type Watcher struct {
	client   pokeapi.Client
	health   *health.Server
	interval time.Duration
}

// NewWatcher creates a gateway watcher
func NewWatcher(cfg *Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Watcher{
		client:   cfg.Client,
		health:   cfg.Health,
		interval: cfg.Interval,
	}, nil
}

// Check pings the gateway once and records the result
func (w *Watcher) Check(ctx context.Context) grpc_health_v1.HealthCheckResponse_ServingStatus {
	status := grpc_health_v1.HealthCheckResponse_SERVING
	if err := w.client.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "gateway unreachable", "error", err)
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}

	w.health.SetServingStatus("", status)
	w.health.SetServingStatus(GatewayService, status)
	return status
}

// Run checks immediately and then every interval until ctx is done
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		checkCtx, cancel := context.WithTimeout(ctx, w.interval)
		w.Check(checkCtx)
		cancel()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// NewServer builds the ops gRPC server with logging and panic recovery,
// registers hs as its health service and enables reflection.
func NewServer(logger *slog.Logger, hs *health.Server) *grpc.Server {
	logFunc := grpc_logging.LoggerFunc(func(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
		logger.Log(ctx, slog.Level(level), msg, fields...)
	})

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logFunc),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logFunc),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	grpc_health_v1.RegisterHealthServer(srv, hs)
	reflection.Register(srv)
	return srv
}
