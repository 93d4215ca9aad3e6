package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/health"

	"github.com/KirkDiggler/pokedex-web/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
	"github.com/KirkDiggler/pokedex-web/internal/handlers/ops"
	"github.com/KirkDiggler/pokedex-web/internal/handlers/web"
	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/entry"
	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/gallery"
	"github.com/KirkDiggler/pokedex-web/internal/orchestrators/search"
	"github.com/KirkDiggler/pokedex-web/internal/redis"
	"github.com/KirkDiggler/pokedex-web/internal/services/session"
)

var (
	httpPort       int
	opsPort        int
	apiBaseURL     string
	httpTimeout    time.Duration
	statsBackend   string
	redisAddr      string
	sessionIdle    time.Duration
	healthInterval time.Duration
	logLevel       string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the web server",
	Long:  `Start the pokedex web server and its gRPC operations port.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&httpPort, "port", envInt(8080, "POKEDEX_PORT", "PORT"), "HTTP server port")
	serverCmd.Flags().IntVar(&opsPort, "ops-port", 50051, "gRPC health/reflection port")
	serverCmd.Flags().StringVar(&apiBaseURL, "api-base-url", envString(pokeapi.DefaultBaseURL, "POKEDEX_API_BASE_URL"), "PokeAPI base URL")
	serverCmd.Flags().DurationVar(&httpTimeout, "api-timeout", 0, "Per-request gateway timeout (0 keeps the transport default)")
	serverCmd.Flags().StringVar(&statsBackend, "stats-backend", "memory", "Stat cache backend: memory or redis")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", envString("localhost:6379", "POKEDEX_REDIS_ADDR"), "Redis address for the redis stats backend")
	serverCmd.Flags().DurationVar(&sessionIdle, "session-idle", session.DefaultIdleTimeout, "Idle time before a session is dropped")
	serverCmd.Flags().DurationVar(&healthInterval, "health-interval", ops.DefaultInterval, "Gateway health check interval")
	serverCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := pokeapi.New(&pokeapi.Config{
		BaseURL:     apiBaseURL,
		HTTPTimeout: httpTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create gateway client: %w", err)
	}

	statsFactory, cleanup, err := newStatsFactory(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	searchSvc, err := search.New(&search.Config{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create search orchestrator: %w", err)
	}
	gallerySvc, err := gallery.New(&gallery.Config{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create gallery orchestrator: %w", err)
	}
	entrySvc, err := entry.New(&entry.Config{Client: client})
	if err != nil {
		return fmt.Errorf("failed to create entry orchestrator: %w", err)
	}

	sessions, err := session.NewManager(&session.Config{
		Client:      client,
		Search:      searchSvc,
		Gallery:     gallerySvc,
		Entries:     entrySvc,
		Stats:       statsFactory,
		IdleTimeout: sessionIdle,
	})
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}

	handler, err := web.NewHandler(&web.Config{
		Sessions: sessions,
		Entries:  entrySvc,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create web handler: %w", err)
	}

	healthServer := health.NewServer()
	watcher, err := ops.NewWatcher(&ops.Config{
		Client:   client,
		Health:   healthServer,
		Interval: healthInterval,
	})
	if err != nil {
		return fmt.Errorf("failed to create gateway watcher: %w", err)
	}
	opsServer := ops.NewServer(logger, healthServer)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", httpPort),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      web.DefaultRequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	opsListener, err := net.Listen("tcp", fmt.Sprintf(":%d", opsPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("HTTP server starting on port %d...", httpPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to serve http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Printf("gRPC ops server starting on port %d...", opsPort)
		if err := opsServer.Serve(opsListener); err != nil {
			return fmt.Errorf("failed to serve grpc: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		watcher.Run(gctx)
		return nil
	})

	g.Go(func() error {
		sessions.Run(gctx, time.Minute)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down servers...")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		stopped := make(chan struct{})
		go func() {
			opsServer.GracefulStop()
			close(stopped)
		}()

		err := httpServer.Shutdown(shutdownCtx)

		select {
		case <-shutdownCtx.Done():
			log.Println("Graceful shutdown timeout exceeded, forcing stop")
			opsServer.Stop()
		case <-stopped:
			log.Println("Servers stopped gracefully")
		}
		return err
	})

	return g.Wait()
}

// newStatsFactory picks the stat cache backend. The returned cleanup
// closes any connection it opened.
func newStatsFactory(ctx context.Context) (session.StatsFactory, func(), error) {
	switch strings.ToLower(statsBackend) {
	case "memory":
		return session.MemoryStats(), func() {}, nil
	case "redis":
		client, err := redis.NewClient(redisAddr, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", redisAddr, err)
		}
		log.Printf("Using redis stat cache at %s", redisAddr)
		return session.RedisStats(client, sessionIdle), func() { _ = client.Close() }, nil
	default:
		return nil, nil, errors.InvalidArgumentf("unknown stats backend %q", statsBackend)
	}
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.InvalidArgumentf("invalid log level %q", level)
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})), nil
}

func envString(def string, keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func envInt(def int, keys ...string) int {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return def
}
