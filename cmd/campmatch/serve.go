package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	bolt "go.etcd.io/bbolt"

	"github.com/pkordes/campmatch/internal/config"
	"github.com/pkordes/campmatch/internal/handler"
	"github.com/pkordes/campmatch/internal/matching"
	"github.com/pkordes/campmatch/internal/metrics"
	"github.com/pkordes/campmatch/internal/middleware"
	"github.com/pkordes/campmatch/internal/repo"
	"github.com/pkordes/campmatch/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	matchCfg, err := config.LoadMatching(cfg.MatchingConfigPath)
	if err != nil {
		return err
	}

	// --- Logger -----------------------------------------------------------
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	// pgxpool.New does not open connections; the ping below does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	slog.Info("database connection established")

	// --- Session store ----------------------------------------------------
	boltDB, err := bolt.Open(cfg.SessionDBPath, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return fmt.Errorf("open session store %s: %w", cfg.SessionDBPath, err)
	}
	defer boltDB.Close()

	sessionStore, err := repo.NewSessionStore(boltDB)
	if err != nil {
		return err
	}

	// --- Services ---------------------------------------------------------
	m := metrics.New()
	engine := matching.NewEngine(matchCfg)

	recs := service.NewRecommendationService(
		repo.NewCampRepo(pool),
		repo.NewQuizRepo(pool),
		engine,
		m,
		logger,
	)
	catalog := service.NewCatalogService(repo.NewCategoryRepo(pool), repo.NewCampRepo(pool))
	sessions := service.NewSessionService(sessionStore, cfg.SessionTTL, m)

	go pruneSessions(ctx, sessions, pruneInterval(cfg.SessionTTL))

	// --- Router -----------------------------------------------------------
	// RequestID → RealIP → Logger → Metrics → Recoverer → CORS.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(m.Middleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))

	server := handler.NewServer(recs, catalog, sessions, pool)
	r.Mount("/", server.Routes(handler.RouteOptions{
		MaxBodyBytes:       cfg.MaxBodyBytes,
		WriteRatePerMinute: cfg.RateLimitPerMinute,
		Metrics:            m.Handler(),
	}))

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	// In-flight requests get up to 15 seconds to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// sessionPruner is the part of SessionService the prune loop needs.
type sessionPruner interface {
	Prune(ctx context.Context) (int, error)
}

// pruneSessions removes expired quiz sessions every interval until ctx is done.
func pruneSessions(ctx context.Context, p sessionPruner, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.Prune(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "prune sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.InfoContext(ctx, "pruned expired sessions", "count", n)
			}
		}
	}
}

// pruneInterval runs the pruner a few times per TTL, at most hourly and at
// least once a minute.
func pruneInterval(ttl time.Duration) time.Duration {
	return min(max(ttl/4, time.Minute), time.Hour)
}
