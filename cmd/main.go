package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tinoosan/moviecatalog/db"
	"github.com/tinoosan/moviecatalog/internal/config"
	httpapi "github.com/tinoosan/moviecatalog/internal/httpapi/v1"
	"github.com/tinoosan/moviecatalog/internal/seed"
	"github.com/tinoosan/moviecatalog/internal/service/movie"
	"github.com/tinoosan/moviecatalog/internal/service/producer"
	"github.com/tinoosan/moviecatalog/internal/service/rating"
	"github.com/tinoosan/moviecatalog/internal/storage/memory"
	mongostore "github.com/tinoosan/moviecatalog/internal/storage/mongodb"
	pgstore "github.com/tinoosan/moviecatalog/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	// Logger (slog to stdout). Level via LOG_LEVEL; format via LOG_FORMAT (json|text, default json)
	logger := buildLogger(cfg)
	slog.SetDefault(logger)

	store, closeFn, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.Backend(), "err", err)
		os.Exit(1)
	}
	defer closeFn()

	// Optional dev seed; the in-memory backend is always seeded so a bare run has data
	if cfg.DevSeed || cfg.Backend() == config.BackendMemory {
		ps := producer.New(store, store)
		ms := movie.New(store, store, ps)
		rs := rating.New(store, store, ms)
		if _, err := seed.Load(ctx, ps, ms, rs, time.Now().UTC().AddDate(0, -1, 0), logger); err != nil {
			logger.Error("dev seed failed", "err", err)
		}
	}

	var opts []httpapi.Option
	if cfg.RateLimitRPS > 0 {
		opts = append(opts, httpapi.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpapi.New(store, store, store, store, store, store, logger, opts...).Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("movie catalog listening", "addr", srv.Addr, "backend", cfg.Backend())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
}

// openStore connects the backend chosen by the configuration.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (httpapi.Store, func(), error) {
	switch cfg.Backend() {
	case config.BackendMongo:
		ms, err := mongostore.Open(ctx, cfg.MongoAddress, cfg.MongoDatabase)
		if err != nil { return nil, nil, err }
		if err := ms.EnsureSchema(ctx); err != nil {
			_ = ms.Close(context.Background())
			return nil, nil, err
		}
		logger.Info("storage backend: mongo", "database", cfg.MongoDatabase)
		return ms, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = ms.Close(ctx)
		}, nil
	case config.BackendPostgres:
		pg, err := pgstore.Open(ctx, cfg.DatabaseURL)
		if err != nil { return nil, nil, err }
		if err := pg.Migrate(ctx, db.InitSQL); err != nil {
			pg.Close()
			return nil, nil, err
		}
		logger.Info("storage backend: postgres")
		return pg, pg.Close, nil
	default:
		logger.Info("storage backend: memory")
		return memory.New(), func() {}, nil
	}
}

// parseLogLevel maps config values to slog.Leveler
func parseLogLevel(s string) slog.Leveler {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	// default to JSON
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
