// Command seed empties the configured database and loads the sample catalog.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/tinoosan/moviecatalog/db"
	"github.com/tinoosan/moviecatalog/internal/config"
	"github.com/tinoosan/moviecatalog/internal/seed"
	"github.com/tinoosan/moviecatalog/internal/service/movie"
	"github.com/tinoosan/moviecatalog/internal/service/producer"
	"github.com/tinoosan/moviecatalog/internal/service/rating"
	mongostore "github.com/tinoosan/moviecatalog/internal/storage/mongodb"
	pgstore "github.com/tinoosan/moviecatalog/internal/storage/postgres"
)

const (
	connectAttempts = 10
	connectDelay    = 2 * time.Second
)

// store is what the seed runner needs from a backend.
type store interface {
	producer.Repo
	producer.Writer
	movie.Repo
	movie.Writer
	rating.Repo
	rating.Writer
	Reset(ctx context.Context) error
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg, err := config.Load()
	if err != nil {
		logger.Error("config", "err", err)
		os.Exit(1)
	}
	ctx := context.Background()

	st, closeFn, err := connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to connect", "backend", cfg.Backend(), "err", err)
		os.Exit(1)
	}
	defer closeFn()

	if err := st.Reset(ctx); err != nil {
		logger.Error("clear collections", "err", err)
		os.Exit(1)
	}
	logger.Info("collections cleared")

	ps := producer.New(st, st)
	ms := movie.New(st, st, ps)
	rs := rating.New(st, st, ms)
	if _, err := seed.Load(ctx, ps, ms, rs, time.Now().UTC().AddDate(0, -1, 0), logger); err != nil {
		logger.Error("seed failed", "err", err)
		os.Exit(1)
	}
	logger.Info("seed completed")
}

// connect retries the configured backend until it answers.
func connect(ctx context.Context, cfg config.Config, logger *slog.Logger) (store, func(), error) {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		st, closeFn, err := open(ctx, cfg)
		if err == nil {
			logger.Info("database connected", "backend", cfg.Backend())
			return st, closeFn, nil
		}
		lastErr = err
		logger.Warn("waiting for database", "attempt", attempt, "of", connectAttempts, "err", err)
		time.Sleep(connectDelay)
	}
	return nil, nil, lastErr
}

func open(ctx context.Context, cfg config.Config) (store, func(), error) {
	attemptCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	switch cfg.Backend() {
	case config.BackendMongo:
		ms, err := mongostore.Open(attemptCtx, cfg.MongoAddress, cfg.MongoDatabase)
		if err != nil { return nil, nil, err }
		closeFn := func() { _ = ms.Close(context.Background()) }
		if err := prepareOrRelease(func() error { return ms.EnsureSchema(attemptCtx) }, closeFn); err != nil {
			return nil, nil, err
		}
		return ms, closeFn, nil
	case config.BackendPostgres:
		pg, err := pgstore.Open(attemptCtx, cfg.DatabaseURL)
		if err != nil { return nil, nil, err }
		if err := prepareOrRelease(func() error { return pg.Migrate(attemptCtx, db.InitSQL) }, pg.Close); err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	default:
		return nil, nil, errors.New("MONGO_ADDRESS or DATABASE_URL must be set")
	}
}

// prepareOrRelease runs setup on a freshly opened store and releases the
// store when setup fails, so a retried attempt never leaks a connection.
func prepareOrRelease(setup func() error, release func()) error {
	if err := setup(); err != nil {
		release()
		return err
	}
	return nil
}
