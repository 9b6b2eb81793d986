package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/showtrack/showtrack-go/internal/config"
	"github.com/showtrack/showtrack-go/internal/repository"
	"github.com/showtrack/showtrack-go/internal/repository/memory"
	"github.com/showtrack/showtrack-go/internal/repository/mongodb"
	"github.com/showtrack/showtrack-go/internal/service"
)

// stores bundles the backends selected by STORE_DRIVER.
type stores struct {
	users     service.UserStore
	watchlist service.WatchlistStore
	close     func(context.Context) error
}

func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	switch cfg.Driver {
	case config.DriverMySQL:
		db, err := repository.NewDB(cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("connecting to mysql: %w", err)
		}
		if err := repository.Migrate(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating mysql: %w", err)
		}
		slog.Info("mysql store ready")
		return &stores{
			users:     repository.NewUserRepository(db),
			watchlist: repository.NewWatchlistRepository(db),
			close:     func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to mongo: %w", err)
		}
		store := mongodb.NewStore(client.Database(cfg.MongoDatabase))
		if err := store.EnsureIndexes(ctx); err != nil {
			client.Disconnect(ctx)
			return nil, fmt.Errorf("creating mongo indexes: %w", err)
		}
		slog.Info("mongo store ready", "database", cfg.MongoDatabase)
		return &stores{
			users:     store,
			watchlist: store,
			close:     client.Disconnect,
		}, nil

	case config.DriverMemory:
		slog.Warn("using in-memory store, data is lost on restart")
		store := memory.New()
		return &stores{
			users:     store,
			watchlist: store,
			close:     func(context.Context) error { return nil },
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
}
