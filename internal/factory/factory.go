package factory

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/gameroster/internal/config"
	"github.com/mcoot/gameroster/internal/dependencies/clock"
	"github.com/mcoot/gameroster/internal/roster"
	"github.com/mcoot/gameroster/internal/search"
	"github.com/mcoot/gameroster/internal/sorting"
	"github.com/mcoot/gameroster/internal/storage"
	"github.com/mcoot/gameroster/internal/storage/file"
	"github.com/mcoot/gameroster/internal/storage/memory"
	redisstorage "github.com/mcoot/gameroster/internal/storage/redis"
	"github.com/mcoot/gameroster/internal/storage/sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	Repository *roster.Repository

	Logger *slog.Logger
}

// New creates a new application with all dependencies wired and the roster loaded
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Use no-op logger if not provided
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	searcher, err := search.ForName(cfg.Roster.SearchStrategy)
	if err != nil {
		return nil, err
	}
	sorter, err := sorting.ForName(cfg.Roster.SortStrategy)
	if err != nil {
		return nil, err
	}

	store, err := NewStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := newWithDependencies(store, clock.New(), searcher, sorter, logger)
	if err := app.Repository.LoadAll(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	logger.Debug("application ready",
		slog.String("storage", cfg.Storage.Type),
		slog.String("sort_strategy", sorter.Name()),
		slog.Int("player_count", app.Repository.Count()),
	)
	return app, nil
}

// NewStorage creates the storage backend selected by cfg.Storage.Type
func NewStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Type {
	case config.StorageTypeFile, "":
		return file.New(file.Config{
			DataPath: cfg.Storage.DataFile,
			LogPath:  cfg.Storage.LogFile,
		}), nil
	case config.StorageTypeMemory:
		return memory.New(), nil
	case config.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Redis.URL
		redisCfg.KeyPrefix = cfg.Redis.KeyPrefix
		redisCfg.LogMaxLen = cfg.Redis.LogMaxLen
		return redisstorage.New(redisCfg)
	case config.StorageTypeSQLite:
		return sqlite.New(ctx, sqlite.Config{Path: cfg.Storage.SQLitePath})
	default:
		return nil, fmt.Errorf("invalid storage type %q: must be one of file, memory, redis, sqlite", cfg.Storage.Type)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, searcher search.Strategy, sorter sorting.Strategy, logger *slog.Logger) *App {
	repo := roster.New(store, roster.Options{
		Search: searcher,
		Sort:   sorter,
		Clock:  clk,
		Logger: logger,
	})

	return &App{
		Storage:    store,
		Clock:      clk,
		Repository: repo,
		Logger:     logger,
	}
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}
