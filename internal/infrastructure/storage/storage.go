// Package storage opens the table store selected by configuration.
package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"telemim/internal/app/server/config"
	"telemim/internal/domain/sheet"
	"telemim/internal/infrastructure/migration"
	"telemim/internal/infrastructure/storage/memory"
	"telemim/internal/infrastructure/storage/postgres"
	"telemim/internal/infrastructure/storage/sqlite"
)

// Store is a table repository that can be health-checked and closed.
type Store interface {
	sheet.Repository
	Ping(ctx context.Context) error
	Close() error
}

// Open returns the store for cfg.Storage.Driver. The postgres store applies
// pending migrations before returning.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), nil
	case config.DriverSQLite:
		return sqlite.New(cfg.Storage.SQLitePath, log)
	case config.DriverPostgres:
		mg := migration.NewMigration(cfg.DB, migration.DefaultEngine)
		return postgres.New(ctx, cfg.DB.DatabaseURI, mg, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
