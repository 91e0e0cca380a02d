package database

import (
	"fmt"
	"os"
	"path/filepath"

	"cyberdl/internal/config"
	"cyberdl/internal/core"
	"cyberdl/internal/database/migrations"
)

// NewStoreFromConfig opens the catalog store described by the config,
// running any pending migrations (which create and seed the catalog on
// first use).
func NewStoreFromConfig(cfg config.DatabaseConfig) (core.CatalogStore, error) {
	switch cfg.Type {
	case "sqlite", "":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("sqlite catalog store requires data_dir")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
		path := filepath.Join(cfg.DataDir, "catalog.db")

		db, err := OpenConnection(path)
		if err != nil {
			return nil, err
		}
		if err := migrations.MigrateUp(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating catalog: %w", err)
		}
		return NewSQLiteStoreFromDB(db), nil
	default:
		return nil, fmt.Errorf("unknown catalog store type: %s", cfg.Type)
	}
}
