package testutil

import (
	"testing"

	"cyberdl/internal/core"
	"cyberdl/internal/database"
	"cyberdl/internal/database/migrations"
)

// NewTestStore creates an in-memory catalog database with all migrations
// applied, including the seed data. It is closed when the test completes.
func NewTestStore(t *testing.T) core.CatalogStore {
	t.Helper()

	db, err := database.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		t.Fatalf("failed to migrate database: %v", err)
	}

	store := database.NewSQLiteStoreFromDB(db)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
