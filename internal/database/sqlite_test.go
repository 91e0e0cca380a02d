package database_test

import (
	"reflect"
	"testing"

	"cyberdl/internal/database"
	"cyberdl/internal/database/migrations"
	"cyberdl/internal/testutil"
)

func TestSQLiteStore(t *testing.T) {
	store := testutil.NewTestStore(t)

	t.Run("categories come back in definition order", func(t *testing.T) {
		cats, err := store.Categories()
		if err != nil {
			t.Fatalf("Categories() error = %v", err)
		}
		if len(cats) != 8 {
			t.Fatalf("len(cats) = %d, want 8", len(cats))
		}
		if cats[0].ID != "games" || cats[len(cats)-1].ID != "info" {
			t.Errorf("order = %q ... %q", cats[0].ID, cats[len(cats)-1].ID)
		}
		if cats[0].Icon != "Gamepad2" {
			t.Errorf("icon = %q", cats[0].Icon)
		}
	})

	t.Run("content types carry their ordered sub-types", func(t *testing.T) {
		types, err := store.ContentTypes()
		if err != nil {
			t.Fatalf("ContentTypes() error = %v", err)
		}
		if len(types) != 2 {
			t.Fatalf("len(types) = %d, want 2", len(types))
		}
		if types[0].ID != "download" {
			t.Errorf("first type = %q", types[0].ID)
		}
		want := []string{"License", "RePack", "Early Access"}
		if !reflect.DeepEqual(types[0].Subcategories, want) {
			t.Errorf("download sub-types = %v", types[0].Subcategories)
		}
	})

	t.Run("games come back in definition order", func(t *testing.T) {
		games, err := store.Games()
		if err != nil {
			t.Fatalf("Games() error = %v", err)
		}
		want := []string{"GTA V", "Minecraft", "Cyberpunk 2077", "Skyrim", "CS2"}
		if !reflect.DeepEqual(games, want) {
			t.Errorf("games = %v", games)
		}
	})

	t.Run("entries are namespaced and official", func(t *testing.T) {
		entries, err := store.Entries()
		if err != nil {
			t.Fatalf("Entries() error = %v", err)
		}
		if len(entries) != 6 {
			t.Fatalf("len(entries) = %d, want 6", len(entries))
		}
		first := entries[0]
		if first.ID != "official-1" || first.FileID != 1 || !first.IsOfficial {
			t.Errorf("first entry = %+v", first)
		}
		if first.Name != "GTA V Ultra Graphics Mod" || first.Rating != 4.8 {
			t.Errorf("first entry = %+v", first)
		}
	})
}

func TestMigrations(t *testing.T) {
	t.Run("migrating twice is a no-op", func(t *testing.T) {
		db, err := database.OpenConnection(":memory:")
		if err != nil {
			t.Fatalf("OpenConnection() error = %v", err)
		}
		defer db.Close()

		if err := migrations.MigrateUp(db); err != nil {
			t.Fatalf("MigrateUp() error = %v", err)
		}
		if err := migrations.MigrateUp(db); err != nil {
			t.Fatalf("second MigrateUp() error = %v", err)
		}
		if err := migrations.CheckDBMigrationStatus(db); err != nil {
			t.Errorf("CheckDBMigrationStatus() error = %v", err)
		}
	})

	t.Run("an unmigrated database fails the status check", func(t *testing.T) {
		db, err := database.OpenConnection(":memory:")
		if err != nil {
			t.Fatalf("OpenConnection() error = %v", err)
		}
		defer db.Close()

		if err := migrations.CheckDBMigrationStatus(db); err == nil {
			t.Error("status check should fail before migration")
		}
	})
}
