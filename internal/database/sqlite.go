package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"cyberdl/internal/core"
	"cyberdl/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements core.CatalogStore over the seeded catalog database.
// Everything it serves is written by migrations and immutable at runtime;
// curated entries are always official.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ core.CatalogStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens the catalog database at path (":memory:" works too).
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// NewSQLiteStoreFromDB wraps an existing connection. The caller is
// responsible for ensuring the connection is properly configured.
func NewSQLiteStoreFromDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenConnection opens and configures a SQLite connection with the PRAGMAs
// the catalog needs. Exported for tools and tests.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Foreign keys default to OFF in SQLite for backward compatibility.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Categories returns all categories in definition order.
func (s *SQLiteStore) Categories() ([]model.Category, error) {
	rows, err := s.db.QueryContext(context.Background(),
		"SELECT id, name, icon FROM categories ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ContentTypes returns all content types with their ordered sub-type lists.
func (s *SQLiteStore) ContentTypes() ([]model.ContentType, error) {
	ctx := context.Background()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, icon FROM content_types ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying content types: %w", err)
	}
	defer rows.Close()

	var out []model.ContentType
	for rows.Next() {
		var ct model.ContentType
		if err := rows.Scan(&ct.ID, &ct.Name, &ct.Icon); err != nil {
			return nil, fmt.Errorf("scanning content type: %w", err)
		}
		out = append(out, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		subRows, err := s.db.QueryContext(ctx,
			"SELECT name FROM content_type_subtypes WHERE content_type_id = ? ORDER BY position",
			out[i].ID)
		if err != nil {
			return nil, fmt.Errorf("querying subtypes: %w", err)
		}
		for subRows.Next() {
			var name string
			if err := subRows.Scan(&name); err != nil {
				subRows.Close()
				return nil, fmt.Errorf("scanning subtype: %w", err)
			}
			out[i].Subcategories = append(out[i].Subcategories, name)
		}
		if err := subRows.Err(); err != nil {
			subRows.Close()
			return nil, err
		}
		subRows.Close()
	}

	return out, nil
}

// Games returns the known games in definition order.
func (s *SQLiteStore) Games() ([]string, error) {
	rows, err := s.db.QueryContext(context.Background(),
		"SELECT name FROM games ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// Entries returns the curated catalog entries in id order.
func (s *SQLiteStore) Entries() ([]model.CatalogEntry, error) {
	rows, err := s.db.QueryContext(context.Background(), `
		SELECT id, name, category, game, content_type, download_type,
		       mod_type, size, downloads, rating, version, file_url, file_type
		FROM curated_files ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying curated files: %w", err)
	}
	defer rows.Close()

	var out []model.CatalogEntry
	for rows.Next() {
		var e model.CatalogEntry
		if err := rows.Scan(&e.FileID, &e.Name, &e.Category, &e.Game,
			&e.ContentType, &e.DownloadType, &e.ModType, &e.Size,
			&e.Downloads, &e.Rating, &e.Version, &e.FileURL, &e.FileType); err != nil {
			return nil, fmt.Errorf("scanning curated file: %w", err)
		}
		e.ID = "official-" + strconv.FormatInt(e.FileID, 10)
		e.IsOfficial = true
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
