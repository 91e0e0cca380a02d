package core

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"cyberdl/internal/model"
)

// Registry holds the merged file catalog: curated entries loaded once from the
// local store, plus the latest wholesale fetch of user-submitted entries.
type Registry struct {
	files    FilesAPI
	notifier Notifier
	logger   Logger

	mu      sync.RWMutex
	curated []model.CatalogEntry
	fetched []model.CatalogEntry
}

// NewRegistry loads the curated entries from store and returns a registry with
// no fetched entries yet; call Refresh to pull the user-submitted set.
func NewRegistry(store CatalogStore, files FilesAPI, notifier Notifier, logger Logger) (*Registry, error) {
	curated, err := store.Entries()
	if err != nil {
		return nil, fmt.Errorf("loading curated catalog: %w", err)
	}
	return &Registry{
		files:    files,
		notifier: notifier,
		logger:   logger,
		curated:  curated,
	}, nil
}

// Entries returns the merged list, curated entries first, each half in its
// original order.
func (r *Registry) Entries() []model.CatalogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Merge(r.curated, r.fetched)
}

// FindByID returns the entry with the given namespaced id, or nil.
func (r *Registry) FindByID(id string) *model.CatalogEntry {
	for _, e := range r.Entries() {
		if e.ID == id {
			out := e
			return &out
		}
	}
	return nil
}

// Refresh re-fetches the user-submitted set and replaces it wholesale. On
// failure the previously merged list is left untouched; the error is logged,
// surfaced through the notifier, and returned so callers that want a silent
// degrade (the initial load) can ignore it.
func (r *Registry) Refresh(ctx context.Context) error {
	records, err := r.files.List(ctx)
	if err != nil {
		r.logger.Warn("user files fetch failed", "error", err)
		r.notifier.Notify("Catalog", "could not load user-submitted files", NotifyError)
		return fmt.Errorf("fetching user files: %w", err)
	}

	fetched := MapRemote(records)

	r.mu.Lock()
	r.fetched = fetched
	r.mu.Unlock()

	r.logger.Info("user files refreshed", "count", len(fetched))
	return nil
}

// Merge concatenates curated before fetched into a fresh slice. Ordering is
// stable and deterministic: every curated entry precedes every fetched one.
func Merge(curated, fetched []model.CatalogEntry) []model.CatalogEntry {
	out := make([]model.CatalogEntry, 0, len(curated)+len(fetched))
	out = append(out, curated...)
	out = append(out, fetched...)
	return out
}

// MapRemote converts remote records into catalog entries. Ids are prefixed so
// they can never collide with curated ids, ratings and download counts default
// to zero, and the entries are never official.
func MapRemote(records []model.RemoteFileRecord) []model.CatalogEntry {
	entries := make([]model.CatalogEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, model.CatalogEntry{
			ID:           "user-" + strconv.FormatInt(rec.ID, 10),
			FileID:       rec.ID,
			Name:         rec.Name,
			Category:     CategoryGames,
			Game:         rec.Game,
			ContentType:  rec.ContentType,
			DownloadType: rec.DownloadType,
			ModType:      rec.ModType,
			Size:         rec.Size,
			Downloads:    rec.Downloads,
			Rating:       rec.Rating,
			Version:      rec.Version,
			FileURL:      rec.FileURL,
			FileType:     rec.FileType,
			Author:       rec.Author,
			IsOfficial:   false,
		})
	}
	return entries
}
