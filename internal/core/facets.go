package core

import (
	"strings"

	"cyberdl/internal/model"
)

// Facet identifies one axis of catalog narrowing.
type Facet string

const (
	FacetCategory     Facet = "category"
	FacetGame         Facet = "game"
	FacetContentType  Facet = "contentType"
	FacetDownloadType Facet = "downloadType"
	FacetModType      Facet = "modType"
	FacetSearch       Facet = "search"
)

// Well-known taxonomy ids. The game/content-type sub-facets only exist under
// the games category; downloadType and modType are mutually exclusive
// sub-facets of the download and mods content types.
const (
	CategoryGames       = "games"
	ContentTypeDownload = "download"
	ContentTypeMods     = "mods"
)

// Selection is the current navigation state. The zero value ("" everywhere)
// means nothing is selected. Selection is never persisted; a new one is
// created per session.
type Selection struct {
	Category     string
	Game         string
	ContentType  string
	DownloadType string
	ModType      string
	Search       string
}

// Select applies one facet transition, enforcing the cascade-clearing rules:
// a category other than games drops the game and everything under it, a new
// game drops content type and sub-types, a new content type drops both
// sub-types. Re-selecting the currently active value deselects it. Search
// changes never clear other facets.
func (s *Selection) Select(facet Facet, value string) {
	switch facet {
	case FacetCategory:
		s.Category = toggle(s.Category, value)
		if s.Category != CategoryGames {
			s.Game = ""
			s.clearBelowGame()
		}
	case FacetGame:
		s.Game = toggle(s.Game, value)
		s.clearBelowGame()
	case FacetContentType:
		s.ContentType = toggle(s.ContentType, value)
		s.DownloadType = ""
		s.ModType = ""
	case FacetDownloadType:
		s.DownloadType = toggle(s.DownloadType, value)
	case FacetModType:
		s.ModType = toggle(s.ModType, value)
	case FacetSearch:
		s.Search = value
	}
}

func (s *Selection) clearBelowGame() {
	s.ContentType = ""
	s.DownloadType = ""
	s.ModType = ""
}

// toggle implements the deselect-on-reselect rule.
func toggle(current, value string) string {
	if current == value {
		return ""
	}
	return value
}

// Matches reports whether entry passes every active facet. Unset facets always
// pass; an entry missing a field a facet is set on never matches. Matches is
// pure: it mutates neither argument.
func Matches(e model.CatalogEntry, s Selection) bool {
	if s.Category != "" && e.Category != s.Category {
		return false
	}
	if s.Search != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(s.Search)) {
		return false
	}
	if s.Game != "" && e.Game != s.Game {
		return false
	}
	if s.ContentType != "" && e.ContentType != s.ContentType {
		return false
	}
	if s.DownloadType != "" && e.DownloadType != s.DownloadType {
		return false
	}
	if s.ModType != "" && e.ModType != s.ModType {
		return false
	}
	return true
}

// Filter returns the entries matching the selection, preserving input order.
// It is recomputed on every call; nothing is memoized.
func Filter(entries []model.CatalogEntry, s Selection) []model.CatalogEntry {
	out := make([]model.CatalogEntry, 0, len(entries))
	for _, e := range entries {
		if Matches(e, s) {
			out = append(out, e)
		}
	}
	return out
}

// Taxonomy is the static facet vocabulary, loaded once from the catalog store.
type Taxonomy struct {
	categories   []model.Category
	contentTypes []model.ContentType
	games        []string
}

// NewTaxonomy loads the full taxonomy from store.
func NewTaxonomy(store CatalogStore) (*Taxonomy, error) {
	cats, err := store.Categories()
	if err != nil {
		return nil, err
	}
	types, err := store.ContentTypes()
	if err != nil {
		return nil, err
	}
	games, err := store.Games()
	if err != nil {
		return nil, err
	}
	return &Taxonomy{categories: cats, contentTypes: types, games: games}, nil
}

// Categories returns all top-level categories in definition order.
func (t *Taxonomy) Categories() []model.Category { return t.categories }

// Games returns the known games list in definition order.
func (t *Taxonomy) Games() []string { return t.games }

// ContentTypes returns all content types in definition order.
func (t *Taxonomy) ContentTypes() []model.ContentType { return t.contentTypes }

// ContentTypeByID returns the content type with the given id, or nil.
func (t *Taxonomy) ContentTypeByID(id string) *model.ContentType {
	for i := range t.contentTypes {
		if t.contentTypes[i].ID == id {
			return &t.contentTypes[i]
		}
	}
	return nil
}

// CurrentContentType returns the definition for the selection's active
// content type, or nil when that facet is unset.
func (t *Taxonomy) CurrentContentType(s Selection) *model.ContentType {
	if s.ContentType == "" {
		return nil
	}
	return t.ContentTypeByID(s.ContentType)
}

// Subcategories returns the legal sub-type values for the selection's active
// content type, in definition order. Empty when no content type is selected
// or the type has no sub-types.
func (t *Taxonomy) Subcategories(s Selection) []string {
	ct := t.CurrentContentType(s)
	if ct == nil {
		return nil
	}
	return ct.Subcategories
}
