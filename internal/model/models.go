package model

// User is the authenticated identity returned by the auth endpoint.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// Session pairs a user with the token that authorizes writes on their behalf.
// The two are always stored and cleared together; a missing session means the
// client is anonymous.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Comment is a single comment on a catalog file, as returned by the comments
// endpoint. Rating is 0 when the author left no star rating.
type Comment struct {
	ID        int64  `json:"id"`
	FileID    int64  `json:"file_id"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	Rating    int    `json:"rating"`
	CreatedAt string `json:"created_at"`
}

// CatalogEntry is one file listing in the merged catalog. Curated entries come
// from the local database and are immutable; user-submitted entries are mapped
// from RemoteFileRecord on every refresh.
//
// ID is unique across both origins ("official-" / "user-" prefix). FileID is
// the numeric key the comments endpoint expects.
type CatalogEntry struct {
	ID           string
	FileID       int64
	Name         string
	Category     string
	Game         string
	ContentType  string
	DownloadType string
	ModType      string
	Size         string
	Downloads    int64
	Rating       float64
	Version      string
	FileURL      string // empty means undownloadable
	FileType     string // "direct", "torrent", "upload" or empty
	Author       string
	IsOfficial   bool
}

// Downloadable reports whether the entry has a usable file URL.
func (e CatalogEntry) Downloadable() bool {
	return e.FileURL != ""
}

// RemoteFileRecord is the wire shape of a user-submitted listing from the
// user-files endpoint.
type RemoteFileRecord struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Game         string  `json:"game"`
	ContentType  string  `json:"content_type"`
	DownloadType string  `json:"download_type"`
	ModType      string  `json:"mod_type"`
	Size         string  `json:"size"`
	Version      string  `json:"version"`
	FileURL      string  `json:"file_url"`
	FileType     string  `json:"file_type"`
	Downloads    int64   `json:"downloads"`
	Rating       float64 `json:"rating"`
	Author       string  `json:"author"`
	CreatedAt    string  `json:"created_at"`
}

// FileSubmission is the request body for publishing a new listing.
type FileSubmission struct {
	Name         string `json:"name"`
	Game         string `json:"game"`
	ContentType  string `json:"contentType"`
	DownloadType string `json:"downloadType,omitempty"`
	ModType      string `json:"modType,omitempty"`
	Size         string `json:"size"`
	Version      string `json:"version"`
	FileURL      string `json:"fileUrl"`
	FileType     string `json:"fileType"`
}

// Category is one top-level catalog axis (games, mods, scripts, ...).
type Category struct {
	ID   string
	Name string
	Icon string
}

// ContentType is a taxonomy entry for the content-type facet. Subcategories,
// when present, are the legal sub-type values while this type is selected:
// version types under "download", mod categories under "mods".
type ContentType struct {
	ID            string
	Name          string
	Icon          string
	Subcategories []string
}
