package core

import (
	"context"
	"io"

	"cyberdl/internal/model"
)

// AuthAPI is the remote authentication endpoint.
type AuthAPI interface {
	// Login exchanges credentials for a session. Invalid credentials yield
	// an AuthError carrying the server's message verbatim.
	Login(ctx context.Context, email, password string) (*model.Session, error)

	// Register creates an account and returns the fresh session. An already
	// taken email/username yields a ValidationError.
	Register(ctx context.Context, username, email, password string) (*model.Session, error)
}

// CommentsAPI is the remote comments endpoint.
type CommentsAPI interface {
	// List returns all comments for a file in server order (assumed
	// reverse-chronological); the client never re-sorts.
	List(ctx context.Context, fileID int64) ([]model.Comment, error)

	// Create posts a new comment. rating 0 means "no rating".
	Create(ctx context.Context, token string, fileID int64, content string, rating int) error

	// Delete removes a comment. Ownership is enforced server-side.
	Delete(ctx context.Context, token string, commentID int64) error
}

// FilesAPI is the remote user-files endpoint.
type FilesAPI interface {
	// List returns every user-submitted listing.
	List(ctx context.Context) ([]model.RemoteFileRecord, error)

	// Create publishes a new listing on behalf of userID.
	Create(ctx context.Context, userID int64, sub model.FileSubmission) error
}

// SessionRepository is the durable store for the current session. Token and
// user are written and cleared together; Read returns (nil, nil) for an
// anonymous session.
type SessionRepository interface {
	Read() (*model.Session, error)
	Write(s *model.Session) error
	Clear() error
}

// CatalogStore provides the curated half of the catalog and the facet
// taxonomy. All of it is immutable at runtime.
type CatalogStore interface {
	Categories() ([]model.Category, error)
	ContentTypes() ([]model.ContentType, error)
	Games() ([]string, error)
	Entries() ([]model.CatalogEntry, error)
	Close() error
}

// Vault stores upload payloads and returns the public URL a listing should
// reference.
type Vault interface {
	// Put stores size bytes read from r under key and returns the URL at
	// which the payload is reachable.
	Put(ctx context.Context, key string, r io.Reader, size int64) (string, error)

	// ValidateSetup verifies that the backend is accessible.
	ValidateSetup() error
}

// NotifyKind classifies a notification for the presentation layer.
type NotifyKind string

const (
	NotifyInfo  NotifyKind = "info"
	NotifyError NotifyKind = "error"
)

// Notifier is the outcome side-channel. Calls never fail and return nothing.
type Notifier interface {
	Notify(title, description string, kind NotifyKind)
}

// LoginPrompter is invoked when an anonymous user attempts a gated action
// (comment submission, file upload).
type LoginPrompter interface {
	RequestLogin()
}
