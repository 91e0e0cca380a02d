package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"cyberdl/internal/api"
	"cyberdl/internal/config"
	"cyberdl/internal/core"
	"cyberdl/internal/database"
	"cyberdl/internal/session"
	"cyberdl/internal/vault"
)

// App is the application layer between the CLI and the core services.
// It constructs all dependencies from config and manages their lifecycle
// on Close.
type App struct {
	cfg     *config.Config
	store   core.CatalogStore
	logFile *os.File

	Sessions *core.SessionService
	Registry *core.Registry
	Taxonomy *core.Taxonomy
	Comments *core.CommentService
	Uploads  *core.UploadService
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "Login", "Browse").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	opID := time.Now().UTC().Format("20060102T150405Z") + "-" + operation
	slogger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	client := api.NewClient(cfg.Endpoints.AuthURL, cfg.Endpoints.CommentsURL, cfg.Endpoints.FilesURL, logger)

	repo, err := session.NewRepositoryFromConfig(cfg.Session)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating session store: %w", err)
	}

	store, err := database.NewStoreFromConfig(cfg.Database)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("opening catalog store: %w", err)
	}

	taxonomy, err := core.NewTaxonomy(store)
	if err != nil {
		store.Close()
		logFile.Close()
		return nil, fmt.Errorf("loading taxonomy: %w", err)
	}

	notifier := NewTerminalNotifier()
	prompter := NewTerminalPrompter()

	sessions := core.NewSessionService(client.Auth(), repo, logger)

	registry, err := core.NewRegistry(store, client.Files(), notifier, logger)
	if err != nil {
		store.Close()
		logFile.Close()
		return nil, fmt.Errorf("building catalog registry: %w", err)
	}

	comments := core.NewCommentService(client.Comments(), sessions, notifier, prompter, logger)

	var v core.Vault
	if len(cfg.Vaults) > 0 {
		v, err = vault.NewVaultFromConfig(context.Background(), cfg.Vaults[0])
		if err != nil {
			store.Close()
			logFile.Close()
			return nil, fmt.Errorf("creating vault: %w", err)
		}
	}

	uploads := core.NewUploadService(client.Files(), sessions, registry, v, notifier, prompter, logger, core.UUIDGenerator{})

	return &App{
		cfg:      cfg,
		store:    store,
		logFile:  logFile,
		Sessions: sessions,
		Registry: registry,
		Taxonomy: taxonomy,
		Comments: comments,
		Uploads:  uploads,
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	var firstErr error
	if err := a.store.Close(); err != nil {
		firstErr = fmt.Errorf("closing catalog store: %w", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
