package core

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"cyberdl/internal/model"
)

// File type values accepted in a submission.
const (
	FileTypeDirect  = "direct"
	FileTypeTorrent = "torrent"
	FileTypeUpload  = "upload"
)

// UploadService publishes user-submitted listings. A listing either links an
// external URL (direct/torrent) or carries a local payload that is first
// stored through the vault, whose URL then becomes the listing's fileUrl.
type UploadService struct {
	api      FilesAPI
	sessions *SessionService
	registry *Registry
	vault    Vault
	notifier Notifier
	prompter LoginPrompter
	logger   Logger
	idgen    IDGenerator
}

// NewUploadService wires an upload service. vault may be nil when no payload
// storage backend is configured; submissions with local payloads then fail
// with a ValidationError.
func NewUploadService(api FilesAPI, sessions *SessionService, registry *Registry, vault Vault, notifier Notifier, prompter LoginPrompter, logger Logger, idgen IDGenerator) *UploadService {
	return &UploadService{
		api:      api,
		sessions: sessions,
		registry: registry,
		vault:    vault,
		notifier: notifier,
		prompter: prompter,
		logger:   logger,
		idgen:    idgen,
	}
}

// Payload is a local file to store through the vault as part of a submission.
type Payload struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// Submit validates and publishes a listing, then refreshes the registry so
// the new entry appears in the merged catalog. Anonymous users trigger the
// login prompt and nothing is sent.
func (u *UploadService) Submit(ctx context.Context, sub model.FileSubmission, payload *Payload) error {
	user := u.sessions.CurrentUser()
	if user == nil {
		u.prompter.RequestLogin()
		return nil
	}

	if err := u.validate(sub, payload); err != nil {
		return err
	}

	if payload != nil {
		key := u.idgen.New() + "/" + path.Base(payload.Name)
		url, err := u.vault.Put(ctx, key, payload.Reader, payload.Size)
		if err != nil {
			u.notifier.Notify("Upload failed", err.Error(), NotifyError)
			return fmt.Errorf("storing payload: %w", err)
		}
		sub.FileURL = url
		sub.FileType = FileTypeUpload
		u.logger.Info("payload stored", "key", key)
	}
	if sub.FileType == "" {
		sub.FileType = FileTypeDirect
	}

	if err := u.api.Create(ctx, user.ID, sub); err != nil {
		u.notifier.Notify("Upload failed", err.Error(), NotifyError)
		return fmt.Errorf("publishing listing: %w", err)
	}

	u.notifier.Notify("File published", sub.Name, NotifyInfo)

	// Refresh failure is not a submission failure; the entry exists
	// server-side and will appear on the next refresh.
	if err := u.registry.Refresh(ctx); err != nil {
		u.logger.Warn("post-submit refresh failed", "error", err)
	}
	return nil
}

// validate mirrors the endpoint's required-field rules so bad submissions are
// rejected without a network call.
func (u *UploadService) validate(sub model.FileSubmission, payload *Payload) error {
	required := map[string]string{
		"name":    sub.Name,
		"game":    sub.Game,
		"type":    sub.ContentType,
		"size":    sub.Size,
		"version": sub.Version,
	}
	for _, field := range []string{"name", "game", "type", "size", "version"} {
		if strings.TrimSpace(required[field]) == "" {
			return &ValidationError{Msg: field + " is required"}
		}
	}

	switch sub.ContentType {
	case ContentTypeDownload:
		if sub.DownloadType == "" {
			return &ValidationError{Msg: "download type is required for downloads"}
		}
	case ContentTypeMods:
		if sub.ModType == "" {
			return &ValidationError{Msg: "mod type is required for mods"}
		}
	}

	if payload == nil && sub.FileURL == "" {
		return &ValidationError{Msg: "a file URL or a local file is required"}
	}
	if payload != nil && u.vault == nil {
		return &ValidationError{Msg: "no upload storage configured"}
	}
	return nil
}
