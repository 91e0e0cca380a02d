package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"cyberdl/internal/model"
)

// ErrStaleLoad is returned by Load when another file's panel became active
// while the request was in flight. The result must be discarded, not rendered.
var ErrStaleLoad = errors.New("comment load superseded by another file")

// CommentService synchronizes the comment list for the currently open file.
// Reads are anonymous; writes require a session and are followed by a full
// reload; there is no client-side patching of the list.
type CommentService struct {
	api      CommentsAPI
	sessions *SessionService
	notifier Notifier
	prompter LoginPrompter
	logger   Logger

	mu         sync.Mutex
	activeFile int64
}

// NewCommentService wires a comment synchronizer.
func NewCommentService(api CommentsAPI, sessions *SessionService, notifier Notifier, prompter LoginPrompter, logger Logger) *CommentService {
	return &CommentService{
		api:      api,
		sessions: sessions,
		notifier: notifier,
		prompter: prompter,
		logger:   logger,
	}
}

// Open marks fileID as the file whose comment panel is visible. In-flight
// loads for any other file resolve to ErrStaleLoad.
func (c *CommentService) Open(fileID int64) {
	c.mu.Lock()
	c.activeFile = fileID
	c.mu.Unlock()
}

func (c *CommentService) isActive(fileID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeFile == fileID
}

// Load fetches the full comment list for fileID. On failure the caller gets
// an empty list, never stale data. Results for a file that is no longer
// active are dropped with ErrStaleLoad.
func (c *CommentService) Load(ctx context.Context, fileID int64) ([]model.Comment, error) {
	comments, err := c.api.List(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("loading comments: %w", err)
	}
	if !c.isActive(fileID) {
		return nil, ErrStaleLoad
	}
	return comments, nil
}

// Submit posts a new comment and returns the reloaded list. An anonymous user
// triggers the login prompt instead and the endpoint is never called. rating 0
// means "no rating"; otherwise it must be 1..5.
func (c *CommentService) Submit(ctx context.Context, fileID int64, content string, rating int) ([]model.Comment, error) {
	if !c.sessions.IsAuthenticated() {
		c.prompter.RequestLogin()
		return nil, nil
	}

	if strings.TrimSpace(content) == "" {
		return nil, &ValidationError{Msg: "comment text is required"}
	}
	if rating != 0 && (rating < 1 || rating > 5) {
		return nil, &ValidationError{Msg: "rating must be between 1 and 5"}
	}

	token, err := c.sessions.Token()
	if err != nil {
		return nil, err
	}

	if err := c.api.Create(ctx, token, fileID, content, rating); err != nil {
		return nil, c.handleWriteError("posting comment", err)
	}

	c.notifier.Notify("Comment posted", "thanks for your feedback", NotifyInfo)
	return c.Load(ctx, fileID)
}

// Remove deletes a comment and returns the reloaded list for fileID. The
// server alone decides ownership; the client never retries a rejected delete.
func (c *CommentService) Remove(ctx context.Context, commentID, fileID int64) ([]model.Comment, error) {
	token, err := c.sessions.Token()
	if err != nil {
		return nil, err
	}

	if err := c.api.Delete(ctx, token, commentID); err != nil {
		return nil, c.handleWriteError("deleting comment", err)
	}

	c.notifier.Notify("Comment deleted", "", NotifyInfo)
	return c.Load(ctx, fileID)
}

// handleWriteError surfaces a failed write. A token rejection additionally
// clears the session: a rejected token is not retryable and must not linger.
func (c *CommentService) handleWriteError(action string, err error) error {
	if IsAuthError(err) {
		if clearErr := c.sessions.Logout(); clearErr != nil {
			c.logger.Error("clearing rejected session", "error", clearErr)
		}
		c.notifier.Notify("Session expired", "please log in again", NotifyError)
		return fmt.Errorf("%s: %w", action, err)
	}
	c.notifier.Notify("Error", err.Error(), NotifyError)
	return fmt.Errorf("%s: %w", action, err)
}
