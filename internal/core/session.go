package core

import (
	"context"
	"fmt"
	"strings"

	"cyberdl/internal/model"
)

// MinPasswordLength mirrors the server-side registration rule so the obvious
// case is rejected before a network call.
const MinPasswordLength = 6

// SessionService owns the auth lifecycle. It has exactly two states,
// anonymous and authenticated; login/register move forward, logout is the
// only way back. There is no token refresh: an expired token surfaces when a
// downstream write is rejected, and the rejecting caller clears the session.
type SessionService struct {
	api    AuthAPI
	repo   SessionRepository
	logger Logger
}

// NewSessionService creates a session service over the given repository.
func NewSessionService(api AuthAPI, repo SessionRepository, logger Logger) *SessionService {
	return &SessionService{api: api, repo: repo, logger: logger}
}

// Register creates an account and persists the resulting session.
func (s *SessionService) Register(ctx context.Context, username, email, password string) (*model.Session, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, &ValidationError{Msg: "username, email and password are required"}
	}
	if len(password) < MinPasswordLength {
		return nil, &ValidationError{Msg: fmt.Sprintf("password must be at least %d characters", MinPasswordLength)}
	}

	sess, err := s.api.Register(ctx, username, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Write(sess); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	s.logger.Info("registered", "username", sess.User.Username)
	return sess, nil
}

// Login authenticates and persists the resulting session.
func (s *SessionService) Login(ctx context.Context, email, password string) (*model.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, &ValidationError{Msg: "email and password are required"}
	}

	sess, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Write(sess); err != nil {
		return nil, fmt.Errorf("persisting session: %w", err)
	}
	s.logger.Info("logged in", "username", sess.User.Username)
	return sess, nil
}

// Logout clears the persisted session unconditionally. Idempotent: logging
// out while anonymous is a no-op. Also used to discard a session whose token
// the server has rejected.
func (s *SessionService) Logout() error {
	if err := s.repo.Clear(); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Current returns the persisted session, or nil when anonymous.
func (s *SessionService) Current() (*model.Session, error) {
	return s.repo.Read()
}

// CurrentUser returns the authenticated user, or nil. Pure read, no network.
func (s *SessionService) CurrentUser() *model.User {
	sess, err := s.repo.Read()
	if err != nil || sess == nil {
		return nil
	}
	u := sess.User
	return &u
}

// IsAuthenticated reports whether a session is persisted. Pure read.
func (s *SessionService) IsAuthenticated() bool {
	sess, err := s.repo.Read()
	return err == nil && sess != nil
}

// Token returns the persisted auth token, or an AuthError when anonymous.
func (s *SessionService) Token() (string, error) {
	sess, err := s.repo.Read()
	if err != nil {
		return "", fmt.Errorf("reading session: %w", err)
	}
	if sess == nil {
		return "", &AuthError{}
	}
	return sess.Token, nil
}
