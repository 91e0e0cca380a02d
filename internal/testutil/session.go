package testutil

import (
	"cyberdl/internal/core"
	"cyberdl/internal/model"
	"cyberdl/internal/session"
)

// NewSessionRepo returns an empty in-memory session repository.
func NewSessionRepo() core.SessionRepository {
	return session.NewMemoryRepository()
}

// NewAuthedRepo returns an in-memory session repository pre-populated with a
// session for the given user id and token.
func NewAuthedRepo(userID int64, token string) core.SessionRepository {
	repo := session.NewMemoryRepository()
	repo.Write(&model.Session{
		Token: token,
		User: model.User{
			ID:        userID,
			Username:  "tester",
			Email:     "tester@example.com",
			CreatedAt: "2024-01-15T10:30:00Z",
		},
	})
	return repo
}
