package session

import (
	"fmt"

	"cyberdl/internal/config"
	"cyberdl/internal/core"
)

// NewRepositoryFromConfig creates a SessionRepository based on the session
// config type.
func NewRepositoryFromConfig(cfg config.SessionConfig) (core.SessionRepository, error) {
	switch cfg.Type {
	case "file", "":
		if cfg.TokenPath == "" || cfg.UserPath == "" || cfg.IdentityPath == "" {
			return nil, fmt.Errorf("file session store requires token_path, user_path and identity_path")
		}
		return NewFileRepository(cfg.TokenPath, cfg.UserPath, cfg.IdentityPath), nil
	case "memory":
		return NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unknown session store type: %s", cfg.Type)
	}
}
