package vault

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cyberdl/internal/core"
)

// FileSystemVault stores upload payloads under a local directory. Shareable
// links require a public_base_url that serves the root (a web server or
// synced share); otherwise Put returns file:// URLs.
type FileSystemVault struct {
	name          string
	root          string
	publicBaseURL string
}

var _ core.Vault = (*FileSystemVault)(nil)

// NewFileSystemVault creates a vault rooted at the given path.
func NewFileSystemVault(name, root, publicBaseURL string) (*FileSystemVault, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create vault root: %w", err)
	}
	return &FileSystemVault{name: name, root: root, publicBaseURL: publicBaseURL}, nil
}

// Put stores size bytes from r under key and returns the payload's URL.
func (v *FileSystemVault) Put(_ context.Context, key string, r io.Reader, size int64) (string, error) {
	destPath := filepath.Join(v.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create payload directory: %w", err)
	}

	if err := writeFile(destPath, r, size); err != nil {
		return "", err
	}

	if v.publicBaseURL != "" {
		return v.publicBaseURL + "/" + key, nil
	}
	return "file://" + destPath, nil
}

// ValidateSetup verifies that the vault root is an accessible directory.
func (v *FileSystemVault) ValidateSetup() error {
	info, err := os.Stat(v.root)
	if err != nil {
		return fmt.Errorf("vault root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault root is not a directory: %s", v.root)
	}
	return nil
}

// writeFile writes data from r to destPath using atomic write (temp file + rename).
func writeFile(destPath string, r io.Reader, expectedSize int64) error {
	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if written != expectedSize {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", expectedSize, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
