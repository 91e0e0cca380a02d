package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"

	"cyberdl/internal/core"
	"cyberdl/internal/model"
)

// FileRepository persists the session as two durable entries, the auth token
// and the serialized user, encrypted at rest with an age X25519 identity
// generated during setup. The two files are always written and cleared
// together; a partial pair is treated as anonymous and cleaned up on read, so
// no token-without-user state is ever observable.
type FileRepository struct {
	tokenPath    string
	userPath     string
	identityPath string
}

var _ core.SessionRepository = (*FileRepository)(nil)

// NewFileRepository creates a repository over the given paths.
func NewFileRepository(tokenPath, userPath, identityPath string) *FileRepository {
	return &FileRepository{
		tokenPath:    tokenPath,
		userPath:     userPath,
		identityPath: identityPath,
	}
}

// Setup generates the age identity if it does not exist yet. Called during
// `cyberdl config init`.
func (r *FileRepository) Setup() error {
	if _, err := os.Stat(r.identityPath); err == nil {
		return nil
	}

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return fmt.Errorf("generating identity: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.identityPath), 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	if err := os.WriteFile(r.identityPath, []byte(identity.String()+"\n"), 0600); err != nil {
		return fmt.Errorf("writing identity: %w", err)
	}
	return nil
}

// Read returns the persisted session, or (nil, nil) when anonymous.
func (r *FileRepository) Read() (*model.Session, error) {
	_, tokenErr := os.Stat(r.tokenPath)
	_, userErr := os.Stat(r.userPath)
	tokenExists := tokenErr == nil
	userExists := userErr == nil

	if !tokenExists && !userExists {
		return nil, nil
	}
	if tokenExists != userExists {
		// Half a session cannot be trusted; drop it.
		if err := r.Clear(); err != nil {
			return nil, fmt.Errorf("clearing partial session: %w", err)
		}
		return nil, nil
	}

	identity, err := r.loadIdentity()
	if err != nil {
		return nil, err
	}

	token, err := decryptFile(r.tokenPath, identity)
	if err != nil {
		return nil, fmt.Errorf("reading token: %w", err)
	}
	userData, err := decryptFile(r.userPath, identity)
	if err != nil {
		return nil, fmt.Errorf("reading user: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(userData, &user); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}

	return &model.Session{Token: string(token), User: user}, nil
}

// Write persists the session, replacing any previous one. Both entries are
// written atomically (temp file + rename); if the second write fails the
// first is rolled back.
func (r *FileRepository) Write(s *model.Session) error {
	identity, err := r.loadIdentity()
	if err != nil {
		return err
	}
	recipient := identity.Recipient()

	userData, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.tokenPath), 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	if err := encryptToFile(r.tokenPath, []byte(s.Token), recipient); err != nil {
		return fmt.Errorf("writing token: %w", err)
	}
	if err := encryptToFile(r.userPath, userData, recipient); err != nil {
		os.Remove(r.tokenPath)
		return fmt.Errorf("writing user: %w", err)
	}
	return nil
}

// Clear removes both entries. Idempotent.
func (r *FileRepository) Clear() error {
	for _, p := range []string{r.tokenPath, r.userPath} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", p, err)
		}
	}
	return nil
}

// loadIdentity reads and parses the age identity file.
func (r *FileRepository) loadIdentity() (*age.X25519Identity, error) {
	data, err := os.ReadFile(r.identityPath)
	if err != nil {
		return nil, fmt.Errorf("reading identity (run `cyberdl config init`?): %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		identity, err := age.ParseX25519Identity(line)
		if err != nil {
			return nil, fmt.Errorf("parsing identity: %w", err)
		}
		return identity, nil
	}
	return nil, fmt.Errorf("no identity found in %s", r.identityPath)
}

// encryptToFile age-encrypts data to recipient and writes it atomically.
func encryptToFile(destPath string, data []byte, recipient age.Recipient) error {
	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("encrypting data: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}

	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(buf.Bytes()); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmpFile.Chmod(0600); err != nil {
		tmpFile.Close()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

// decryptFile reads an age-encrypted file and returns the plaintext.
func decryptFile(path string, identity age.Identity) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	dec, err := age.Decrypt(f, identity)
	if err != nil {
		return nil, fmt.Errorf("decrypting %s: %w", path, err)
	}

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted data: %w", err)
	}
	return data, nil
}
