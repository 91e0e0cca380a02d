package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Default endpoint URLs for the public catalog backend.
const (
	DefaultAuthURL     = "https://functions.poehali.dev/50b21ac1-ef8a-484e-8d5d-10fd6ba6edf8"
	DefaultCommentsURL = "https://functions.poehali.dev/6f5d268c-621f-40b8-9cfd-bfea84774e55"
	DefaultFilesURL    = "https://functions.poehali.dev/5e26d7ac-3cae-4be0-ba5d-dc5c9abd9be5"
)

// Config is the main configuration for cyberdl.
type Config struct {
	ClientID  string          `toml:"client_id"`
	BaseDir   string          `toml:"base_dir"`
	LogDir    string          `toml:"log_dir"`
	Endpoints EndpointsConfig `toml:"endpoints"`
	Session   SessionConfig   `toml:"session"`
	Database  DatabaseConfig  `toml:"database"`
	Vaults    []VaultConfig   `toml:"vaults"`
}

// EndpointsConfig holds the three remote endpoint URLs.
type EndpointsConfig struct {
	AuthURL     string `toml:"auth_url"`
	CommentsURL string `toml:"comments_url"`
	FilesURL    string `toml:"files_url"`
}

// SessionConfig configures the durable session store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type SessionConfig struct {
	Type         string `toml:"type"`                    // "file" (default) or "memory"
	TokenPath    string `toml:"token_path,omitempty"`    // only used for type=file
	UserPath     string `toml:"user_path,omitempty"`     // only used for type=file
	IdentityPath string `toml:"identity_path,omitempty"` // age identity protecting both files
}

// DatabaseConfig configures the curated catalog database.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// VaultConfig configures an upload payload storage backend.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type VaultConfig struct {
	Type string `toml:"type"` // "memory", "s3", or "filesystem"
	Name string `toml:"name"`

	// Public URL prefix for stored payloads. Required for filesystem vaults
	// that should produce shareable links; optional for s3.
	PublicBaseURL string `toml:"public_base_url,omitempty"`

	// S3-specific fields (only used when Type == "s3"). When the static
	// credential pair is empty the default AWS credential chain is used.
	S3Bucket    string `toml:"s3_bucket,omitempty"`
	S3Prefix    string `toml:"s3_prefix,omitempty"`
	S3Region    string `toml:"s3_region,omitempty"`
	S3AccessKey string `toml:"s3_access_key,omitempty"`
	S3SecretKey string `toml:"s3_secret_key,omitempty"`

	// FileSystem-specific fields (only used when Type == "filesystem")
	FSVaultRoot string `toml:"fs_vault_root,omitempty"`
}

// NewConfig creates a Config with the provided identifiers and default paths
// and endpoints.
func NewConfig(clientID, baseDir string) *Config {
	return &Config{
		ClientID: clientID,
		BaseDir:  baseDir,
		LogDir:   filepath.Join(baseDir, "log"),
		Endpoints: EndpointsConfig{
			AuthURL:     DefaultAuthURL,
			CommentsURL: DefaultCommentsURL,
			FilesURL:    DefaultFilesURL,
		},
		Session: SessionConfig{
			Type:         "file",
			TokenPath:    filepath.Join(baseDir, "session", "token.age"),
			UserPath:     filepath.Join(baseDir, "session", "user.age"),
			IdentityPath: filepath.Join(baseDir, "session", "identity.key"),
		},
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided
// Config. Refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
