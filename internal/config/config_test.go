package config_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"cyberdl/internal/config"
)

func TestConfig(t *testing.T) {
	t.Run("round trips through TOML", func(t *testing.T) {
		cfg := config.NewConfig("client-123", "/data/cyberdl")
		cfg.Vaults = []config.VaultConfig{
			{Type: "s3", Name: "uploads", S3Bucket: "cyberdl-uploads", S3Region: "eu-west-1"},
		}

		var buf bytes.Buffer
		m := &config.Manager{}
		if err := m.Write(&buf, cfg); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		got, err := m.Read(&buf)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}

		if got.ClientID != "client-123" || got.BaseDir != "/data/cyberdl" {
			t.Errorf("identifiers = %q, %q", got.ClientID, got.BaseDir)
		}
		if got.Endpoints.AuthURL != config.DefaultAuthURL {
			t.Errorf("auth url = %q", got.Endpoints.AuthURL)
		}
		if got.Session.Type != "file" || got.Session.TokenPath == "" {
			t.Errorf("session config = %+v", got.Session)
		}
		if len(got.Vaults) != 1 || got.Vaults[0].S3Bucket != "cyberdl-uploads" {
			t.Errorf("vaults = %+v", got.Vaults)
		}
	})

	t.Run("defaults hang off the base dir", func(t *testing.T) {
		cfg := config.NewConfig("c", "/base")
		if cfg.LogDir != filepath.Join("/base", "log") {
			t.Errorf("log dir = %q", cfg.LogDir)
		}
		if cfg.Database.DataDir != filepath.Join("/base", "db") {
			t.Errorf("data dir = %q", cfg.Database.DataDir)
		}
		if cfg.Session.IdentityPath != filepath.Join("/base", "session", "identity.key") {
			t.Errorf("identity path = %q", cfg.Session.IdentityPath)
		}
	})

	t.Run("init writes once and refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cyberdl.toml")
		cfg := config.NewConfig("client-123", "/data/cyberdl")

		if err := config.Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := config.ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.ClientID != "client-123" {
			t.Errorf("ClientID = %q", got.ClientID)
		}

		if err := config.Init(path, cfg); err == nil {
			t.Error("second Init() should refuse to overwrite")
		}
	})
}
