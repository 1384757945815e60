package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.Env != "development" || cfg.IsProduction() {
		t.Errorf("Server.Env = %q, want development", cfg.Server.Env)
	}
	if cfg.Admin.Email != "admin@praxis.de" {
		t.Errorf("Admin.Email = %q", cfg.Admin.Email)
	}
	if cfg.Email.APIKey != "" {
		t.Errorf("Email.APIKey = %q, want empty (noop sender)", cfg.Email.APIKey)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[server]
addr = ":9090"
env = "production"

[admin]
email = "chef@praxis.de"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" || !cfg.IsProduction() {
		t.Errorf("server = %+v, want file values", cfg.Server)
	}
	if cfg.Admin.Email != "chef@praxis.de" {
		t.Errorf("Admin.Email = %q, want file value", cfg.Admin.Email)
	}
	// Untouched keys keep their defaults.
	if cfg.Admin.Password != "admin123" {
		t.Errorf("Admin.Password = %q, want default", cfg.Admin.Password)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \":9090\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PHYSIO_ADDR", ":7070")
	t.Setenv("PHYSIO_RATE_LIMIT_PER_MIN", "60")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Addr = %q, want env value", cfg.Server.Addr)
	}
	if cfg.Server.RateLimitPerMin != 60 {
		t.Errorf("RateLimitPerMin = %d, want 60", cfg.Server.RateLimitPerMin)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server\naddr"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted a malformed file")
	}
}
