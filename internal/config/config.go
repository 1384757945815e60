// Package config loads server configuration from an optional TOML file with
// environment overrides. Precedence: defaults, then file, then PHYSIO_* env.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config is the full server configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Admin  AdminConfig  `toml:"admin"`
	Email  EmailConfig  `toml:"email"`
}

// ServerConfig covers the HTTP listener and storage.
type ServerConfig struct {
	Addr            string `toml:"addr"`
	Env             string `toml:"env"` // "development" or "production"
	DBPath          string `toml:"db_path"`
	CSRFKey         string `toml:"csrf_key"` // 32 bytes, generated in development when empty
	RateLimitPerMin int    `toml:"rate_limit_per_min"`
}

// AdminConfig is the single admin account. The admin is configuration, not a
// roster entry.
type AdminConfig struct {
	Email    string `toml:"email"`
	Password string `toml:"password"`
}

// EmailConfig configures the statement sender. An empty APIKey selects the
// noop sender.
type EmailConfig struct {
	APIKey  string `toml:"api_key"`
	From    string `toml:"from"`
	ReplyTo string `toml:"reply_to"`
}

// DefaultConfig returns the development defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			Env:             "development",
			DBPath:          "physionomie.db",
			RateLimitPerMin: 240,
		},
		Admin: AdminConfig{
			Email:    "admin@praxis.de",
			Password: "admin123",
		},
		Email: EmailConfig{
			From:    "Physionomie <noreply@praxis.de>",
			ReplyTo: "info@praxis.de",
		},
	}
}

// Load reads the config file at path when it exists, then applies
// environment overrides. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// IsProduction reports whether the server runs with production hardening.
func (c Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Addr, "PHYSIO_ADDR")
	setString(&cfg.Server.Env, "PHYSIO_ENV")
	setString(&cfg.Server.DBPath, "PHYSIO_DB_PATH")
	setString(&cfg.Server.CSRFKey, "PHYSIO_CSRF_KEY")
	setInt(&cfg.Server.RateLimitPerMin, "PHYSIO_RATE_LIMIT_PER_MIN")
	setString(&cfg.Admin.Email, "PHYSIO_ADMIN_EMAIL")
	setString(&cfg.Admin.Password, "PHYSIO_ADMIN_PASSWORD")
	setString(&cfg.Email.APIKey, "PHYSIO_RESEND_API_KEY")
	setString(&cfg.Email.From, "PHYSIO_RESEND_FROM")
	setString(&cfg.Email.ReplyTo, "PHYSIO_REPLY_TO")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = n
		}
	}
}
