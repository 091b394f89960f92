package config

import (
	"strings"
	"time"
)

// Config holds runtime settings for the companion CLI.
//
// Fields:
//   - BackendURL: base URL of the Supabase project (https://<ref>.supabase.co).
//   - BackendAnonKey: the project's public anon key.
//   - DatabasePath: path to the local SQLite file.
//   - OnlineCheckInterval: how often the client probes backend reachability.
//   - RequestTimeout: per-request HTTP timeout for backend calls.
type Config struct {
	BackendURL          string
	BackendAnonKey      string
	DatabasePath        string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = ""
	c.BackendAnonKey = ""
	c.DatabasePath = "companion.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
}

// LocalOnly reports whether the backend is unconfigured, in which case the
// app runs against the local store alone. Template placeholder values left
// over from a config sample count as unconfigured.
func (c *Config) LocalOnly() bool {
	return c.BackendURL == "" || c.BackendAnonKey == "" ||
		strings.Contains(c.BackendURL, "YOUR_PROJECT") ||
		strings.Contains(c.BackendAnonKey, "YOUR_ANON")
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
