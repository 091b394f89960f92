package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envConfig mirrors the overridable Config fields as COMPANION_* variables.
type envConfig struct {
	BackendURL          string        `envconfig:"BACKEND_URL"`
	BackendAnonKey      string        `envconfig:"BACKEND_ANON_KEY"`
	DatabasePath        string        `envconfig:"DATABASE_PATH"`
	OnlineCheckInterval time.Duration `envconfig:"ONLINE_CHECK_INTERVAL"`
	RequestTimeout      time.Duration `envconfig:"REQUEST_TIMEOUT"`
}

// parseEnv overlays Config with values from COMPANION_* environment
// variables. Unset variables leave the current value in place.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := envconfig.Process("companion", &ec); err != nil {
		panic(err)
	}

	if ec.BackendURL != "" {
		cfg.BackendURL = ec.BackendURL
	}
	if ec.BackendAnonKey != "" {
		cfg.BackendAnonKey = ec.BackendAnonKey
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
	if ec.OnlineCheckInterval != 0 {
		cfg.OnlineCheckInterval = ec.OnlineCheckInterval
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
}
