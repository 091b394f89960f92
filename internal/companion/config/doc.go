// Package config loads runtime configuration for the companion CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. COMPANION_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   base URL of the backend project
//	-k string   backend anon key
//	-d string   path to the local database file
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be
// either strings like "3s" or integer nanoseconds:
//
//	{
//	  "backend_url": "https://myref.supabase.co",
//	  "backend_anon_key": "eyJ...",
//	  "database_path": "companion.db",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s"
//	}
//
// A Config with no backend URL or anon key (or with template placeholders
// still in place) puts the app into local-only mode; see Config.LocalOnly.
package config
