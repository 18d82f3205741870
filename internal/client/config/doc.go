// Package config loads runtime configuration for the stories CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//  4. FS_* environment variables (see parseEnv).
//
// Supported flags
//
//	-s string     base URL of the stories API
//	-db string    path of the local SQLite cache
//	-limit int    feed page size (1-50)
//	-timeout dur  per-request timeout
//	-settings     path of the viewer settings file
//	-l string     log level
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "10s" or integer
// nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:3000",
//	  "database_path": "stories.db",
//	  "page_limit": 10,
//	  "request_timeout": "10s",
//	  "settings_path": "settings.yaml",
//	  "log_level": "info"
//	}
package config
