package config

import (
	"os"

	"github.com/dmitrijs2005/friendstories/internal/flagx"
	"github.com/dmitrijs2005/friendstories/internal/timex"
	json "github.com/goccy/go-json"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the current values in place.
type JsonConfig struct {
	ServerURL      *string         `json:"server_url"`
	DatabasePath   *string         `json:"database_path"`
	PageLimit      *int            `json:"page_limit"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	SettingsPath   *string         `json:"settings_path"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays Config with the file named by -c or -config. Read or
// unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.PageLimit != nil {
		cfg.PageLimit = *jc.PageLimit
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SettingsPath != nil {
		cfg.SettingsPath = *jc.SettingsPath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
