package config

import (
	"os"

	"github.com/dmitrijs2005/friendstories/internal/flagx"
	"github.com/dmitrijs2005/friendstories/internal/timex"
	json "github.com/goccy/go-json"
)

// JsonConfig mirrors Config for JSON files. Pointer fields distinguish an
// absent key from a zero value so a partial file leaves defaults intact.
type JsonConfig struct {
	HTTPAddr        *string         `json:"http_addr"`
	DatabaseDSN     *string         `json:"database_dsn"`
	LogLevel        *string         `json:"log_level"`
	CacheSizeMB     *int            `json:"cache_size_mb"`
	CacheTTL        *timex.Duration `json:"cache_ttl"`
	MetricsEnabled  *bool           `json:"metrics_enabled"`
	SeedOnStart     *bool           `json:"seed_on_start"`
	ShutdownTimeout *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays the file named by -c/-config, if any. An unreadable or
// malformed file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.HTTPAddr != nil {
		config.HTTPAddr = *c.HTTPAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	if c.CacheSizeMB != nil {
		config.CacheSizeMB = *c.CacheSizeMB
	}
	if c.CacheTTL != nil {
		config.CacheTTL = c.CacheTTL.Duration
	}
	if c.MetricsEnabled != nil {
		config.MetricsEnabled = *c.MetricsEnabled
	}
	if c.SeedOnStart != nil {
		config.SeedOnStart = *c.SeedOnStart
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}
