package config

import (
	"time"

	"github.com/dmitrijs2005/friendstories/internal/common"
)

// Config holds runtime settings for the stories CLI.
type Config struct {
	ServerURL      string
	DatabasePath   string
	PageLimit      int
	RequestTimeout time.Duration
	SettingsPath   string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:3000"
	c.DatabasePath = "stories.db"
	c.PageLimit = common.DefaultLimit
	c.RequestTimeout = 10 * time.Second
	c.SettingsPath = "settings.yaml"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays JSON,
// flags and environment. PageLimit is clamped into the accepted range.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	parseEnv(cfg)
	cfg.PageLimit = common.ClampLimit(cfg.PageLimit)
	return cfg
}
