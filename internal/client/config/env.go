package config

import "github.com/dmitrijs2005/friendstories/internal/flagx"

func parseEnv(cfg *Config) {
	flagx.EnvString(&cfg.ServerURL, "FS_SERVER_URL")
	flagx.EnvString(&cfg.DatabasePath, "FS_DATABASE_PATH")
	flagx.EnvInt(&cfg.PageLimit, "FS_PAGE_LIMIT")
	flagx.EnvDuration(&cfg.RequestTimeout, "FS_REQUEST_TIMEOUT")
	flagx.EnvString(&cfg.SettingsPath, "FS_SETTINGS_PATH")
	flagx.EnvString(&cfg.LogLevel, "FS_LOG_LEVEL")
}
