package config

import "github.com/dmitrijs2005/friendstories/internal/flagx"

// parseEnv applies FS_* variables. PORT is honoured for platforms that
// inject it, and becomes ":<port>".
func parseEnv(config *Config) {
	var port string
	flagx.EnvString(&port, "PORT")
	if port != "" {
		config.HTTPAddr = ":" + port
	}
	flagx.EnvString(&config.HTTPAddr, "FS_HTTP_ADDR")
	flagx.EnvString(&config.DatabaseDSN, "FS_DATABASE_DSN", "DATABASE_URL")
	flagx.EnvString(&config.LogLevel, "FS_LOG_LEVEL")
	flagx.EnvInt(&config.CacheSizeMB, "FS_CACHE_SIZE_MB")
	flagx.EnvDuration(&config.CacheTTL, "FS_CACHE_TTL")
	flagx.EnvBool(&config.MetricsEnabled, "FS_METRICS_ENABLED")
	flagx.EnvBool(&config.SeedOnStart, "FS_SEED_ON_START")
	flagx.EnvDuration(&config.ShutdownTimeout, "FS_SHUTDOWN_TIMEOUT")
}
