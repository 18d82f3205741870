package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/friendstories/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
//	-a string     HTTP bind address (e.g., ":3000")
//	-d string     PostgreSQL DSN
//	-l string     log level
//	-cache int    response cache size, MB (0 disables)
//	-ttl dur      cached response lifetime (e.g., "5s")
//	-metrics      expose /metrics
//	-seed         load sample data on start
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l", "-cache", "-ttl", "-metrics", "-seed"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.IntVar(&config.CacheSizeMB, "cache", config.CacheSizeMB, "response cache size in MB")
	fs.DurationVar(&config.CacheTTL, "ttl", config.CacheTTL, "response cache TTL")
	fs.BoolVar(&config.MetricsEnabled, "metrics", config.MetricsEnabled, "expose prometheus metrics")
	fs.BoolVar(&config.SeedOnStart, "seed", config.SeedOnStart, "load sample data")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
