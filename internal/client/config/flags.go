package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/friendstories/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Unknown
// arguments are filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-db", "-limit", "-timeout", "-settings", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "base URL of the stories API")
	fs.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "local cache database")
	fs.IntVar(&cfg.PageLimit, "limit", cfg.PageLimit, "feed page size")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.SettingsPath, "settings", cfg.SettingsPath, "viewer settings file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
