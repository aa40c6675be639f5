package config

import (
	"flag"
	"os"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the local database file (default from Config)
//	-v          enable debug logging
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("chatkeeper", flag.ExitOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path of the local database file")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "enable debug logging")

	// ExitOnError: Parse terminates the process on a bad flag.
	_ = fs.Parse(os.Args[1:])
}
