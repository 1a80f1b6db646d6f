package config

import (
	"flag"
	"os"
	"time"

	"github.com/geosick-health/geosick/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the local database file
//	-a string   base URL of the directory service (empty disables telemetry)
//	-w int      auth submission minimum delay in milliseconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-a", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to local database file")
	fs.StringVar(&cfg.DirectoryAddr, "a", cfg.DirectoryAddr, "directory service base URL")
	authMinDelay := fs.Int("w", int(cfg.AuthMinDelay.Milliseconds()), "auth submission minimum delay (in milliseconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AuthMinDelay = time.Duration(*authMinDelay) * time.Millisecond
}
