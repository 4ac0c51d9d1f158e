package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/refundport/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-r string   base URL of the mail relay (default from Config)
//	-d string   path to the SQLite account database (default from Config)
//	-s int      session lifetime in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-d", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RelayEndpoint, "r", cfg.RelayEndpoint, "base URL of the mail relay")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the SQLite account database")
	sessionTTL := fs.Int("s", int(cfg.SessionTTL.Seconds()), "session lifetime (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SessionTTL = time.Duration(*sessionTTL) * time.Second
}
