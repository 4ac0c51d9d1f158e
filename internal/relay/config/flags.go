package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/refundport/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   bind address for the HTTP API (default from Config)
//	-f string   sender (From) email address (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "address and port to listen on")
	fs.StringVar(&cfg.SenderEmail, "f", cfg.SenderEmail, "sender email address")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
