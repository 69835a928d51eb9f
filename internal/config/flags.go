package config

import (
	"flag"
	"os"

	"github.com/osmansemir/mindvale-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-s string   API base URL (default from Config)
//	-t string   token file path
//	-l int      default page size
//	-v          verbose (debug) logging
//
// Arguments are filtered through flagx.FilterArgs so flags owned by other
// parsing stages (like -c/-config) do not break this FlagSet.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-t", "-l", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.APIBaseURL, "s", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.TokenFile, "t", cfg.TokenFile, "token file path")
	fs.IntVar(&cfg.PageSize, "l", cfg.PageSize, "default page size")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
