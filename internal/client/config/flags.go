package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/exercisetracker/internal/flagx"
)

// parseFlags populates Config from -a and -t. Other arguments are filtered
// out with flagx.FilterArgs so they do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the exercise tracker API")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
