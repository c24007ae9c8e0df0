package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/exercisetracker/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     HTTP bind address (e.g. ":3000")
//	-d string     PostgreSQL DSN
//	-l string     log level
//	-o string     comma-separated CORS origins
//	-t duration   per-request timeout
//	-s duration   shutdown grace period
//	-r float      rate limit, requests per second per client
//	-b int        rate limit burst
//
// Arguments are filtered through flagx.FilterArgs first so that -c/-config
// and unknown flags do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l", "-o", "-t", "-s", "-r", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins, comma separated")
	fs.DurationVar(&config.RequestTimeout, "t", config.RequestTimeout, "request timeout")
	fs.DurationVar(&config.ShutdownTimeout, "s", config.ShutdownTimeout, "shutdown timeout")
	fs.Float64Var(&config.RateLimitRPS, "r", config.RateLimitRPS, "rate limit (requests per second per client)")
	fs.IntVar(&config.RateLimitBurst, "b", config.RateLimitBurst, "rate limit burst")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AllowedOrigins = splitList(*origins)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
