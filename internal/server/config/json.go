package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/exercisetracker/internal/flagx"
	"github.com/dmitrijs2005/exercisetracker/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file.
// Duration fields accept "10s"-style strings or integer nanoseconds.
// Fields left out of the file keep their current values.
type JsonConfig struct {
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	DatabaseDSN      *string         `json:"database_dsn"`
	LogLevel         *string         `json:"log_level"`
	AllowedOrigins   []string        `json:"allowed_origins"`
	RequestTimeout   *timex.Duration `json:"request_timeout"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
	RateLimitRPS     *float64        `json:"rate_limit_rps"`
	RateLimitBurst   *int            `json:"rate_limit_burst"`
}

// parseJson loads the file named by -c/-config in args, if any, and copies
// the fields it sets into config. An unreadable file or invalid JSON panics.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.RequestTimeout != nil {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.RateLimitRPS != nil {
		config.RateLimitRPS = *c.RateLimitRPS
	}
	if c.RateLimitBurst != nil {
		config.RateLimitBurst = *c.RateLimitBurst
	}
}
