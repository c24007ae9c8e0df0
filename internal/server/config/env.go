package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// EnvConfig lists the environment variables understood by the server.
// ALLOWED_ORIGINS is comma separated. PORT is kept for hosting platforms
// that only hand out a port number; it is ignored when ADDRESS is set.
type EnvConfig struct {
	Address         string        `env:"ADDRESS"`
	Port            string        `env:"PORT"`
	DatabaseDSN     string        `env:"DATABASE_DSN"`
	LogLevel        string        `env:"LOG_LEVEL"`
	AllowedOrigins  string        `env:"ALLOWED_ORIGINS"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
	RateLimitRPS    float64       `env:"RATE_LIMIT_RPS"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST"`
}

// parseEnv overlays environment variables onto config. Variables from
// envFile are loaded first without overriding the real environment; a
// missing file is not an error. A malformed file or value panics, matching
// the other loaders.
func parseEnv(config *Config, envFile string) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	e := &EnvConfig{
		DatabaseDSN:     config.DatabaseDSN,
		LogLevel:        config.LogLevel,
		AllowedOrigins:  strings.Join(config.AllowedOrigins, ","),
		RequestTimeout:  config.RequestTimeout,
		ShutdownTimeout: config.ShutdownTimeout,
		RateLimitRPS:    config.RateLimitRPS,
		RateLimitBurst:  config.RateLimitBurst,
	}

	if err := envdecode.StrictDecode(e); err != nil {
		if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			return
		}
		panic(err)
	}

	switch {
	case e.Address != "":
		config.EndpointAddrHTTP = e.Address
	case e.Port != "":
		config.EndpointAddrHTTP = ":" + e.Port
	}
	config.DatabaseDSN = e.DatabaseDSN
	config.LogLevel = e.LogLevel
	config.AllowedOrigins = splitList(e.AllowedOrigins)
	config.RequestTimeout = e.RequestTimeout
	config.ShutdownTimeout = e.ShutdownTimeout
	config.RateLimitRPS = e.RateLimitRPS
	config.RateLimitBurst = e.RateLimitBurst
}
