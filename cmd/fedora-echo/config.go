package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// config holds the command settings. FEDORA_* environment variables set the
// defaults and flags override them.
type config struct {
	Addr            string        `env:"ADDR" envDefault:"127.0.0.1:3000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	Dev             bool          `env:"DEV"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	MaxBody         int64         `env:"MAX_BODY" envDefault:"1048576"`
	MaxHeader       int           `env:"MAX_HEADER" envDefault:"8192"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

const envPrefix = "FEDORA_"

// loadConfig reads the environment, then applies args on top. Malformed
// environment values are errors, not silent fallbacks to the defaults.
func loadConfig(args []string) (config, error) {
	var cfg config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return config{}, fmt.Errorf("read %s* environment: %w", envPrefix, err)
	}

	fs := flag.NewFlagSet("fedora-echo", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.Dev, "dev", cfg.Dev, "Human-readable development logs")
	fs.DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "Request read timeout")
	fs.DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "Response write timeout")
	fs.Int64Var(&cfg.MaxBody, "max-body", cfg.MaxBody, "Largest accepted Content-Length")
	fs.IntVar(&cfg.MaxHeader, "max-header", cfg.MaxHeader, "Largest accepted head line")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Grace period for in-flight requests")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	return cfg, nil
}
