// Package config loads growthmap settings from GROWTHMAP_* environment
// variables and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

// EnvPrefix is prepended to every variable name in Config's tags.
const EnvPrefix = "GROWTHMAP_"

// Motion levels.
const (
	MotionFull    = "full"
	MotionReduced = "reduced"
)

// Config controls runtime behavior for the growth map.
type Config struct {
	CatalogPath string `env:"CATALOG"`
	DBPath      string `env:"DB"`
	LogPath     string `env:"LOG"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Motion      string `env:"MOTION" envDefault:"full"`
	Watch       bool   `env:"WATCH"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{Prefix: EnvPrefix})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Prefix: EnvPrefix, Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}

// BindFlags registers the global flags, using the current values as
// defaults so flags override the environment.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.CatalogPath, "catalog", c.CatalogPath, "YAML lesson catalog (env GROWTHMAP_CATALOG)")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "SQLite lesson catalog (env GROWTHMAP_DB)")
	fs.StringVar(&c.LogPath, "log-file", c.LogPath, "write logs to this file (env GROWTHMAP_LOG)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error (env GROWTHMAP_LOG_LEVEL)")
	fs.StringVar(&c.Motion, "motion", c.Motion, "animation level: full or reduced (env GROWTHMAP_MOTION)")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "reload the --catalog file when it changes (env GROWTHMAP_WATCH)")
}

// Validate normalizes values and rejects unknown ones.
func (c *Config) Validate() error {
	c.Motion = strings.ToLower(strings.TrimSpace(c.Motion))
	switch c.Motion {
	case "":
		c.Motion = MotionFull
	case MotionFull, MotionReduced:
	default:
		return fmt.Errorf("invalid motion level %q", c.Motion)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	if c.Watch && c.CatalogPath == "" {
		return fmt.Errorf("--watch needs a --catalog file")
	}
	return nil
}
