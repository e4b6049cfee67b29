// Package config loads the optional tada.toml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/Makepad-fr/tada/internal/model"
)

// DefaultFileNames are looked up in the working directory when no -config
// flag is given.
var DefaultFileNames = []string{"tada.toml", ".tada.toml"}

// Config is the tool's settings. No field reads the environment; the
// env-default tags only provide defaults.
type Config struct {
	DataDir         string `toml:"data_dir" env-default:"."`
	Theme           string `toml:"theme" env-default:"classic"`
	Color           string `toml:"color" env-default:"auto"`
	LogLevel        string `toml:"log_level" env-default:"warn"`
	LogFormat       string `toml:"log_format" env-default:"text"`
	DefaultPriority string `toml:"default_priority" env-default:"Medium"`
}

// Load reads path, or the first default file found in the working directory
// when path is empty. With no file at all the defaults are returned.
func Load(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		path = findConfigFile()
	}
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("apply config defaults: %w", err)
		}
		return &cfg, cfg.Validate()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, cfg.Validate()
}

func findConfigFile() string {
	for _, name := range DefaultFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Validate rejects values outside the known sets.
func (c *Config) Validate() error {
	var errs []error
	if !oneOf(c.Theme, "classic", "neon", "mono") {
		errs = append(errs, fmt.Errorf("theme: unknown value %q", c.Theme))
	}
	if !oneOf(c.Color, "auto", "always", "never") {
		errs = append(errs, fmt.Errorf("color: unknown value %q", c.Color))
	}
	if !oneOf(c.LogLevel, "debug", "info", "warn", "error", "fatal") {
		errs = append(errs, fmt.Errorf("log_level: unknown value %q", c.LogLevel))
	}
	if !oneOf(c.LogFormat, "text", "json", "logfmt") {
		errs = append(errs, fmt.Errorf("log_format: unknown value %q", c.LogFormat))
	}
	if _, err := model.ParsePriority(c.DefaultPriority); err != nil {
		errs = append(errs, fmt.Errorf("default_priority: %w", err))
	}
	return errors.Join(errs...)
}

// Priority returns DefaultPriority parsed, falling back to Medium.
func (c *Config) Priority() model.Priority {
	p, err := model.ParsePriority(c.DefaultPriority)
	if err != nil {
		return model.PriorityMedium
	}
	return p
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}
