// Package config holds the server configuration, loaded from an optional
// YAML file with environment-variable overrides on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level server configuration.
type Config struct {
	// Listen is the HTTP listen address, eg. "127.0.0.1:8080".
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA zone the institution's timetable times are in.
	Timezone string `yaml:"timezone" json:"timezone"`

	// ReminderMinutes is the default alarm lead time applied when a request
	// does not specify one.
	ReminderMinutes int `yaml:"reminder_minutes" json:"reminder_minutes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Listen:          "127.0.0.1:8080",
		Timezone:        "Europe/London",
		ReminderMinutes: 15,
	}
}

// Load reads a YAML config file and normalises the result. A missing file
// is not an error - defaults are returned so first runs need no setup.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("could not read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config %s: %w", path, err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Normalize fills in zero values so partially-filled configs still behave.
func (c *Config) Normalize() {
	d := Default()
	if c.Listen == "" {
		c.Listen = d.Listen
	}
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if c.ReminderMinutes < 0 {
		c.ReminderMinutes = 0
	}
}

// ApplyEnv overrides fields from TTICS_* environment variables. Invalid
// values are ignored rather than fatal.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TTICS_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("TTICS_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("TTICS_REMINDER_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.ReminderMinutes = n
		}
	}
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
