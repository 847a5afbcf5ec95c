// Package config loads the command line tool's settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/massmola/compiler/logger"
)

// DefaultPath is read when no -config flag is given, if it exists.
const DefaultPath = "sketch.yml"

type Config struct {
	Path     string `yaml:"-"`
	Canvas   Canvas `yaml:"canvas"`
	Limits   Limits `yaml:"limits"`
	Store    string `yaml:"store"`
	LogLevel string `yaml:"log_level"`
}

type Canvas struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Background string  `yaml:"background"`
}

type Limits struct {
	// MaxSteps bounds statements plus loop iterations; 0 disables it.
	MaxSteps int    `yaml:"max_steps"`
	Timeout  string `yaml:"timeout"`
}

func Default() *Config {
	return &Config{
		Canvas: Canvas{
			Width:      400,
			Height:     300,
			Background: "white",
		},
		Limits: Limits{
			MaxSteps: 1000000,
			Timeout:  "5s",
		},
		Store:    "drawings.db",
		LogLevel: "info",
	}
}

// Load reads path on top of the defaults, so fields missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	cfg.Path = abs
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	return cfg, nil
}

// LoadDefault loads DefaultPath when it exists and returns the defaults
// otherwise.
func LoadDefault() (*Config, error) {
	if _, err := os.Stat(DefaultPath); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(DefaultPath)
}

func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %gx%g", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Limits.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative, got %d", c.Limits.MaxSteps)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Timeout returns the run timeout; 0 means none.
func (c *Config) Timeout() (time.Duration, error) {
	s := strings.TrimSpace(c.Limits.Timeout)
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Limits.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative, got %s", d)
	}
	return d, nil
}

// Level returns the configured log level.
func (c *Config) Level() logger.Level {
	level, _ := logger.ParseLevel(c.LogLevel)
	return level
}
