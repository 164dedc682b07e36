// Package config loads the viewer settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexballas/imview/internal/logger"
	"github.com/alexballas/imview/navigator"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the viewer settings.
type Config struct {
	Extensions     []string      `yaml:"extensions"`      // allow-list, case-insensitive
	Ignore         []string      `yaml:"ignore"`          // glob patterns on the base name
	ResizeDebounce time.Duration `yaml:"resize_debounce"` // minimum gap between rescales
	CacheSize      int           `yaml:"cache_size"`      // decoded images kept in memory
	Watch          bool          `yaml:"watch"`           // reload when the directory changes
	LogLevel       string        `yaml:"log_level"`
	Window         struct {
		Width  float32 `yaml:"width"`
		Height float32 `yaml:"height"`
	} `yaml:"window"`
}

// Default returns the built-in settings.
func Default() Config {
	cfg := Config{
		Extensions:     append([]string(nil), navigator.DefaultExtensions...),
		Ignore:         []string{"._*"},
		ResizeDebounce: 100 * time.Millisecond,
		CacheSize:      8,
		LogLevel:       "info",
	}
	cfg.Window.Width = 1024
	cfg.Window.Height = 768
	return cfg
}

// DefaultPath is $XDG_CONFIG_HOME/imview/config.yaml or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "imview", "config.yaml"), nil
}

// Load reads the file at DefaultPath.
func Load() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads path on top of the defaults. A missing file yields the
// defaults; fields absent from the file keep their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks value ranges and that the extension and ignore lists
// build a usable filter.
func (c Config) Validate() error {
	var problems []string

	if c.ResizeDebounce < 0 {
		problems = append(problems, "resize_debounce must not be negative")
	}
	if c.CacheSize < 0 {
		problems = append(problems, "cache_size must not be negative")
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		problems = append(problems, "window size must not be negative")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := c.Filter(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Filter builds the navigator filter described by the configuration.
func (c Config) Filter() (*navigator.Filter, error) {
	return navigator.NewFilter(c.Extensions, c.Ignore)
}
