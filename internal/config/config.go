// Package config loads strata's TOML configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jwulff/strata/internal/motion"
)

// Config represents the main configuration
type Config struct {
	Catalog        string `toml:"catalog"`          // YAML or SQLite catalog; empty uses the built-in one
	Watch          bool   `toml:"watch"`            // Reload a YAML catalog when it changes
	BaseDurationMs int    `toml:"base_duration_ms"` // Full-history sweep time
	FrameRate      int    `toml:"frame_rate"`       // Indicator ticks per second
	Easing         string `toml:"easing"`           // in-out-quad or linear
	BarMargin      int    `toml:"bar_margin"`       // Columns left and right of the bar
	LogFile        string `toml:"log_file"`
	Debug          bool   `toml:"debug"`
	FeedSocket     string `toml:"feed_socket"` // Publish notifications to this Unix socket
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Watch:          true,
		BaseDurationMs: int(motion.BaseDuration / time.Millisecond),
		FrameRate:      30,
		Easing:         "in-out-quad",
		BarMargin:      2,
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "strata", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "strata", "config.toml")
}

// Load reads path over the defaults. A missing file is not an error.
// Environment overrides: STRATA_CATALOG, STRATA_FEED_SOCKET.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if v := os.Getenv("STRATA_CATALOG"); v != "" {
		cfg.Catalog = v
	}
	if v := os.Getenv("STRATA_FEED_SOCKET"); v != "" {
		cfg.FeedSocket = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.BaseDurationMs <= 0 {
		return fmt.Errorf("base_duration_ms must be positive, got %d", c.BaseDurationMs)
	}
	if c.FrameRate <= 0 || c.FrameRate > 240 {
		return fmt.Errorf("frame_rate must be between 1 and 240, got %d", c.FrameRate)
	}
	if c.BarMargin < 0 {
		return fmt.Errorf("bar_margin must not be negative, got %d", c.BarMargin)
	}
	if _, err := motion.ParseEasing(c.Easing); err != nil {
		return err
	}
	return nil
}

// BaseDuration returns base_duration_ms as a duration.
func (c *Config) BaseDuration() time.Duration {
	return time.Duration(c.BaseDurationMs) * time.Millisecond
}

// FrameInterval is the time between indicator ticks.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

// MotionOptions builds controller options from the config.
func (c *Config) MotionOptions() ([]motion.Option, error) {
	easing, err := motion.ParseEasing(c.Easing)
	if err != nil {
		return nil, err
	}
	return []motion.Option{
		motion.WithBaseDuration(c.BaseDuration()),
		motion.WithEasing(easing),
	}, nil
}

// Encode writes the config as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
