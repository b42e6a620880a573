// Package config holds user preferences loaded from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config is the user-tunable game configuration
type Config struct {
	BoundaryMargin      int     `yaml:"boundary_margin"`
	AnimationSpeed      float64 `yaml:"animation_speed"`
	FastRepeatSpeedStep float64 `yaml:"fast_repeat_speed_step"`
	MaxAnimationSpeed   float64 `yaml:"max_animation_speed"`
	KeyRepeatInitialMs  int     `yaml:"key_repeat_initial_delay_ms"`
	KeyRepeatIntervalMs int     `yaml:"key_repeat_interval_ms"`
	Renderer            string  `yaml:"renderer"`
	TileSize            int     `yaml:"tile_size"`
	LogLevel            string  `yaml:"log_level"`
	Sound               bool    `yaml:"sound"`
	Locale              string  `yaml:"locale"`

	// Bindings rebinds actions to keys, e.g. move_forward: i
	Bindings map[string]string `yaml:"bindings,omitempty"`

	path string
	mu   sync.Mutex

	// file values hidden by OverrideForSession
	overridden   bool
	fileRenderer string
	fileLogLevel string
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		BoundaryMargin:      0,
		AnimationSpeed:      4.0,
		FastRepeatSpeedStep: 0.5,
		MaxAnimationSpeed:   10,
		KeyRepeatInitialMs:  300,
		KeyRepeatIntervalMs: 120,
		Renderer:            "ebiten",
		TileSize:            32,
		LogLevel:            "info",
		Sound:               true,
		Locale:              "en",
	}
}

// Validate reports the first unusable value
func (c *Config) Validate() error {
	switch {
	case c.BoundaryMargin < 0:
		return fmt.Errorf("boundary_margin must not be negative, got %d", c.BoundaryMargin)
	case c.AnimationSpeed <= 0:
		return fmt.Errorf("animation_speed must be positive, got %v", c.AnimationSpeed)
	case c.FastRepeatSpeedStep < 0:
		return fmt.Errorf("fast_repeat_speed_step must not be negative, got %v", c.FastRepeatSpeedStep)
	case c.MaxAnimationSpeed < c.AnimationSpeed:
		return fmt.Errorf("max_animation_speed %v is below animation_speed %v", c.MaxAnimationSpeed, c.AnimationSpeed)
	case c.KeyRepeatInitialMs < 0 || c.KeyRepeatIntervalMs <= 0:
		return fmt.Errorf("invalid key repeat timing %d/%d ms", c.KeyRepeatInitialMs, c.KeyRepeatIntervalMs)
	case c.Renderer != "ebiten" && c.Renderer != "tui":
		return fmt.Errorf("unknown renderer %q", c.Renderer)
	case c.TileSize <= 0:
		return fmt.Errorf("tile_size must be positive, got %d", c.TileSize)
	}
	return nil
}

// Load reads path over the defaults. A missing file yields the defaults and
// remembers path for later saves.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// OverrideForSession sets the renderer and log level for this run only. Save
// keeps writing the values that were loaded. Empty arguments change nothing.
func (c *Config) OverrideForSession(renderer, logLevel string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.overridden {
		c.overridden = true
		c.fileRenderer = c.Renderer
		c.fileLogLevel = c.LogLevel
	}
	if renderer != "" {
		c.Renderer = renderer
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// Save writes the configuration to path, creating parent directories
func (c *Config) Save(path string) error {
	c.mu.Lock()
	renderer, logLevel := c.Renderer, c.LogLevel
	if c.overridden {
		c.Renderer, c.LogLevel = c.fileRenderer, c.fileLogLevel
	}
	data, err := yaml.Marshal(c)
	c.Renderer, c.LogLevel = renderer, logLevel
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Path returns the file this configuration was loaded from, if any
func (c *Config) Path() string {
	return c.path
}

// SetTileSize updates the tile size and persists it when the configuration
// came from a file.
func (c *Config) SetTileSize(size int) error {
	c.mu.Lock()
	c.TileSize = size
	path := c.path
	c.mu.Unlock()

	if path == "" {
		return nil
	}
	return c.Save(path)
}

// DefaultPath returns the per-user config location
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "rollcube.yaml"
	}
	return filepath.Join(dir, "rollcube", "config.yaml")
}

var (
	current   = Default()
	currentMu sync.RWMutex
)

// Current returns the process-wide configuration
func Current() *Config {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// SetCurrent replaces the process-wide configuration
func SetCurrent(c *Config) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = c
}
