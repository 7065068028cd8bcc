// Package config provides YAML-based configuration loading for framedrive.
package config

import (
	"fmt"
	"strings"
)

// Config is the top-level configuration document.
type Config struct {
	Driver  DriverConfig  `yaml:"driver"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
}

// DriverConfig controls frame pacing and failure handling.
type DriverConfig struct {
	FPS                    int    `yaml:"fps"`
	FailurePolicy          string `yaml:"failure_policy"` // "halt" or "skip"
	MaxConsecutiveFailures int    `yaml:"max_consecutive_failures"`
}

// DisplayConfig selects and tunes the host.
type DisplayConfig struct {
	Host        string `yaml:"host"`         // "tui", "desktop" or "headless"
	Fit         bool   `yaml:"fit"`          // Scale large surfaces down to the terminal
	Border      bool   `yaml:"border"`       // Frame the surface in the terminal
	WindowScale int    `yaml:"window_scale"` // Initial desktop window scale
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Empty means stderr
}

// Host names.
const (
	HostTUI      = "tui"
	HostDesktop  = "desktop"
	HostHeadless = "headless"
)

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Driver.FPS < 1 || c.Driver.FPS > 1000 {
		return fmt.Errorf("config: driver.fps must be in [1, 1000], got %d", c.Driver.FPS)
	}
	switch strings.ToLower(c.Driver.FailurePolicy) {
	case "", "halt", "skip":
	default:
		return fmt.Errorf("config: driver.failure_policy must be halt or skip, got %q", c.Driver.FailurePolicy)
	}
	if c.Driver.MaxConsecutiveFailures < 0 {
		return fmt.Errorf("config: driver.max_consecutive_failures must not be negative")
	}
	switch c.Display.Host {
	case HostTUI, HostDesktop, HostHeadless:
	default:
		return fmt.Errorf("config: display.host must be tui, desktop or headless, got %q", c.Display.Host)
	}
	if c.Display.WindowScale < 1 {
		return fmt.Errorf("config: display.window_scale must be at least 1, got %d", c.Display.WindowScale)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}
