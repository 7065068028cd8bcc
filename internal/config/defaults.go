package config

import (
	_ "embed"
)

//go:embed defaults/framedrive.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Driver: DriverConfig{
			FPS:                    60,
			FailurePolicy:          "halt",
			MaxConsecutiveFailures: 3,
		},
		Display: DisplayConfig{
			Host:        HostTUI,
			Fit:         true,
			Border:      true,
			WindowScale: 4,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.framedrive/framedrive.log",
		},
	}
}

// DefaultYAML returns the embedded default document.
func DefaultYAML() []byte {
	return defaultYAML
}
