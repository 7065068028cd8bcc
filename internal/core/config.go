package core

// RuntimeConfig contains the host parameters resolved at startup.
type RuntimeConfig struct {
	ScreenW   int // Terminal or window width available to the host
	ScreenH   int // Terminal or window height available to the host
	FrameRate int // Frame callbacks per second requested from the host
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		FrameRate: 60,
	}
}
