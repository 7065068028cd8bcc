package life

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed patterns.yaml
var patternsYAML []byte

// Settings describe the board and its initial population.
type Settings struct {
	Board    Board               `yaml:"board"`
	Seed     []Placement         `yaml:"seed"`
	Patterns map[string][]string `yaml:"patterns"`
}

// Board defines grid geometry and pacing.
type Board struct {
	Cols       int     `yaml:"cols"`
	Rows       int     `yaml:"rows"`
	CellSize   int     `yaml:"cell_size"`    // Pixels per cell side
	TickMs     float64 `yaml:"tick_ms"`      // Milliseconds per generation
	MaxCatchUp int     `yaml:"max_catch_up"` // Generations per Advance at most
}

// Placement puts a named pattern at a cell offset.
type Placement struct {
	Pattern string `yaml:"pattern"`
	At      [2]int `yaml:"at"`
}

// ParseSettings decodes and validates a settings document.
func ParseSettings(data []byte) (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("life: parse settings: %w", err)
	}

	b := s.Board
	if b.Cols <= 0 || b.Rows <= 0 || b.CellSize <= 0 {
		return Settings{}, fmt.Errorf("life: board %dx%d with cell size %d is empty", b.Cols, b.Rows, b.CellSize)
	}
	if b.TickMs <= 0 {
		return Settings{}, fmt.Errorf("life: tick_ms must be positive, got %v", b.TickMs)
	}
	if b.MaxCatchUp < 1 {
		s.Board.MaxCatchUp = 1
	}
	for _, p := range s.Seed {
		if _, ok := s.Patterns[p.Pattern]; !ok {
			return Settings{}, fmt.Errorf("life: seed references unknown pattern %q", p.Pattern)
		}
	}
	return s, nil
}
