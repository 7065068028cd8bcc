// framedrive drives self-contained frame engines in a terminal, a window or
// headless.
//
// Usage:
//
//	framedrive list              - List registered engines
//	framedrive run <engine>      - Run an engine
//	framedrive config            - Print the default configuration
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.framedrive/config.yaml, ./configs/framedrive.yaml)
//	--fps <rate>        - Frame rate override
//	--log-level <lvl>   - Log level override: debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import engines to register them
	_ "github.com/vovakirdan/framedrive/internal/engines/life"
	_ "github.com/vovakirdan/framedrive/internal/engines/ripple"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "framedrive",
	Short: "framedrive - run frame engines in your terminal",
	Long: `framedrive sizes a surface for an engine, forwards clicks into the
engine's coordinate space and drives its advance/render loop.

Available commands:
  list     - Show all registered engines
  run      - Run an engine
  config   - Print the default configuration

Examples:
  framedrive list
  framedrive run life
  framedrive run ripple --host desktop
  framedrive run life --host headless --frames 120 --snapshot life.png`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (empty = from config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}
