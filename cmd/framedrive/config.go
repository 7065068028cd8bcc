package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/framedrive/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Prints the built-in configuration document. Save it as
~/.framedrive/config.yaml or ./configs/framedrive.yaml and edit to override.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	},
}
