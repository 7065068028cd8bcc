package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/framedrive/internal/engine"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered engines",
	Long:  `Shows every engine module compiled into framedrive.`,
	Run: func(cmd *cobra.Command, args []string) {
		printEngines(cmd.OutOrStdout(), engine.List())
	},
}

func printEngines(w io.Writer, engines []engine.Info) {
	if len(engines) == 0 {
		fmt.Fprintln(w, "No engines available.")
		return
	}

	fmt.Fprintln(w, "Available engines:")
	fmt.Fprintln(w)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, e := range engines {
		if len(e.ID) > maxIDLen {
			maxIDLen = len(e.ID)
		}
	}

	fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, e := range engines {
		fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, e.ID, e.Title)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'framedrive run <id>' to start an engine.")
}
