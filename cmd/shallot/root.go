package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shallot [file]",
	Short: "Evaluate shallot scripts with host-provided capabilities",
	Long: `shallot - evaluate scripts against host-provided capabilities.

Scripts run in an embedded evaluator with no ambient authority: everything
they can reach arrives through named context bindings. The CLI wires in a
small builtin set (time_now, kv_*) and evaluates files, inline strings, or
stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval, // default to eval behavior
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	addEvalFlags(rootCmd)
}
