// Package cli implements the civicpulse command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "civicpulse",
	Short: "Civic transit feedback and escalation service",
	Long: `civicpulse lets residents rate and discuss public-transit entities,
upvote improvement proposals, and escalate unresolved complaints through
formal channels. This binary runs the API daemon.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(os.Stdout, "civicpulse 0.1.0")
	},
}
