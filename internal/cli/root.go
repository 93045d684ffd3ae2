// Package cli implements the motdstats command-line interface.
//
// The root command does all the work: it loads the settings file, runs
// the probes once, classifies the snapshot and prints the dashboard.
// Subcommands cover version info and shell completion. The tool runs
// once per invocation and exits; scheduling is the caller's concern.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhalley/motdstats/internal/config"
)

// Global flags
var (
	configFlag  string
	noColorFlag bool
	widthFlag   int
)

var rootCmd = &cobra.Command{
	Use:   "motdstats",
	Short: "Render a color-coded host status dashboard",
	Long: `motdstats gathers host health signals (disk usage, memory, swap,
load average, uptime, logged-in users, process count, listening ports and
named service liveness) and renders them as a three-column, color-coded
dashboard sized to the terminal width.

It is meant to run once per invocation: interactively at login, or from a
periodic scheduler writing the message of the day.

Examples:
  motdstats
  motdstats --config /etc/motdstats.ini
  motdstats --no-color --width 40`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showCommand(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.Flags().StringVar(&configFlag, "config", config.DefaultPath, "path to the INI settings file")
	rootCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	rootCmd.Flags().IntVar(&widthFlag, "width", 0, "force column width instead of detecting the terminal")
}

// Execute runs the root command and exits non-zero on error. The only
// errors that reach here are startup failures (bad flags or unreadable
// config syntax); probe failures degrade into the dashboard itself.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
