// Astrotimer is the firmware of a handheld astrophotography intervalometer.
//
// It drives a small LCD and a 5-way switch, lets the user set exposure,
// shot count and interval, and fires the camera through its shutter and
// focus lines. On a desktop it runs against a simulated board, in a window
// or headless.
//
// Usage:
//
//	astrotimer [command] [flags]
//
// Running without a command starts the device UI (same as "run").
package main

import (
	"fmt"
	"os"

	"astrotimer/internal/buildinfo"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "astrotimer",
	Short: "Astrophotography intervalometer firmware",
	Long: `Firmware of a handheld astrophotography intervalometer.

Shows the menu screens on the LCD (or a desktop window), reads the 5-way
switch and fires exposure sequences on the camera trigger lines.`,
	Version:       buildinfo.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runUI,
}

// Global flags
var (
	configPath string
	logLevel   string
)

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (.yaml, .yml or .toml); built-in defaults when empty")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); $ASTROTIMER_LOG_LEVEL when empty")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
	},
}
