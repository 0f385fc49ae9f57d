// =============================================================================
// Shift Reconciliation - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'run', 'validate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (shiftrecon)
//   ├── runCmd (shiftrecon run)
//   ├── validateCmd (shiftrecon validate)
//   └── versionCmd (shiftrecon version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (e.g., --config, --verbose)
//   2. Loading the station configuration for the subcommands
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
// This is the entry point for the CLI application.
var rootCmd = &cobra.Command{
	Use: "shiftrecon",

	Short: "Shift Reconciliation - Reconcile a fuel-station shift and export the report",

	Long: `Shift Reconciliation is a CLI tool for fuel-station shift attendants.
It walks a filled shift entry through the same steps as the counter wizard
(shift, lubricants, indent, expenses, receipt), validates every section,
reconciles sales against collections, and exports the shift report to XLSX.

Key Features:
  - Section-scoped validation with per-form error reports
  - Exact decimal reconciliation with an excess/shortage figure
  - Optional seed data from the station backend (prior closing readings,
    current prices, lubricant catalog, customer list)
  - XLSX report export with automatic archival

Example Usage:
  shiftrecon run --entry shift.yaml       # Validate, reconcile and export
  shiftrecon run --entry shift.yaml --dry-run
  shiftrecon validate --entry shift.yaml  # Validate without exporting
  shiftrecon version                      # Display the application version`,

	// If no subcommand is provided, print the help message.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags shared by every subcommand.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the station configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
