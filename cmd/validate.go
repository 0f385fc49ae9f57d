// =============================================================================
// Shift Reconciliation - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which runs every section's
// validation rules against a shift entry file without reconciling or
// exporting. Useful for checking a partially filled entry mid-shift.
//
// COMMAND USAGE:
//   shiftrecon validate --entry shift.yaml
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a shift entry without exporting",
	Long: `Validate runs every section's rules against the entry file and prints
the errors per form. Nothing is reconciled or exported, so the entry can
be checked while the shift is still in progress.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadEnvironment()
		if err != nil {
			return err
		}

		session, err := buildSession(cmd, cfg, log)
		if err != nil {
			return err
		}

		if session.HasErrors() {
			printSectionErrors(session)
			return fmt.Errorf("shift entry has validation errors")
		}

		fmt.Println("Shift entry is valid: all sections passed.")
		return nil
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the validate command. It shares the --entry flag
// variable with the run command.
func init() {
	validateCmd.Flags().StringVar(&entryFile, "entry", "", "Path to the filled shift entry file (required)")
	validateCmd.Flags().BoolVar(&noSeed, "no-seed", false, "Skip the seed-data fetch even if enabled in config")
	validateCmd.MarkFlagRequired("entry")

	rootCmd.AddCommand(validateCmd)
}
