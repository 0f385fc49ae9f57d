// =============================================================================
// Shift Reconciliation - Run Command
// =============================================================================
//
// This file defines the 'run' command, the main workflow of the CLI.
// It drives a wizard session through every step using a filled shift
// entry file in place of the interactive forms:
//
//   1. Load the station configuration and set up logging
//   2. Start a session and apply config defaults (prices, catalog, lists)
//   3. Optionally fetch seed data from the station backend (fail-open)
//   4. Load the entry file and merge each section into the session
//   5. Advance through the wizard steps, validating each section
//   6. At the review step: report errors, or reconcile and export
//
// COMMAND USAGE:
//   shiftrecon run --entry shift.yaml
//   shiftrecon run --entry shift.yaml --output ./out --dry-run
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trinityfuels/shift-recon/internal/config"
	"github.com/trinityfuels/shift-recon/internal/entry"
	"github.com/trinityfuels/shift-recon/internal/export"
	"github.com/trinityfuels/shift-recon/internal/recon"
	"github.com/trinityfuels/shift-recon/internal/seed"
	"github.com/trinityfuels/shift-recon/internal/wizard"
	"github.com/trinityfuels/shift-recon/pkg/logger"
	"github.com/trinityfuels/shift-recon/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// entryFile is the path to the filled shift entry file.
var entryFile string

// outputDir overrides the configured report output directory.
var outputDir string

// dryRun validates and reconciles but skips the XLSX export.
var dryRun bool

// noSeed skips the seed-data fetch even when it is enabled in config.
var noSeed bool

// =============================================================================
// RUN COMMAND DEFINITION
// =============================================================================

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Validate, reconcile and export a shift entry",
	Long: `Run the full shift workflow: load the entry file, walk it through
every wizard step with section validation, reconcile sales against
collections, and export the shift report to XLSX.

The export is blocked while any section has validation errors; the
errors are printed per form so the entry file can be corrected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadEnvironment()
		if err != nil {
			return err
		}

		session, err := buildSession(cmd, cfg, log)
		if err != nil {
			return err
		}

		if !session.CanExport() {
			printSectionErrors(session)
			return fmt.Errorf("shift entry has validation errors; fix the entry file and re-run")
		}

		st := recon.BuildStatement(session.Report())
		printSummary(st)

		if dryRun {
			log.Infow("dry run, skipping export")
			return nil
		}

		outDir := cfg.OutputDir
		if outputDir != "" {
			outDir = outputDir
		}

		files := utils.NewFileManager(outDir, cfg.ArchiveDir)
		writer := export.NewWriter(cfg.StationName, files)

		path, err := writer.Write(session.Report(), st)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		log.Infow("report exported", "path", path)

		if err := files.ArchiveReport(path); err != nil {
			// The report itself was written; archival is best effort.
			log.Warnw("report archival failed", "path", path, "error", err)
		}

		fmt.Printf("\nReport written to %s\n", path)
		return nil
	},
}

// =============================================================================
// SESSION ASSEMBLY
// =============================================================================

// loadEnvironment loads the station configuration and builds the logger
// shared by the run and validate commands.
func loadEnvironment() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level, Development: verbose})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	return cfg, log, nil
}

// buildSession starts a wizard session, applies config defaults and seed
// data, merges the entry file, and advances through every wizard step so
// each section is validated on the way to the review step.
func buildSession(cmd *cobra.Command, cfg *config.Config, log *logger.Logger) (*wizard.Session, error) {
	session := wizard.NewSession()
	applyConfig(session, cfg)

	if cfg.Seed.Enabled && !noSeed {
		client := seed.NewClient(cfg.Seed.BaseURL, cfg.Seed.Timeout(), log)
		session.ApplySeed(client.Fetch(cmd.Context()))
	}

	file, err := entry.Load(entryFile)
	if err != nil {
		return nil, err
	}
	if err := mergeEntry(session, file); err != nil {
		return nil, err
	}

	for session.Current() != wizard.StepReport {
		session.Advance()
	}
	return session, nil
}

// applyConfig seeds the session with the station's configured defaults.
// Seed data fetched afterwards may override prices and the catalog.
func applyConfig(session *wizard.Session, cfg *config.Config) {
	session.Shift.FuelPrices.HSD = cfg.FuelPrices.HSD
	session.Shift.FuelPrices.MS = cfg.FuelPrices.MS
	session.Customers = append([]string(nil), cfg.Customers...)
	session.Lubricants = cfg.Catalog()
}

// mergeEntry copies each entry-file section onto the session. Omitted
// sections keep the session's defaults.
func mergeEntry(session *wizard.Session, file *entry.File) error {
	if file.Shift != nil {
		e := file.Shift
		if e.Dispenser != 0 {
			if err := session.SetDispenser(e.Dispenser); err != nil {
				return err
			}
		}
		session.Shift.Attendants = e.Attendants
		if e.ShiftTime != "" {
			session.Shift.ShiftTime = e.ShiftTime
		}
		if !e.Date.IsZero() {
			session.Shift.Date = e.Date
		}
		if e.FuelPrices.HSD.IsPositive() {
			session.Shift.FuelPrices.HSD = e.FuelPrices.HSD
		}
		if e.FuelPrices.MS.IsPositive() {
			session.Shift.FuelPrices.MS = e.FuelPrices.MS
		}

		// Readings merge by nozzle number. An omitted opening keeps the
		// seeded carry-forward value; anything else is overwritten.
		for _, r := range e.Readings {
			merged := false
			for i := range session.Shift.Readings {
				if session.Shift.Readings[i].Nozzle != r.Nozzle {
					continue
				}
				if !r.Opening.IsZero() {
					session.Shift.Readings[i].Opening = r.Opening
				}
				session.Shift.Readings[i].Closing = r.Closing
				session.Shift.Readings[i].TestQty = r.TestQty
				if r.FuelType != "" {
					session.Shift.Readings[i].FuelType = r.FuelType
				}
				merged = true
				break
			}
			if !merged {
				// Unknown nozzle: keep it so validation reports the
				// count mismatch instead of silently dropping data.
				session.Shift.Readings = append(session.Shift.Readings, r)
			}
		}
	}

	if len(file.Lubricants) > 0 {
		session.Lubricants = entry.MergeLubricants(session.Lubricants, file.Lubricants)
	}
	if len(file.Indent) > 0 {
		session.Indent = file.Indent
	}
	if len(file.Expenses) > 0 {
		session.Expenses = file.Expenses
	}
	if file.Receipt != nil {
		session.Receipt = *file.Receipt
	}
	return nil
}

// =============================================================================
// OUTPUT
// =============================================================================

// printSectionErrors lists every section's validation errors with a
// pointer to the form that needs correcting.
func printSectionErrors(session *wizard.Session) {
	fmt.Println("Validation errors:")
	for _, step := range wizard.StepOrder {
		errs := session.SectionErrors(step)
		if len(errs) == 0 {
			continue
		}
		fmt.Printf("\n  %s form (go to the %q section of the entry file):\n", step, step)
		for _, msg := range errs {
			fmt.Printf("    - %s\n", msg)
		}
	}
}

// printSummary prints the grand total summary in whole rupees, the same
// figures the report's final table carries.
func printSummary(st *recon.Statement) {
	fmt.Println("Grand Total Summary")
	fmt.Printf("  Total Fuel Sales     : ₹%d\n", st.TotalFuelSales.Round(0).IntPart())
	fmt.Printf("  Total Indent Sales   : ₹%d\n", st.TotalIndent.Round(0).IntPart())
	fmt.Printf("  Total Lubricants     : ₹%d\n", st.TotalLubricants.Round(0).IntPart())
	fmt.Printf("  Total Expenses       : ₹%d\n", st.TotalExpenses.Round(0).IntPart())
	fmt.Printf("  Total Cash Collected : ₹%d\n", st.TotalReceipt.Round(0).IntPart())
	fmt.Printf("  Excess/Shortage      : ₹%d\n", st.ExcessOrShort.Round(0).IntPart())
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the run command and its flags.
func init() {
	runCmd.Flags().StringVar(&entryFile, "entry", "", "Path to the filled shift entry file (required)")
	runCmd.Flags().StringVar(&outputDir, "output", "", "Override the configured report output directory")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and reconcile without writing the XLSX report")
	runCmd.Flags().BoolVar(&noSeed, "no-seed", false, "Skip the seed-data fetch even if enabled in config")
	runCmd.MarkFlagRequired("entry")

	rootCmd.AddCommand(runCmd)
}
