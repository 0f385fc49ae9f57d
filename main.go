// =============================================================================
// Shift Reconciliation - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Shift Reconciliation CLI. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   shiftrecon run       - Validate, reconcile and export a shift entry
//   shiftrecon validate  - Validate a shift entry without exporting
//   shiftrecon version   - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/trinityfuels/shift-recon/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
