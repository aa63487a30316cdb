// =============================================================================
// Timesheet Board Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   converter process       - Convert every timesheet in the input directory
//   converter validate      - Check the configuration and an export's columns
//   converter version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Core logic (readers, classifier, transform engine, writers)
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/timesheet-board-converter/cmd"
)

func main() {
	cmd.Execute()
}
