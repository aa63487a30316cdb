// =============================================================================
// Timesheet Board Converter - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks a timesheet export
// without converting it.
//
// COMMAND USAGE:
//   converter validate --file faltas.xlsx
//
// CHECKS:
//   1. The configuration file loads
//   2. The export is readable
//   3. Every required column is present
//   4. Every cell of every named row is well-formed text
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/timesheet-board-converter/internal/converter"
	"github.com/ginjaninja78/timesheet-board-converter/internal/timesheet"
	"github.com/ginjaninja78/timesheet-board-converter/internal/validation"
)

var (
	validateFile string
	errorLogPath string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and the columns of a timesheet export",
	Long: `The validate command loads the configuration and, when --file is given,
reads the export and reports missing columns and malformed cells. Nothing is
written or archived.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFile, "file", "",
		"Timesheet export to check")
	validateCmd.Flags().StringVar(&errorLogPath, "error-log", "",
		"Also write the cell errors to this file")
}

func runValidate(cmd *cobra.Command) error {
	mainConfig, logger, closeLog, err := setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration OK")

	if validateFile == "" {
		return nil
	}

	table, err := converter.ReadTable(validateFile, mainConfig)
	if err != nil {
		return fmt.Errorf("failed to read timesheet: %w", err)
	}

	schema, err := validation.CheckHeaders(table.Headers)
	if err != nil {
		return err
	}
	for _, dup := range schema.DuplicateHeaders {
		logger.Warn("Duplicate column %q; the last occurrence is used", dup)
	}

	layout := timesheet.NewLayout(table.Headers)
	var errs []error
	for _, src := range table.Rows {
		row := timesheet.Bind(layout, src)
		if !row.HasName() {
			continue
		}
		if err := validation.ValidateRow(row); err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", src.OriginalRowNumber, err))
		}
	}

	fmt.Fprintln(out, validation.FormatErrors(errs))
	if len(errs) > 0 {
		if errorLogPath != "" {
			if err := validation.WriteErrorLog(errs, errorLogPath); err != nil {
				return err
			}
		}
		return errors.New("timesheet has malformed cells")
	}

	fmt.Fprintf(out, "%s: %d row(s), all required columns present\n", validateFile, len(table.Rows))
	return nil
}
