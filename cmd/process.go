// =============================================================================
// Timesheet Board Converter - Process Command
// =============================================================================
//
// This file defines the 'process' command, the main command of the tool.
//
// COMMAND USAGE:
//   converter process [flags]
//
// FLAGS:
//   --file                : Process a single file instead of the input directory
//   --dry-run             : Classify without writing or archiving anything
//   --isolate-row-errors  : Report bad rows and keep going instead of failing
//                           the whole file
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover .xlsx and .csv files in the input directory
//   3. For each file (concurrently, bounded by max_concurrency):
//      a. Read the timesheet
//      b. Classify eligible rows into board records
//      c. Write the records and annotated workbooks
//      d. Archive the processed files
//   4. Write the summary report
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/timesheet-board-converter/internal/config"
	"github.com/ginjaninja78/timesheet-board-converter/internal/converter"
	"github.com/ginjaninja78/timesheet-board-converter/internal/validation"
	"github.com/ginjaninja78/timesheet-board-converter/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	dryRun           bool
	filePath         string
	isolateRowErrors bool
)

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Convert timesheet exports into board card workbooks",
	Long: `The process command scans the input directory for timesheet exports
(.xlsx or .csv) and converts each one into a board records workbook and an
annotated copy of the timesheet.

Files are processed concurrently. An error in one file does not affect the
others.

On success:
  - Both workbooks are placed in the output directory
  - The input is moved to the input archive
  - Rows that were classified are stamped PROCESSADO in the annotated copy

On error:
  - No workbook is written for that file
  - The input remains in the input directory
  - Processing continues for other files`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Classify without writing output files or archiving inputs")
	processCmd.Flags().StringVar(&filePath, "file", "",
		"Process a single file instead of the input directory")
	processCmd.Flags().BoolVar(&isolateRowErrors, "isolate-row-errors", false,
		"Report failing rows and continue instead of failing the file")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runProcess(cmd *cobra.Command) error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	mainConfig, logger, closeLog, err := setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	files := utils.NewFileManager(
		mainConfig.InputDir,
		mainConfig.OutputDir,
		mainConfig.InputArchiveDir,
		mainConfig.OutputArchiveDir,
	)
	if err := files.EnsureDirectories(); err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if filePath != "" {
		inputFiles = []string{filePath}
	} else {
		inputFiles, err = files.DiscoverInputFiles()
		if err != nil {
			return err
		}
	}

	if len(inputFiles) == 0 {
		logger.Info("No timesheet files found in %s", mainConfig.InputDir)
		return nil
	}

	logger.Info("Found %d file(s) to process", len(inputFiles))

	// =========================================================================
	// STEP 3: PROCESS FILES CONCURRENTLY
	// =========================================================================

	results := processFiles(inputFiles, mainConfig, logger)

	// =========================================================================
	// STEP 4: SUMMARY
	// =========================================================================

	summary := summarize(results, startTime)
	out := cmd.OutOrStdout()

	for _, pf := range summary.ProcessedFiles {
		fmt.Fprintf(out, "  ✓ %s: %d card(s) [%s]\n",
			filepath.Base(pf.InputFile), pf.Records, strings.Join(pf.Categories, ", "))
	}
	for _, ff := range summary.FailedFilesList {
		fmt.Fprintf(out, "  ✗ %s: %s\n", filepath.Base(ff.InputFile), ff.ErrorMessage)
	}

	if !dryRun {
		summaryPath, err := utils.WriteSummaryLog(summary, mainConfig.OutputDir)
		if err != nil {
			logger.Warn("Failed to write summary: %v", err)
		} else {
			logger.Info("Summary written to %s", summaryPath)
		}
	}

	fmt.Fprintf(out, "\nFiles: %d, successful: %d, failed: %d, cards: %d, elapsed: %s\n",
		summary.TotalFiles, summary.SuccessfulFiles, summary.FailedFiles,
		summary.TotalRecords, summary.EndTime.Sub(summary.StartTime))

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles)
	}
	return nil
}

// processFiles runs one converter per file, at most MaxConcurrency at a time.
func processFiles(inputFiles []string, mainConfig *config.MainConfig, logger converter.Logger) []converter.Result {
	var wg sync.WaitGroup
	results := make(chan converter.Result, len(inputFiles))
	sem := make(chan struct{}, mainConfig.MaxConcurrency)

	for _, file := range inputFiles {
		wg.Add(1)

		go func(path string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			opts := []converter.Option{
				converter.WithLogger(logger),
				converter.WithDryRun(dryRun),
			}
			if isolateRowErrors {
				opts = append(opts, converter.WithPolicy(converter.PolicyIsolate))
			}

			conv, err := converter.New(path, mainConfig, opts...)
			if err != nil {
				results <- converter.Result{FilePath: path, Error: err}
				return
			}

			result := conv.Run()
			if result.Error != nil {
				logger.Error("%s: %v", filepath.Base(path), result.Error)
			}
			results <- result
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var collected []converter.Result
	for result := range results {
		collected = append(collected, result)
	}
	return collected
}

// summarize folds per-file results into the run summary.
func summarize(results []converter.Result, startTime time.Time) utils.ProcessingSummary {
	summary := utils.ProcessingSummary{
		StartTime:  startTime,
		TotalFiles: len(results),
	}

	for _, r := range results {
		summary.TotalRows += r.Stats.RowsRead
		summary.RowErrors += len(r.RowErrors)

		if !r.Success {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    r.FilePath,
				ErrorMessage: errorMessage(r.Error),
				ErrorType:    errorType(r.Error),
			})
			continue
		}

		summary.SuccessfulFiles++
		summary.TotalRecords += r.Stats.RecordsEmitted
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:     r.FilePath,
			RecordsFile:   r.RecordsFile,
			AnnotatedFile: r.AnnotatedFile,
			Rows:          r.Stats.RowsRead,
			Classified:    r.Stats.RowsClassified,
			Records:       r.Stats.RecordsEmitted,
			Categories:    r.Categories,
			ProcessTime:   r.Stats.ProcessingTime,
		})
	}

	summary.EndTime = time.Now()
	return summary
}

func errorMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// errorType labels a failure for the summary report.
func errorType(err error) string {
	var schemaErr *validation.SchemaError
	var rowErr *converter.UnexpectedError
	switch {
	case errors.As(err, &schemaErr):
		return "schema"
	case errors.As(err, &rowErr):
		return "row"
	default:
		return "file"
	}
}
