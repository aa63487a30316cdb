// =============================================================================
// Timesheet Board Converter - Converter Module
// =============================================================================
//
// This module orchestrates the conversion pipeline for a single input file,
// from reading the timesheet to writing both output workbooks.
//
// CONVERSION PIPELINE:
//   1. Read the timesheet (.xlsx through excelize, .csv through encoding/csv)
//   2. Run the transform engine
//   3. Write the board records workbook
//   4. Write the annotated timesheet workbook
//   5. Write an error log for isolated row failures
//   6. Archive the processed files
//
// CONCURRENCY:
//   Each file is processed in its own goroutine. A Converter owns no shared
//   state, so several can run at once.
//
// =============================================================================

package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/timesheet-board-converter/internal/classifier"
	"github.com/ginjaninja78/timesheet-board-converter/internal/config"
	"github.com/ginjaninja78/timesheet-board-converter/internal/csvparser"
	"github.com/ginjaninja78/timesheet-board-converter/internal/timesheet"
	"github.com/ginjaninja78/timesheet-board-converter/internal/types"
	"github.com/ginjaninja78/timesheet-board-converter/internal/xlsxparser"
	"github.com/ginjaninja78/timesheet-board-converter/internal/xlsxwriter"
	"github.com/ginjaninja78/timesheet-board-converter/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// RunID identifies the run in log lines.
	RunID string

	// RecordsFile is the path to the board records workbook.
	// Empty if processing failed or on a dry run.
	RecordsFile string

	// AnnotatedFile is the path to the annotated timesheet workbook.
	// Empty if processing failed or on a dry run.
	AnnotatedFile string

	// ErrorLogFile lists isolated row failures, if any.
	ErrorLogFile string

	// Categories are the distinct categories emitted, sorted.
	Categories []string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// RowErrors are the rows that failed under the isolate policy.
	RowErrors []*RowError

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	TransformStats

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single timesheet file.
type Converter struct {
	path       string
	mainConfig *config.MainConfig
	logger     Logger
	now        func() time.Time
	dryRun     bool
	policy     RowErrorPolicy
	classifier *classifier.Classifier
	files      *utils.FileManager
}

// Option customizes a Converter.
type Option func(*Converter)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// WithClock sets the run clock.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) { c.now = now }
}

// WithDryRun runs the engine without writing or archiving anything.
func WithDryRun(dryRun bool) Option {
	return func(c *Converter) { c.dryRun = dryRun }
}

// WithPolicy overrides the configured row error policy.
func WithPolicy(p RowErrorPolicy) Option {
	return func(c *Converter) { c.policy = p }
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - path: The path to the input timesheet.
//   - mainConfig: The main application configuration.
//   - opts: Optional overrides.
//
// RETURNS:
//   - A new Converter instance.
//   - An error if the configured policy is invalid.
func New(path string, mainConfig *config.MainConfig, opts ...Option) (*Converter, error) {
	policy, err := ParseRowErrorPolicy(mainConfig.RowErrorPolicy)
	if err != nil {
		return nil, err
	}

	files := utils.NewFileManager(
		mainConfig.InputDir,
		mainConfig.OutputDir,
		mainConfig.InputArchiveDir,
		mainConfig.OutputArchiveDir,
	)
	files.ArchiveOnSuccess = !mainConfig.SkipArchive

	c := &Converter{
		path:       path,
		mainConfig: mainConfig,
		logger:     NopLogger(),
		now:        time.Now,
		policy:     policy,
		classifier: classifier.NewWithRules(FieldRules(mainConfig.CategoryLabels)),
		files:      files,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// FieldRules returns the default field rules with category labels replaced
// by any configured overrides. Keys are matched after header normalization.
func FieldRules(labels map[string]string) []classifier.FieldRule {
	rules := classifier.DefaultFieldRules()
	if len(labels) == 0 {
		return rules
	}

	overrides := make(map[timesheet.Field]string, len(labels))
	for key, label := range labels {
		if label = strings.TrimSpace(label); label != "" {
			overrides[timesheet.Field(timesheet.NormalizeHeader(key))] = label
		}
	}
	for i, rule := range rules {
		if label, ok := overrides[rule.Field]; ok {
			rules[i].Category = label
		}
	}

	return rules
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing.
func (c *Converter) Run() (result Result) {
	startTime := time.Now()
	result = Result{
		FilePath: c.path,
		RunID:    uuid.New().String(),
	}
	defer func() { result.Stats.ProcessingTime = time.Since(startTime) }()

	c.logger.Info("[%s] Processing file: %s", result.RunID, c.path)

	// =========================================================================
	// STEP 1: READ THE TIMESHEET
	// =========================================================================

	table, err := ReadTable(c.path, c.mainConfig)
	if err != nil {
		result.Error = fmt.Errorf("failed to read timesheet: %w", err)
		return result
	}

	c.logger.Debug("[%s] Read %d rows, %d columns", result.RunID, len(table.Rows), len(table.Headers))

	// =========================================================================
	// STEP 2: TRANSFORM
	// =========================================================================

	runTime := c.now()
	out, err := Transform(table, Options{
		Now:        func() time.Time { return runTime },
		Policy:     c.policy,
		Classifier: c.classifier,
	})
	if err != nil {
		result.Error = err
		return result
	}

	for _, dup := range out.DuplicateHeaders {
		c.logger.Warn("[%s] Duplicate column %q; the last occurrence is used", result.RunID, dup)
	}
	for _, re := range out.RowErrors {
		c.logger.Warn("[%s] Row skipped: %v", result.RunID, re)
	}

	result.Stats.TransformStats = out.Stats
	result.Categories = out.Categories
	result.RowErrors = out.RowErrors

	c.logger.Info("[%s] %d rows classified, %d skipped, %d dropped, %d records",
		result.RunID, out.Stats.RowsClassified, out.Stats.RowsSkipped,
		out.Stats.RowsDropped, out.Stats.RecordsEmitted)

	if c.dryRun {
		result.Success = true
		return result
	}

	// =========================================================================
	// STEP 3-4: WRITE OUTPUT WORKBOOKS
	// =========================================================================

	params := map[string]string{"original": utils.OriginalName(c.path)}

	result.RecordsFile, err = c.writeWorkbook(out.RecordsTable(),
		utils.GenerateOutputFileName(c.mainConfig.RecordsFileFormat, runTime, params))
	if err != nil {
		result.Error = fmt.Errorf("failed to write records workbook: %w", err)
		return result
	}

	result.AnnotatedFile, err = c.writeWorkbook(out.Annotated,
		utils.GenerateOutputFileName(c.mainConfig.AnnotatedFileFormat, runTime, params))
	if err != nil {
		os.Remove(result.RecordsFile)
		result.RecordsFile = ""
		result.Error = fmt.Errorf("failed to write annotated workbook: %w", err)
		return result
	}

	c.logger.Info("[%s] Wrote %s and %s", result.RunID, result.RecordsFile, result.AnnotatedFile)

	// =========================================================================
	// STEP 5: ROW ERROR LOG
	// =========================================================================

	if len(out.RowErrors) > 0 {
		logPath, err := utils.WriteErrorLog(rowErrorEntries(c.path, runTime, out.RowErrors), c.mainConfig.OutputDir)
		if err != nil {
			c.logger.Warn("[%s] Failed to write error log: %v", result.RunID, err)
		}
		result.ErrorLogFile = logPath
	}

	// =========================================================================
	// STEP 6: ARCHIVE FILES
	// =========================================================================

	if err := c.archiveFiles(result.RecordsFile, result.AnnotatedFile); err != nil {
		// Archival problems are logged but don't fail the file.
		c.logger.Warn("[%s] Failed to archive files: %v", result.RunID, err)
	}

	result.Success = true
	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// ReadTable reads a timesheet, choosing the parser by file extension.
func ReadTable(path string, mainConfig *config.MainConfig) (*types.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return xlsxparser.Parse(path, mainConfig.InputSheet)
	case ".csv":
		return csvparser.Parse(path, mainConfig.CSV)
	default:
		return nil, fmt.Errorf("unsupported input file type: %s", filepath.Base(path))
	}
}

// writeWorkbook writes a table under a reserved name in the output directory.
func (c *Converter) writeWorkbook(table *types.Table, name string) (string, error) {
	path, err := utils.ReservePath(c.mainConfig.OutputDir, name)
	if err != nil {
		return "", err
	}
	if err := xlsxwriter.WriteFile(table, path, c.mainConfig.OutputSheet); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// archiveFiles moves the input to the input archive and copies the outputs
// to the output archive.
func (c *Converter) archiveFiles(outputs ...string) error {
	if _, err := c.files.ArchiveInputFile(c.path); err != nil {
		return fmt.Errorf("failed to archive input file: %w", err)
	}
	for _, out := range outputs {
		if _, err := c.files.ArchiveOutputFile(out); err != nil {
			return fmt.Errorf("failed to archive output file: %w", err)
		}
	}
	return nil
}

// rowErrorEntries converts isolated row failures into error log entries.
func rowErrorEntries(path string, at time.Time, rowErrors []*RowError) []utils.ErrorLogEntry {
	entries := make([]utils.ErrorLogEntry, len(rowErrors))
	for i, re := range rowErrors {
		entries[i] = utils.ErrorLogEntry{
			Timestamp:    at,
			FileName:     filepath.Base(path),
			ErrorType:    "row",
			ErrorMessage: re.Err.Error(),
			RowNumber:    re.Row,
			EmployeeName: re.Name,
		}
	}
	return entries
}
