// =============================================================================
// Timesheet Board Converter - Transform Engine
// =============================================================================
//
// This module is the core of the converter. It folds a timesheet table into
// board records and an annotated copy of the table.
//
// PIPELINE:
//   1. Validate the headers (fatal on any missing required field)
//   2. Bind each row to the explicit timesheet schema
//   3. Drop rows without an employee name
//   4. Pass already-processed rows through untouched
//   5. Classify the remaining rows and stamp them as processed
//   6. Assemble records, annotated table and sorted category list
//
// The input table is never modified; every output row is a copy. A run holds
// no state, so feeding the annotated table back in yields no new records.
//
// =============================================================================

package converter

import (
	"time"

	"github.com/ginjaninja78/timesheet-board-converter/internal/classifier"
	"github.com/ginjaninja78/timesheet-board-converter/internal/timesheet"
	"github.com/ginjaninja78/timesheet-board-converter/internal/types"
	"github.com/ginjaninja78/timesheet-board-converter/internal/validation"
)

// =============================================================================
// OPTIONS AND OUTPUT
// =============================================================================

// Options tunes a Transform run. The zero value is usable.
type Options struct {
	// Now returns the run time; the record date is derived from it.
	// Default: time.Now
	Now func() time.Time

	// Policy decides how a failing row is handled.
	// Default: PolicyAbort
	Policy RowErrorPolicy

	// Classifier classifies eligible rows.
	// Default: classifier.New()
	Classifier *classifier.Classifier
}

// Output is the result of a successful Transform.
type Output struct {
	// Records are the board records in emission order.
	Records []types.Record

	// Annotated is the source table with markers updated and blank-name
	// rows removed.
	Annotated *types.Table

	// Categories are the distinct emitted categories, sorted.
	Categories []string

	// RowErrors are the rows that failed under PolicyIsolate.
	RowErrors []*RowError

	// Stats summarizes the run.
	Stats TransformStats

	// DuplicateHeaders lists headers that collided after normalization.
	DuplicateHeaders []string
}

// TransformStats contains row counts for a run.
type TransformStats struct {
	// RowsRead is the number of rows in the input table.
	RowsRead int

	// RowsDropped is the number of blank-name rows removed.
	RowsDropped int

	// RowsSkipped is the number of rows already marked as processed.
	RowsSkipped int

	// RowsClassified is the number of rows classified in this run.
	RowsClassified int

	// RowsFailed is the number of rows that failed under PolicyIsolate.
	RowsFailed int

	// RecordsEmitted is the number of board records produced.
	RecordsEmitted int
}

// =============================================================================
// TRANSFORM
// =============================================================================

// Transform runs the engine over a table.
//
// PARAMETERS:
//   - table: The timesheet table. It is not modified.
//   - opts: Run options.
//
// RETURNS:
//   - The run output.
//   - A *validation.SchemaError when required fields are missing, or an
//     *UnexpectedError when a row fails under PolicyAbort. No output is
//     returned with either.
func Transform(table *types.Table, opts Options) (*Output, error) {
	opts = withDefaults(opts)

	schema, err := validation.CheckHeaders(table.Headers)
	if err != nil {
		return nil, err
	}

	date := opts.Now().Format(types.DateLayout)
	tracker := NewMarkerTracker(table.Headers)
	assembler := NewAssembler(tracker.Headers(), table.SourceFile)

	out := &Output{DuplicateHeaders: schema.DuplicateHeaders}
	out.Stats.RowsRead = len(table.Rows)

	for _, src := range table.Rows {
		row := timesheet.Bind(tracker.Layout(), src)

		if !tracker.Keep(row) {
			out.Stats.RowsDropped++
			continue
		}

		if !tracker.Eligible(row) {
			out.Stats.RowsSkipped++
			assembler.AddRow(tracker.Carry(src))
			continue
		}

		records, err := opts.Classifier.Classify(row, date)
		if err != nil {
			if opts.Policy != PolicyIsolate {
				return nil, &UnexpectedError{Row: src.OriginalRowNumber, Err: err}
			}
			out.Stats.RowsFailed++
			out.RowErrors = append(out.RowErrors, &RowError{
				Row:  src.OriginalRowNumber,
				Name: types.String(row.Name),
				Err:  err,
			})
			assembler.AddRow(tracker.Carry(src))
			continue
		}

		out.Stats.RowsClassified++
		assembler.AddRecords(records)
		assembler.AddRow(tracker.Stamp(src))
	}

	out.Records = assembler.Records()
	out.Annotated = assembler.Annotated()
	out.Categories = assembler.Categories()
	out.Stats.RecordsEmitted = len(out.Records)

	return out, nil
}

// RecordsTable returns the records rendered as a table.
func (o *Output) RecordsTable() *types.Table {
	return RecordsTable(o.Records)
}

func withDefaults(opts Options) Options {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Policy == "" {
		opts.Policy = PolicyAbort
	}
	if opts.Classifier == nil {
		opts.Classifier = classifier.New()
	}
	return opts
}
