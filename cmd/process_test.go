package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ginjaninja78/timesheet-board-converter/internal/converter"
	"github.com/ginjaninja78/timesheet-board-converter/internal/validation"
)

func TestSummarize(t *testing.T) {
	ok := converter.Result{
		FilePath:   "a.xlsx",
		Success:    true,
		Categories: []string{"ATRASO"},
	}
	ok.Stats.RowsRead = 3
	ok.Stats.RecordsEmitted = 2

	failed := converter.Result{
		FilePath: "b.xlsx",
		Error:    &validation.SchemaError{Missing: []string{"LATE"}},
	}

	summary := summarize([]converter.Result{ok, failed}, time.Now())

	assert.Equal(t, 2, summary.TotalFiles)
	assert.Equal(t, 1, summary.SuccessfulFiles)
	assert.Equal(t, 1, summary.FailedFiles)
	assert.Equal(t, 2, summary.TotalRecords)
	assert.Equal(t, 3, summary.TotalRows)
	assert.Equal(t, "schema", summary.FailedFilesList[0].ErrorType)
}

func TestErrorType(t *testing.T) {
	assert.Equal(t, "row", errorType(&converter.UnexpectedError{Row: 4, Err: errors.New("boom")}))
	assert.Equal(t, "file", errorType(errors.New("open faltas.xlsx: no such file")))
}
