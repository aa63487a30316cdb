package validation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/timesheet-board-converter/internal/timesheet"
	"github.com/ginjaninja78/timesheet-board-converter/internal/types"
)

func requiredHeaders() []string {
	headers := make([]string, len(timesheet.RequiredFields))
	for i, f := range timesheet.RequiredFields {
		headers[i] = string(f)
	}
	return headers
}

func TestValidateHeaders_AllPresent(t *testing.T) {
	assert.NoError(t, ValidateHeaders(requiredHeaders()))
}

func TestValidateHeaders_CaseAndWhitespaceInsensitive(t *testing.T) {
	headers := requiredHeaders()
	for i, h := range headers {
		headers[i] = "  " + strings.ToLower(h) + " "
	}
	assert.NoError(t, ValidateHeaders(headers))
}

func TestValidateHeaders_NamesEveryMissingField(t *testing.T) {
	var headers []string
	for _, h := range requiredHeaders() {
		if h == "LATE" || h == "HOLIDAY" || h == "IN-2" {
			continue
		}
		headers = append(headers, h)
	}

	err := ValidateHeaders(headers)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"HOLIDAY", "IN-2", "LATE"}, schemaErr.Missing)
	assert.Contains(t, err.Error(), "HOLIDAY, IN-2, LATE")
}

func TestValidateHeaders_InnerWhitespaceIsLiteral(t *testing.T) {
	headers := requiredHeaders()
	headers[0] = "NA ME"

	var schemaErr *SchemaError
	require.ErrorAs(t, ValidateHeaders(headers), &schemaErr)
	assert.Equal(t, []string{"NAME"}, schemaErr.Missing)
}

func TestValidateHeaders_Empty(t *testing.T) {
	var schemaErr *SchemaError
	require.ErrorAs(t, ValidateHeaders(nil), &schemaErr)
	assert.Len(t, schemaErr.Missing, len(timesheet.RequiredFields))
}

func TestCheckHeaders_ReportsDuplicates(t *testing.T) {
	headers := append(requiredHeaders(), " late", "extra", "EXTRA ")
	result, err := CheckHeaders(headers)
	require.NoError(t, err)
	assert.Equal(t, []string{"EXTRA", "LATE"}, result.DuplicateHeaders)
	assert.True(t, result.Columns["EXTRA"])
}

func TestValidateCell(t *testing.T) {
	assert.NoError(t, ValidateCell(timesheet.FieldLate, nil))
	assert.NoError(t, ValidateCell(timesheet.FieldLate, types.Value("00:15")))
	assert.NoError(t, ValidateCell(timesheet.FieldHoliday, types.Value("Natal\n8:00")))

	var cellErr *CellError
	require.ErrorAs(t, ValidateCell(timesheet.FieldLate, types.Value("\xff\xfe")), &cellErr)
	assert.Equal(t, "LATE", cellErr.Field)
	assert.Equal(t, "invalid UTF-8", cellErr.Message)

	require.ErrorAs(t, ValidateCell(timesheet.FieldAbsence, types.Value("a\x00b")), &cellErr)
	assert.Contains(t, cellErr.Message, "control character")
}

func TestValidateRow(t *testing.T) {
	assert.NoError(t, ValidateRow(timesheet.Row{Name: types.Value("Ana")}))
	assert.Error(t, ValidateRow(timesheet.Row{Name: types.Value("Ana"), Schedule: types.Value("\x07")}))
}

func TestWriteErrorLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.txt")
	require.NoError(t, WriteErrorLog([]error{errors.New("boom")}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1 error(s)")
	assert.Contains(t, string(data), "1. boom")
}

func TestFormatErrors_None(t *testing.T) {
	assert.Equal(t, "No validation errors.", FormatErrors(nil))
}
