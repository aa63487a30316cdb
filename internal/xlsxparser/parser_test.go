package xlsxparser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/timesheet-board-converter/internal/types"
)

// buildWorkbook creates an in-memory workbook with the given rows on Sheet1.
func buildWorkbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rows[i]))
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestParseWorkbook_FirstSheet(t *testing.T) {
	f := buildWorkbook(t, [][]interface{}{
		{" name ", "Late", "Holiday"},
		{"Ana", "00:10"},
		{},
		{"", "", ""},
		{"Bia", "", "Natal"},
	})

	table, err := ParseWorkbook(f, "")
	require.NoError(t, err)

	assert.Equal(t, []string{" name ", "Late", "Holiday"}, table.Headers)
	require.Len(t, table.Rows, 2)

	ana := table.Rows[0]
	assert.Equal(t, 2, ana.OriginalRowNumber)
	assert.Len(t, ana.Cells, 3)
	assert.Equal(t, "Ana", types.String(ana.Cell(0)))
	assert.Equal(t, "00:10", types.String(ana.Cell(1)))
	assert.Nil(t, ana.Cell(2))

	bia := table.Rows[1]
	assert.Equal(t, 5, bia.OriginalRowNumber)
	assert.Nil(t, bia.Cell(1))
	assert.Equal(t, "Natal", types.String(bia.Cell(2)))
}

func TestParseWorkbook_UnknownSheet(t *testing.T) {
	f := buildWorkbook(t, [][]interface{}{{"NAME"}})

	_, err := ParseWorkbook(f, "Faltas")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sheet1")
}

func TestParseWorkbook_EmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := ParseWorkbook(f, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestParseReader(t *testing.T) {
	f := buildWorkbook(t, [][]interface{}{{"NAME", "LATE"}, {"Ana", "00:10"}})

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := ParseReader(&buf, "Sheet1")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "00:10", types.String(table.Rows[0].Cell(1)))
}

func TestParseReader_NotAWorkbook(t *testing.T) {
	_, err := ParseReader(bytes.NewReader([]byte("not a zip")), "")
	assert.Error(t, err)
}
