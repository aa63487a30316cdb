package xlsxwriter_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/timesheet-board-converter/internal/types"
	"github.com/ginjaninja78/timesheet-board-converter/internal/xlsxparser"
	"github.com/ginjaninja78/timesheet-board-converter/internal/xlsxwriter"
)

func sampleTable() *types.Table {
	return &types.Table{
		Headers: []string{"NAME", "LATE", types.MarkerColumn},
		Rows: []types.Row{
			{Cells: []*string{types.Value("Ana"), types.Value("00:10"), types.Value(types.MarkerProcessed)}},
			{Cells: []*string{types.Value("Bia"), nil, nil}},
		},
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsxwriter.Write(&buf, sampleTable(), "Faltas"))

	table, err := xlsxparser.ParseReader(&buf, "Faltas")
	require.NoError(t, err)

	assert.Equal(t, []string{"NAME", "LATE", "ID VERIFICACAO"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Ana", types.String(table.Rows[0].Cell(0)))
	assert.Equal(t, "00:10", types.String(table.Rows[0].Cell(1)))
	assert.Equal(t, "PROCESSADO", types.String(table.Rows[0].Cell(2)))
	assert.Equal(t, "Bia", types.String(table.Rows[1].Cell(0)))
	assert.Nil(t, table.Rows[1].Cell(1))
	assert.Nil(t, table.Rows[1].Cell(2))
}

func TestWriteFile_DefaultSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, xlsxwriter.WriteFile(sampleTable(), path, ""))

	table, err := xlsxparser.Parse(path, xlsxwriter.DefaultSheet)
	require.NoError(t, err)
	assert.Equal(t, path, table.SourceFile)
	assert.Len(t, table.Rows, 2)
}

func TestNewWorkbook_MultilineCell(t *testing.T) {
	table := &types.Table{
		Headers: types.RecordColumns,
		Rows: []types.Row{{Cells: []*string{
			types.Value("ATRASO"),
			types.Value("Ana"),
			types.Value("Registration: 123\nLocation: SP\nDay: 2024-01-01"),
			types.Value("00:10"),
			types.Value("2024-03-05"),
		}}},
	}

	f, err := xlsxwriter.NewWorkbook(table, "")
	require.NoError(t, err)
	defer f.Close()

	desc, err := f.GetCellValue(xlsxwriter.DefaultSheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "Registration: 123\nLocation: SP\nDay: 2024-01-01", desc)

	header, err := f.GetCellValue(xlsxwriter.DefaultSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Card Name", header)
}
