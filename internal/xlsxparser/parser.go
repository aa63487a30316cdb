// =============================================================================
// Timesheet Board Converter - XLSX Parser
// =============================================================================
//
// This module reads timesheet exports saved as XLSX workbooks into a
// types.Table.
//
// WORKBOOK STRUCTURE (expected):
//   | NAME | REGISTRATION | LOCATION | DAY        | PUNCH-RAW | IN-1  | ... |
//   |------|--------------|----------|------------|-----------|-------|-----|
//   | Ana  | 123          | SP       | 2024-01-01 |           |       | ... |
//
//   - Row 1 holds the headers (any casing, surrounding spaces allowed)
//   - Every following non-empty row is one employee-day
//   - Empty cells are read as absent values
//
// Cell values are read as displayed (excelize formatted values), so time
// cells come through as "08:00" rather than day fractions.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/timesheet-board-converter/internal/types"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a sheet of an XLSX file.
//
// PARAMETERS:
//   - filePath: The path to the XLSX file.
//   - sheet: The sheet to read. Empty means the first sheet.
//
// RETURNS:
//   - The parsed table.
//   - An error if the file cannot be read or the sheet does not exist.
func Parse(filePath, sheet string) (*types.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	table, err := ParseWorkbook(f, sheet)
	if err != nil {
		return nil, err
	}
	table.SourceFile = filePath

	return table, nil
}

// ParseReader reads a sheet of an XLSX workbook from r.
func ParseReader(r io.Reader, sheet string) (*types.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return ParseWorkbook(f, sheet)
}

// ParseWorkbook reads a sheet of an open workbook.
func ParseWorkbook(f *excelize.File, sheet string) (*types.Table, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found (available: %s)", sheet, strings.Join(f.GetSheetList(), ", "))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet %q: %w", sheet, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	headers := rows[0]
	table := &types.Table{
		Headers: headers,
		Rows:    make([]types.Row, 0, len(rows)-1),
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}
		table.Rows = append(table.Rows, toRow(row, len(headers), i+1))
	}

	return table, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// toRow aligns a sheet row with the headers. Cells beyond the last header
// are dropped; missing trailing cells are absent.
func toRow(row []string, width, rowNumber int) types.Row {
	cells := make([]*string, width)
	for i := 0; i < width && i < len(row); i++ {
		if row[i] != "" {
			cells[i] = types.Value(row[i])
		}
	}
	return types.Row{Cells: cells, OriginalRowNumber: rowNumber}
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
