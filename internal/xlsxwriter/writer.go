// =============================================================================
// Timesheet Board Converter - XLSX Writer
// =============================================================================
//
// This module writes tables to XLSX workbooks. Both run artifacts go through
// it:
//   - The board records table (list, Card Name, desc, checklist, Data)
//   - The annotated timesheet (input columns plus ID VERIFICACAO)
//
// OUTPUT LAYOUT:
//   - One sheet, headers on row 1 in bold, data from row 2
//   - Absent cells are left empty, so reading the workbook back yields the
//     same table
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/timesheet-board-converter/internal/types"
)

// DefaultSheet is the sheet name of a fresh workbook.
const DefaultSheet = "Sheet1"

// defaultColumnWidth keeps long descriptions readable without autosizing.
const defaultColumnWidth = 18

// =============================================================================
// WORKBOOK GENERATION
// =============================================================================

// NewWorkbook renders a table into a new workbook.
//
// PARAMETERS:
//   - table: The table to write.
//   - sheet: The sheet name. Empty means DefaultSheet.
//
// RETURNS:
//   - The workbook. The caller closes it.
//   - An error if a cell cannot be written.
func NewWorkbook(table *types.Table, sheet string) (*excelize.File, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to name sheet %q: %w", sheet, err)
		}
	}

	if err := writeTable(f, sheet, table); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// WriteFile writes a table to an XLSX file at path.
func WriteFile(table *types.Table, path, sheet string) error {
	f, err := NewWorkbook(table, sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// Write writes a table as an XLSX workbook to w.
func Write(w io.Writer, table *types.Table, sheet string) error {
	f, err := NewWorkbook(table, sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// writeTable writes headers and rows to a sheet.
func writeTable(f *excelize.File, sheet string, table *types.Table) error {
	for col, header := range table.Headers {
		if err := setCell(f, sheet, col+1, 1, header); err != nil {
			return err
		}
	}

	for i, row := range table.Rows {
		for col := 0; col < len(table.Headers) && col < len(row.Cells); col++ {
			cell := row.Cells[col]
			if cell == nil {
				continue
			}
			if err := setCell(f, sheet, col+1, i+2, *cell); err != nil {
				return err
			}
		}
	}

	if len(table.Headers) == 0 {
		return nil
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	last, err := excelize.ColumnNumberToName(len(table.Headers))
	if err != nil {
		return fmt.Errorf("failed to resolve last column: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", last, defaultColumnWidth); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	return nil
}

// setCell writes a string value at 1-based (col, row). Values are always
// written as text so "00:10" and "123" keep their exact spelling.
func setCell(f *excelize.File, sheet string, col, row int, value string) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("invalid cell coordinates (%d, %d): %w", col, row, err)
	}
	if err := f.SetCellStr(sheet, name, value); err != nil {
		return fmt.Errorf("failed to write cell %s: %w", name, err)
	}
	return nil
}
