// =============================================================================
// Timesheet Board Converter - CSV Parser Module
// =============================================================================
//
// This module reads timesheet exports saved as CSV into a types.Table.
//
// FEATURES:
//   - Configurable delimiter (comma, semicolon, pipe, tab, ...)
//   - Configurable header row (exports sometimes carry a title line first)
//   - UTF-8 byte order mark removal (spreadsheet tools add one)
//   - Empty cells are read as absent values
//
// Values are kept exactly as written; trimming is the classifier's job.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/timesheet-board-converter/internal/config"
	"github.com/ginjaninja78/timesheet-board-converter/internal/types"
)

// byteOrderMark is the UTF-8 BOM some spreadsheet tools prepend.
const byteOrderMark = "\uFEFF"

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - The parsed table.
//   - An error if the file cannot be read or parsed.
func Parse(filePath string, settings config.CSVSettings) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	table, err := ParseReader(bufio.NewReader(file), settings)
	if err != nil {
		return nil, err
	}
	table.SourceFile = filePath

	return table, nil
}

// ParseReader reads CSV data from r.
//
// PARSING PROCESS:
//   1. Configure the CSV reader with the delimiter
//   2. Read all records
//   3. Take the headers from the configured header row
//   4. Convert every following non-empty record to a row aligned with the
//      headers
func ParseReader(r io.Reader, settings config.CSVSettings) (*types.Table, error) {
	csvReader := csv.NewReader(r)
	if err := configureReader(csvReader, settings); err != nil {
		return nil, err
	}

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	headerIndex := settings.HeaderRow - 1
	if headerIndex < 0 {
		headerIndex = 0
	}
	if headerIndex >= len(allRows) {
		return nil, fmt.Errorf("file has %d row(s), header row %d is out of range", len(allRows), settings.HeaderRow)
	}

	headers := cleanHeaders(allRows[headerIndex])

	table := &types.Table{
		Headers: headers,
		Rows:    make([]types.Row, 0, len(allRows)-headerIndex-1),
	}

	for i := headerIndex + 1; i < len(allRows); i++ {
		record := allRows[i]
		if isRowEmpty(record) {
			continue
		}
		table.Rows = append(table.Rows, toRow(record, len(headers), i+1))
	}

	return table, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	comma, err := settings.Comma()
	if err != nil {
		return err
	}
	reader.Comma = comma

	// Exports are not always rectangular; short rows read as absent cells.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true

	return nil
}

// cleanHeaders removes the byte order mark and names empty headers.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))

	for i, header := range headers {
		if i == 0 {
			header = strings.TrimPrefix(header, byteOrderMark)
		}
		if strings.TrimSpace(header) == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}

	return cleaned
}

// toRow converts a CSV record into a row with one cell per header. Extra
// trailing fields beyond the header row are dropped.
func toRow(record []string, width int, rowNumber int) types.Row {
	cells := make([]*string, width)
	for i := 0; i < width && i < len(record); i++ {
		if record[i] != "" {
			cells[i] = types.Value(record[i])
		}
	}
	return types.Row{Cells: cells, OriginalRowNumber: rowNumber}
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
