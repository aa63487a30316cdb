// =============================================================================
// Timesheet Board Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - xlsxparser / csvparser (producing tables)
//   - converter (transforming tables into board records)
//   - xlsxwriter (writing records and annotated tables)
//
// =============================================================================

package types

// =============================================================================
// OUTPUT COLUMN NAMES
// =============================================================================

// Column names of the board records table. The board importer matches these
// names exactly.
const (
	ColumnList      = "list"
	ColumnCardName  = "Card Name"
	ColumnDesc      = "desc"
	ColumnChecklist = "checklist"
	ColumnDate      = "Data"
)

// RecordColumns is the column order used when writing the records table.
var RecordColumns = []string{
	ColumnList,
	ColumnCardName,
	ColumnDesc,
	ColumnChecklist,
	ColumnDate,
}

// MarkerColumn is the header of the processing marker column carried in the
// annotated timesheet.
const MarkerColumn = "ID VERIFICACAO"

// MarkerProcessed is the marker value stamped on classified rows.
const MarkerProcessed = "PROCESSADO"

// DateLayout is the layout of the Data column.
const DateLayout = "2006-01-02"

// =============================================================================
// TABLE TYPES
// =============================================================================

// Table is a header row plus data rows, as read from a spreadsheet or CSV
// export.
type Table struct {
	// Headers are the column headers exactly as they appear in the source.
	// Normalization happens in the engine, never here.
	Headers []string

	// Rows contains the data rows. Each row's cells are aligned with Headers.
	Rows []Row

	// SourceFile is the path of the file the table was read from, if any.
	SourceFile string
}

// Row is a single data row.
type Row struct {
	// Cells holds one entry per header. A nil cell is an empty/absent value.
	Cells []*string

	// OriginalRowNumber is the 1-based row number in the source file.
	// Useful for error reporting.
	OriginalRowNumber int
}

// Cell returns the cell at index i, or nil when the row is shorter than the
// header row.
func (r Row) Cell(i int) *string {
	if i < 0 || i >= len(r.Cells) {
		return nil
	}
	return r.Cells[i]
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	cells := make([]*string, len(r.Cells))
	for i, c := range r.Cells {
		if c != nil {
			v := *c
			cells[i] = &v
		}
	}
	return Row{Cells: cells, OriginalRowNumber: r.OriginalRowNumber}
}

// Value returns a pointer to a copy of s. It is a convenience for building
// rows by hand.
func Value(s string) *string {
	return &s
}

// String returns the cell value, or "" for a nil cell.
func String(c *string) string {
	if c == nil {
		return ""
	}
	return *c
}

// =============================================================================
// BOARD RECORD
// =============================================================================

// Record is one classified event ready for import into the task board.
// Records are created by the classifier and never modified afterwards.
type Record struct {
	// Category is the board list the card belongs to (e.g. "ATRASO").
	Category string

	// CardTitle is the card name; the employee name.
	CardTitle string

	// Description is the fixed three-line registration/location/day block.
	Description string

	// ChecklistValue describes the event instance within its category.
	ChecklistValue string

	// Date is the run date, formatted with DateLayout.
	Date string
}

// Values returns the record's cells in RecordColumns order.
func (r Record) Values() []string {
	return []string{r.Category, r.CardTitle, r.Description, r.ChecklistValue, r.Date}
}
