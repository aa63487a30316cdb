package converter

import (
	"sort"

	"github.com/ginjaninja78/timesheet-board-converter/internal/types"
)

// Assembler accumulates the outputs of a run: the board records, the rows of
// the annotated table and the set of emitted categories.
type Assembler struct {
	headers    []string
	sourceFile string
	records    []types.Record
	rows       []types.Row
	categories map[string]struct{}
}

// NewAssembler creates an assembler for an annotated table with the given
// headers.
func NewAssembler(headers []string, sourceFile string) *Assembler {
	return &Assembler{
		headers:    headers,
		sourceFile: sourceFile,
		categories: make(map[string]struct{}),
	}
}

// AddRecords appends records in emission order.
func (a *Assembler) AddRecords(records []types.Record) {
	for _, r := range records {
		a.records = append(a.records, r)
		a.categories[r.Category] = struct{}{}
	}
}

// AddRow appends a row to the annotated table.
func (a *Assembler) AddRow(row types.Row) {
	a.rows = append(a.rows, row)
}

// Records returns the accumulated records.
func (a *Assembler) Records() []types.Record {
	return a.records
}

// Annotated returns the annotated table.
func (a *Assembler) Annotated() *types.Table {
	return &types.Table{
		Headers:    a.headers,
		Rows:       a.rows,
		SourceFile: a.sourceFile,
	}
}

// Categories returns the emitted categories, sorted and without duplicates.
func (a *Assembler) Categories() []string {
	out := make([]string, 0, len(a.categories))
	for c := range a.categories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// RecordsTable renders records as a table with the board importer's columns.
func RecordsTable(records []types.Record) *types.Table {
	table := &types.Table{
		Headers: append([]string(nil), types.RecordColumns...),
		Rows:    make([]types.Row, len(records)),
	}
	for i, r := range records {
		values := r.Values()
		cells := make([]*string, len(values))
		for j := range values {
			cells[j] = types.Value(values[j])
		}
		table.Rows[i] = types.Row{Cells: cells, OriginalRowNumber: i + 2}
	}
	return table
}
