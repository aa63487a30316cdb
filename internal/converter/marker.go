package converter

import (
	"github.com/ginjaninja78/timesheet-board-converter/internal/timesheet"
	"github.com/ginjaninja78/timesheet-board-converter/internal/types"
)

// MarkerTracker decides which rows are eligible for classification and
// stamps the ones that were classified.
type MarkerTracker struct {
	layout      timesheet.Layout
	headers     []string
	markerIndex int
}

// NewMarkerTracker prepares a tracker for a table. When the table has no
// marker column one is appended to the annotated headers.
func NewMarkerTracker(headers []string) *MarkerTracker {
	out := make([]string, len(headers), len(headers)+1)
	copy(out, headers)

	layout := timesheet.NewLayout(headers)
	idx, ok := layout.Index(timesheet.FieldMarker)
	if !ok {
		out = append(out, types.MarkerColumn)
		idx = len(out) - 1
		layout = timesheet.NewLayout(out)
	}

	return &MarkerTracker{layout: layout, headers: out, markerIndex: idx}
}

// Headers returns the headers of the annotated table.
func (m *MarkerTracker) Headers() []string {
	return m.headers
}

// Layout returns the field layout used to bind rows.
func (m *MarkerTracker) Layout() timesheet.Layout {
	return m.layout
}

// Keep reports whether a row belongs in the run at all. Rows without an
// employee name are summary lines and are removed from every output.
func (m *MarkerTracker) Keep(row timesheet.Row) bool {
	return row.HasName()
}

// Eligible reports whether a kept row still needs classification.
func (m *MarkerTracker) Eligible(row timesheet.Row) bool {
	return !row.Processed()
}

// Carry returns a copy of a source row sized to the annotated headers.
func (m *MarkerTracker) Carry(row types.Row) types.Row {
	out := row.Clone()
	for len(out.Cells) < len(m.headers) {
		out.Cells = append(out.Cells, nil)
	}
	return out
}

// Stamp returns a copy of a carried row with the marker set to processed.
func (m *MarkerTracker) Stamp(row types.Row) types.Row {
	out := m.Carry(row)
	out.Cells[m.markerIndex] = types.Value(types.MarkerProcessed)
	return out
}
