package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/timesheet-board-converter/internal/types"
)

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "IN-1", NormalizeHeader("  in-1 "))
	assert.Equal(t, "ID VERIFICACAO", NormalizeHeader("id verificacao"))
	assert.Equal(t, "", NormalizeHeader("   "))
}

func TestRequiredFields_Count(t *testing.T) {
	assert.Len(t, RequiredFields, 19)
	seen := make(map[Field]bool)
	for _, f := range RequiredFields {
		assert.False(t, seen[f], "duplicate field %s", f)
		seen[f] = true
	}
}

func TestBind_NormalizesHeadersAndNullsEmptyCells(t *testing.T) {
	layout := NewLayout([]string{" name ", "Late", "Holiday", "id verificacao"})
	row := types.Row{
		Cells:             []*string{types.Value("Ana"), types.Value(""), nil, types.Value("PROCESSADO")},
		OriginalRowNumber: 7,
	}

	r := Bind(layout, row)
	require.NotNil(t, r.Name)
	assert.Equal(t, "Ana", *r.Name)
	assert.Nil(t, r.Late)
	assert.Nil(t, r.Holiday)
	assert.Nil(t, r.Registration)
	assert.Equal(t, "PROCESSADO", r.Marker)
	assert.True(t, r.Processed())
	assert.Equal(t, 7, r.SourceRow)
}

func TestBind_ShortRow(t *testing.T) {
	layout := NewLayout([]string{"NAME", "LATE", "ABSENCE"})
	r := Bind(layout, types.Row{Cells: []*string{types.Value("Ana")}})
	assert.Equal(t, "Ana", types.String(r.Name))
	assert.Nil(t, r.Late)
	assert.Nil(t, r.Absence)
}

func TestLayout_LastDuplicateWins(t *testing.T) {
	layout := NewLayout([]string{"LATE", " late "})
	i, ok := layout.Index(FieldLate)
	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestRow_HasName(t *testing.T) {
	assert.False(t, Row{}.HasName())
	assert.False(t, Row{Name: types.Value("   ")}.HasName())
	assert.True(t, Row{Name: types.Value("Ana")}.HasName())
}

func TestRow_TrimmedAndGet(t *testing.T) {
	r := Row{Late: types.Value(" 00:15 "), HolidayDuration: types.Value("8:00")}
	assert.Equal(t, "00:15", r.Trimmed(FieldLate))
	assert.Equal(t, "", r.Trimmed(FieldAbsence))
	assert.Equal(t, "8:00", types.String(r.Get(FieldHolidayDuration)))
	assert.Nil(t, r.Get(Field("UNKNOWN")))
}
