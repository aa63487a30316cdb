package timesheet

import (
	"strings"

	"github.com/ginjaninja78/timesheet-board-converter/internal/types"
)

// Layout maps normalized field names to column indexes of a table. It is
// built once per table and used to bind every row.
type Layout struct {
	index map[Field]int
}

// NewLayout indexes the headers of a table. When two headers normalize to the
// same field the last one wins.
func NewLayout(headers []string) Layout {
	index := make(map[Field]int, len(headers))
	for i, h := range headers {
		index[Field(NormalizeHeader(h))] = i
	}
	return Layout{index: index}
}

// Index returns the column index of a field.
func (l Layout) Index(f Field) (int, bool) {
	i, ok := l.index[f]
	return i, ok
}

// Has reports whether the layout exposes the field.
func (l Layout) Has(f Field) bool {
	_, ok := l.index[f]
	return ok
}

// Row is one employee-day with every required field bound to a nullable
// value. A nil field means the cell was absent or empty.
type Row struct {
	Name         *string
	Registration *string
	Location     *string
	Day          *string

	PunchRaw *string
	In1      *string
	Out1     *string
	In2      *string
	Out2     *string

	Late            *string
	Absence         *string
	TimeBank        *string
	Overtime50      *string
	Overtime100     *string
	DSRDeducted     *string
	NightShiftBonus *string
	Schedule        *string
	Holiday         *string
	HolidayDuration *string

	// Marker is the current processing marker ("" when unset).
	Marker string

	// SourceRow is the 1-based row number in the source file.
	SourceRow int
}

// Bind populates a Row from a table row. Fields missing from the layout are
// left nil; callers validate the layout before binding.
func Bind(layout Layout, row types.Row) Row {
	get := func(f Field) *string {
		i, ok := layout.Index(f)
		if !ok {
			return nil
		}
		c := row.Cell(i)
		if c == nil || *c == "" {
			return nil
		}
		return c
	}

	return Row{
		Name:            get(FieldName),
		Registration:    get(FieldRegistration),
		Location:        get(FieldLocation),
		Day:             get(FieldDay),
		PunchRaw:        get(FieldPunchRaw),
		In1:             get(FieldIn1),
		Out1:            get(FieldOut1),
		In2:             get(FieldIn2),
		Out2:            get(FieldOut2),
		Late:            get(FieldLate),
		Absence:         get(FieldAbsence),
		TimeBank:        get(FieldTimeBank),
		Overtime50:      get(FieldOvertime50),
		Overtime100:     get(FieldOvertime100),
		DSRDeducted:     get(FieldDSRDeducted),
		NightShiftBonus: get(FieldNightShiftBonus),
		Schedule:        get(FieldSchedule),
		Holiday:         get(FieldHoliday),
		HolidayDuration: get(FieldHolidayDuration),
		Marker:          types.String(get(FieldMarker)),
		SourceRow:       row.OriginalRowNumber,
	}
}

// Get returns the bound value of a required field, or nil for unknown fields.
func (r Row) Get(f Field) *string {
	switch f {
	case FieldName:
		return r.Name
	case FieldRegistration:
		return r.Registration
	case FieldLocation:
		return r.Location
	case FieldDay:
		return r.Day
	case FieldPunchRaw:
		return r.PunchRaw
	case FieldIn1:
		return r.In1
	case FieldOut1:
		return r.Out1
	case FieldIn2:
		return r.In2
	case FieldOut2:
		return r.Out2
	case FieldLate:
		return r.Late
	case FieldAbsence:
		return r.Absence
	case FieldTimeBank:
		return r.TimeBank
	case FieldOvertime50:
		return r.Overtime50
	case FieldOvertime100:
		return r.Overtime100
	case FieldDSRDeducted:
		return r.DSRDeducted
	case FieldNightShiftBonus:
		return r.NightShiftBonus
	case FieldSchedule:
		return r.Schedule
	case FieldHoliday:
		return r.Holiday
	case FieldHolidayDuration:
		return r.HolidayDuration
	}
	return nil
}

// Trimmed returns the trimmed value of a field, "" when null.
func (r Row) Trimmed(f Field) string {
	return strings.TrimSpace(types.String(r.Get(f)))
}

// HasName reports whether the row carries a non-blank employee name. Rows
// without one are summary or total lines of the export.
func (r Row) HasName() bool {
	return r.Trimmed(FieldName) != ""
}

// Processed reports whether a previous run already stamped the row.
func (r Row) Processed() bool {
	return r.Marker == types.MarkerProcessed
}
