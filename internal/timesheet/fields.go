// =============================================================================
// Timesheet Board Converter - Timesheet Fields
// =============================================================================
//
// This module defines the column vocabulary of the timesheet export. Every
// header is normalized (trimmed and upper-cased) before it is compared with
// these names, so "  in-1 " in the source matches IN-1.
//
// =============================================================================

package timesheet

import (
	"strings"

	"github.com/ginjaninja78/timesheet-board-converter/internal/types"
)

// Field is a normalized timesheet column name.
type Field string

// Identity fields.
const (
	FieldName         Field = "NAME"
	FieldRegistration Field = "REGISTRATION"
	FieldLocation     Field = "LOCATION"
	FieldDay          Field = "DAY"
)

// Punch fields.
const (
	FieldPunchRaw Field = "PUNCH-RAW"
	FieldIn1      Field = "IN-1"
	FieldOut1     Field = "OUT-1"
	FieldIn2      Field = "IN-2"
	FieldOut2     Field = "OUT-2"
)

// Event fields.
const (
	FieldLate            Field = "LATE"
	FieldAbsence         Field = "ABSENCE"
	FieldTimeBank        Field = "TIME-BANK"
	FieldOvertime50      Field = "OVERTIME-50"
	FieldOvertime100     Field = "OVERTIME-100"
	FieldDSRDeducted     Field = "DSR-DEDUCTED"
	FieldNightShiftBonus Field = "NIGHT-SHIFT-BONUS"
	FieldSchedule        Field = "SCHEDULE"
	FieldHoliday         Field = "HOLIDAY"
	FieldHolidayDuration Field = "HOLIDAY-DURATION"
)

// FieldMarker is the normalized name of the processing marker column.
var FieldMarker = Field(NormalizeHeader(types.MarkerColumn))

// RequiredFields lists every column the export must expose, in the order the
// export usually presents them.
var RequiredFields = []Field{
	FieldName,
	FieldRegistration,
	FieldLocation,
	FieldDay,
	FieldPunchRaw,
	FieldIn1,
	FieldOut1,
	FieldIn2,
	FieldOut2,
	FieldLate,
	FieldAbsence,
	FieldTimeBank,
	FieldOvertime50,
	FieldOvertime100,
	FieldDSRDeducted,
	FieldNightShiftBonus,
	FieldSchedule,
	FieldHoliday,
	FieldHolidayDuration,
}

// PunchFields are the clock-in/clock-out columns inspected by the no-punch
// rule.
var PunchFields = []Field{FieldPunchRaw, FieldIn1, FieldOut1, FieldIn2, FieldOut2}

// NormalizeHeader trims surrounding whitespace and upper-cases a header.
func NormalizeHeader(header string) string {
	return strings.ToUpper(strings.TrimSpace(header))
}
