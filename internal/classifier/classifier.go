// =============================================================================
// Timesheet Board Converter - Row Classifier
// =============================================================================
//
// This module turns one timesheet row into zero or more board records. It is
// a pure function of the row and the run date.
//
// CLASSIFICATION RULES (applied in this order):
//   1. No punch  : PUNCH-RAW, IN-1, OUT-1, IN-2 and OUT-2 are all empty or
//                  "00:00"                          -> SEM BATIDA
//   2. Holiday   : HOLIDAY and HOLIDAY-DURATION merged into one text
//                                                    -> FERIADO
//   3. Field map : each event column with a value other than empty or
//                  "00:00" emits a record of its category
//                  (LATE -> ATRASO, ABSENCE -> FALTA, ...)
//
// SUPPRESSION:
//   "00:00" is the only sentinel. It is matched literally after trimming;
//   "0:00" and "00:00:00" are reported like any other value.
//
// =============================================================================

package classifier

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/timesheet-board-converter/internal/timesheet"
	"github.com/ginjaninja78/timesheet-board-converter/internal/types"
	"github.com/ginjaninja78/timesheet-board-converter/internal/validation"
)

// Sentinel is the token the export writes for "zero time recorded".
const Sentinel = "00:00"

// Categories emitted by the classifier.
const (
	CategoryNoPunch         = "SEM BATIDA"
	CategoryHoliday         = "FERIADO"
	CategoryLate            = "ATRASO"
	CategoryAbsence         = "FALTA"
	CategoryTimeBank        = "BANCO DE HORAS"
	CategoryOvertime50      = "HORA EXTRA 50%"
	CategoryOvertime100     = "HORA EXTRA 100%"
	CategoryDSRDeducted     = "DSR DESCONTADO"
	CategoryNightShiftBonus = "ADICIONAL NOTURNO"
	CategorySchedule        = "EXPEDIENTE"
)

// NoPunchChecklist is the checklist text of a SEM BATIDA record.
const NoPunchChecklist = "Sem registros de batida"

// =============================================================================
// FIELD RULES
// =============================================================================

// FieldRule maps an event column to the board category it reports into.
type FieldRule struct {
	Field    timesheet.Field
	Category string
}

// DefaultFieldRules returns the generic column mappings in emission order.
func DefaultFieldRules() []FieldRule {
	return []FieldRule{
		{Field: timesheet.FieldLate, Category: CategoryLate},
		{Field: timesheet.FieldAbsence, Category: CategoryAbsence},
		{Field: timesheet.FieldTimeBank, Category: CategoryTimeBank},
		{Field: timesheet.FieldOvertime50, Category: CategoryOvertime50},
		{Field: timesheet.FieldOvertime100, Category: CategoryOvertime100},
		{Field: timesheet.FieldDSRDeducted, Category: CategoryDSRDeducted},
		{Field: timesheet.FieldNightShiftBonus, Category: CategoryNightShiftBonus},
		{Field: timesheet.FieldSchedule, Category: CategorySchedule},
	}
}

// =============================================================================
// CLASSIFIER
// =============================================================================

// Classifier applies the classification rules to rows.
type Classifier struct {
	rules []FieldRule
}

// New creates a Classifier with the default field rules.
func New() *Classifier {
	return NewWithRules(DefaultFieldRules())
}

// NewWithRules creates a Classifier with custom field rules. The no-punch and
// holiday rules always run first.
func NewWithRules(rules []FieldRule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify derives the board records of one row.
//
// PARAMETERS:
//   - row: The bound timesheet row.
//   - date: The run date, already formatted with types.DateLayout.
//
// RETURNS:
//   - The records in rule order (possibly none).
//   - An error if a cell the rules read is malformed.
func (c *Classifier) Classify(row timesheet.Row, date string) ([]types.Record, error) {
	if err := validation.ValidateRow(row); err != nil {
		return nil, fmt.Errorf("row %d: %w", row.SourceRow, err)
	}

	title := types.String(row.Name)
	desc := Description(row)

	newRecord := func(category, checklist string) types.Record {
		return types.Record{
			Category:       category,
			CardTitle:      title,
			Description:    desc,
			ChecklistValue: checklist,
			Date:           date,
		}
	}

	var records []types.Record

	if NoPunch(row) {
		records = append(records, newRecord(CategoryNoPunch, NoPunchChecklist))
	}

	if holiday := MergeHoliday(row); holiday != "" {
		records = append(records, newRecord(CategoryHoliday, holiday))
	}

	for _, rule := range c.rules {
		value := row.Trimmed(rule.Field)
		if isBlankOrSentinel(value) {
			continue
		}
		records = append(records, newRecord(rule.Category, value))
	}

	return records, nil
}

// =============================================================================
// RULE HELPERS
// =============================================================================

// Description builds the three-line card description. Values are written
// literally; null values leave the label blank.
func Description(row timesheet.Row) string {
	return "Registration: " + types.String(row.Registration) + "\n" +
		"Location: " + types.String(row.Location) + "\n" +
		"Day: " + types.String(row.Day)
}

// NoPunch reports whether every punch column is empty or the sentinel.
func NoPunch(row timesheet.Row) bool {
	for _, f := range timesheet.PunchFields {
		if !isBlankOrSentinel(row.Trimmed(f)) {
			return false
		}
	}
	return true
}

// MergeHoliday joins the holiday name and duration into one checklist text.
// "Natal" + "8:00" gives "Natal 8:00"; a missing name gives just "4:00".
func MergeHoliday(row timesheet.Row) string {
	var b strings.Builder
	if row.Holiday != nil {
		b.WriteString(strings.TrimSpace(*row.Holiday))
		b.WriteString(" ")
	}
	if row.HolidayDuration != nil {
		b.WriteString(strings.TrimSpace(*row.HolidayDuration))
	}
	return strings.TrimSpace(b.String())
}

func isBlankOrSentinel(value string) bool {
	return value == "" || value == Sentinel
}
