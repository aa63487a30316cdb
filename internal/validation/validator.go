// =============================================================================
// Timesheet Board Converter - Validation Engine
// =============================================================================
//
// This module validates timesheet exports before and during classification:
//   - Schema validation: the export must expose every required column.
//     A missing column aborts the whole run before any row is touched.
//   - Cell validation: a cell the classifier reads must be well-formed text.
//     A malformed cell is a row error.
//
// VALIDATION STRATEGY:
//   Header names are compared after normalization (trim + upper-case), so the
//   check is insensitive to header casing and surrounding whitespace but
//   literal afterwards. Every missing field is reported, not just the first.
//
// =============================================================================

package validation

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ginjaninja78/timesheet-board-converter/internal/timesheet"
)

// =============================================================================
// SCHEMA ERROR
// =============================================================================

// SchemaError reports the required fields an export does not expose.
type SchemaError struct {
	// Missing holds every missing normalized field name, sorted.
	Missing []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// =============================================================================
// SCHEMA RESULT
// =============================================================================

// SchemaResult contains the non-fatal findings of a successful schema check.
type SchemaResult struct {
	// Columns is the normalized column set of the table.
	Columns map[string]bool

	// DuplicateHeaders lists normalized names that appear more than once.
	// The last occurrence is the one bound to rows.
	DuplicateHeaders []string
}

// =============================================================================
// SCHEMA VALIDATION
// =============================================================================

// ValidateHeaders checks that the headers cover every required field.
//
// PARAMETERS:
//   - headers: The table headers as they appear in the source.
//
// RETURNS:
//   - A *SchemaError naming every missing field, or nil.
func ValidateHeaders(headers []string) error {
	_, err := CheckHeaders(headers)
	return err
}

// CheckHeaders is ValidateHeaders plus the non-fatal findings, for callers
// that want to surface duplicate headers.
func CheckHeaders(headers []string) (*SchemaResult, error) {
	result := &SchemaResult{Columns: make(map[string]bool, len(headers))}

	dupes := make(map[string]bool)
	for _, h := range headers {
		name := timesheet.NormalizeHeader(h)
		if name == "" {
			continue
		}
		if result.Columns[name] {
			dupes[name] = true
		}
		result.Columns[name] = true
	}
	for name := range dupes {
		result.DuplicateHeaders = append(result.DuplicateHeaders, name)
	}
	sort.Strings(result.DuplicateHeaders)

	var missing []string
	for _, f := range timesheet.RequiredFields {
		if !result.Columns[string(f)] {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &SchemaError{Missing: missing}
	}

	return result, nil
}

// =============================================================================
// CELL VALIDATION
// =============================================================================

// CellError describes a malformed cell.
type CellError struct {
	// Field is the normalized column name.
	Field string

	// Value is the offending raw value.
	Value string

	// Message is a human-readable reason.
	Message string
}

// Error implements the error interface.
func (e *CellError) Error() string {
	return fmt.Sprintf("field '%s': %s (value: %q)", e.Field, e.Message, e.Value)
}

// ValidateCell checks that a raw cell value is well-formed text. Nil cells are
// always valid.
func ValidateCell(field timesheet.Field, value *string) error {
	if value == nil {
		return nil
	}
	v := *value

	if !utf8.ValidString(v) {
		return &CellError{Field: string(field), Value: v, Message: "invalid UTF-8"}
	}

	for _, r := range v {
		if r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		if unicode.IsControl(r) {
			return &CellError{Field: string(field), Value: v, Message: fmt.Sprintf("control character U+%04X", r)}
		}
	}

	return nil
}

// ValidateRow validates every required cell of a bound row and returns the
// first failure.
func ValidateRow(row timesheet.Row) error {
	for _, f := range timesheet.RequiredFields {
		if err := ValidateCell(f, row.Get(f)); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats errors for display or logging.
//
// PARAMETERS:
//   - errs: The errors to format.
//
// RETURNS:
//   - A formatted string containing all errors.
func FormatErrors(errs []error) string {
	if len(errs) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d error(s):\n\n", len(errs)))

	for i, err := range errs {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}

// WriteErrorLog writes formatted errors to a file.
func WriteErrorLog(errs []error, filePath string) error {
	if err := os.WriteFile(filePath, []byte(FormatErrors(errs)), 0644); err != nil {
		return fmt.Errorf("failed to write error log: %w", err)
	}
	return nil
}
