package converter

import (
	"fmt"
)

// RowErrorPolicy decides what happens when a single row fails.
type RowErrorPolicy string

const (
	// PolicyAbort stops the run at the first failing row and returns no
	// output. This is the default.
	PolicyAbort RowErrorPolicy = "abort"

	// PolicyIsolate records the failure, leaves the row unmarked so a later
	// run retries it, and keeps processing the remaining rows.
	PolicyIsolate RowErrorPolicy = "isolate"
)

// ParseRowErrorPolicy converts a configuration value into a policy. An empty
// value selects PolicyAbort.
func ParseRowErrorPolicy(s string) (RowErrorPolicy, error) {
	switch RowErrorPolicy(s) {
	case "", PolicyAbort:
		return PolicyAbort, nil
	case PolicyIsolate:
		return PolicyIsolate, nil
	default:
		return "", fmt.Errorf("unknown row error policy %q (want %q or %q)", s, PolicyAbort, PolicyIsolate)
	}
}

// UnexpectedError aborts a run because a row could not be processed.
type UnexpectedError struct {
	// Row is the 1-based source row number of the failing row.
	Row int

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error while processing timesheet (row %d): %v", e.Row, e.Err)
}

// Unwrap returns the underlying cause.
func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// RowError is a per-row failure collected under PolicyIsolate.
type RowError struct {
	// Row is the 1-based source row number.
	Row int

	// Name is the employee name of the row.
	Name string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Row, e.Name, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RowError) Unwrap() error {
	return e.Err
}
