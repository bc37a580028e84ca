package schedule

import (
	"fmt"
	"strings"
)

// MissingColumnError reports required columns that are absent from the header
// row of the schedule sheet.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	if len(e.Columns) == 1 {
		return fmt.Sprintf("column %q does not exist in the schedule sheet", e.Columns[0])
	}
	return fmt.Sprintf("columns %s do not exist in the schedule sheet", strings.Join(e.Columns, ", "))
}

// DateParseError reports a cell that could not be parsed as a structured
// date or time-of-day value.
type DateParseError struct {
	Row    int
	Column string
	Value  string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("row %d: could not parse %s cell %q as a date/time value", e.Row, e.Column, e.Value)
}

// InvalidTimeRangeError reports a row whose start time is not strictly before
// its end time.
type InvalidTimeRangeError struct {
	Row   int
	Start string
	End   string
}

func (e *InvalidTimeRangeError) Error() string {
	return fmt.Sprintf("row %d: start time %q is not before end time %q", e.Row, e.Start, e.End)
}

// EmptyFieldError reports a required text field that is empty after trimming.
type EmptyFieldError struct {
	Row    int
	Column string
}

func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("row %d: required field %q is empty", e.Row, e.Column)
}

// EmptyScheduleError reports a schedule with zero events, from which no
// output file name can be derived.
type EmptyScheduleError struct{}

func (e *EmptyScheduleError) Error() string {
	return "schedule contains no events"
}

// WriteError reports an I/O failure while writing one output file. Files
// written before the failure are left in place.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
