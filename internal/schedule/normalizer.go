package schedule

import (
	"strconv"
	"strings"
	"time"

	"proctorcal/internal/config"
	"proctorcal/pkg/contracts/domain"
)

// excelEpoch is the zero day of the 1900 date system used by xlsx files.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts lists the renderings excelize produces for structured date
// cells. Free-text dates deliberately have no entry here; they are rejected.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06",
	"01/02/2006",
	"1/2/2006",
	"2-Jan-06",
	"02-Jan-06",
}

// timeLayouts lists the renderings excelize produces for time-of-day cells.
var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04:05 PM",
}

// Normalizer converts raw rows into validated assignments.
type Normalizer struct {
	cfg config.ScheduleConfig
	// offset is subtracted from each assignment's start so proctors arrive
	// before the exam begins. It plays no part in the start/end ordering
	// check, which applies to the sheet values.
	offset time.Duration
}

// NewNormalizer creates a normalizer for the configured sheet layout.
func NewNormalizer(cfg config.ScheduleConfig, offset time.Duration) *Normalizer {
	return &Normalizer{cfg: cfg, offset: offset}
}

// Normalize converts raw rows into assignments, one per non-empty proctor
// cell. The first invalid row aborts the run: a partial calendar would
// silently omit exams.
func (n *Normalizer) Normalize(rows []RawRow) ([]domain.Assignment, error) {
	cols := n.cfg.Columns
	var out []domain.Assignment

	for _, r := range rows {
		exam := r.Cells[cols.Exam]
		if exam == "" {
			return nil, &EmptyFieldError{Row: r.Row, Column: cols.Exam}
		}

		date, ok := parseDateCell(r.Cells[cols.Date])
		if !ok {
			return nil, &DateParseError{Row: r.Row, Column: cols.Date, Value: r.Cells[cols.Date]}
		}
		start, ok := parseTimeCell(r.Cells[cols.StartTime])
		if !ok {
			return nil, &DateParseError{Row: r.Row, Column: cols.StartTime, Value: r.Cells[cols.StartTime]}
		}
		end, ok := parseTimeCell(r.Cells[cols.EndTime])
		if !ok {
			return nil, &DateParseError{Row: r.Row, Column: cols.EndTime, Value: r.Cells[cols.EndTime]}
		}
		if start >= end {
			return nil, &InvalidTimeRangeError{
				Row:   r.Row,
				Start: r.Cells[cols.StartTime],
				End:   r.Cells[cols.EndTime],
			}
		}

		proctors := make([]string, 0, len(r.Proctors))
		for _, p := range r.Proctors {
			if p = strings.TrimSpace(p); p != "" {
				proctors = append(proctors, p)
			}
		}
		if len(proctors) == 0 {
			return nil, &EmptyFieldError{Row: r.Row, Column: cols.ProctorPrefix}
		}

		startAt := date.Add(start - n.offset)
		endAt := date.Add(end)
		for _, p := range proctors {
			out = append(out, domain.Assignment{
				Exam:       exam,
				Proctor:    p,
				Date:       date,
				Start:      startAt,
				End:        endAt,
				Location:   r.Cells[cols.Location],
				Course:     r.Cells[cols.Course],
				Section:    r.Cells[cols.Section],
				Instructor: r.Cells[cols.Instructor],
				Enrolled:   r.Cells[cols.Enrolled],
				Proctors:   proctors,
			})
		}
	}

	return out, nil
}

// parseDateCell parses a structured date cell. Both formatted date strings
// and raw 1900-system serial numbers are accepted; anything else is not a
// date cell.
func parseDateCell(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			// Truncate datetime renderings to the calendar date.
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial >= 1 {
		t := excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// parseTimeCell parses a structured time-of-day cell into an offset from
// midnight. Serial fractions cover time cells stored without a number format;
// cells with an 1899 date component keep only their time of day, matching the
// quirk in the source schedules.
func parseTimeCell(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return timeOfDay(t), true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil && timeOfDay(t) > 0 {
			return timeOfDay(t), true
		}
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial >= 0 {
		frac := serial - float64(int64(serial))
		d := time.Duration(frac * 24 * float64(time.Hour))
		return d.Round(time.Second), true
	}
	return 0, false
}

func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}
