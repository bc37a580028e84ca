package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"proctorcal/internal/calendar"
	"proctorcal/internal/config"
	"proctorcal/internal/schedule"
	"proctorcal/pkg/contracts/domain"
)

// Writer writes calendars as .ics files into the data layout: the master
// schedule into the interim directory, per-proctor calendars into the
// processed directory.
type Writer struct {
	paths *config.Paths
}

// NewWriter creates a new calendar writer instance
func NewWriter(paths *config.Paths) *Writer {
	return &Writer{paths: paths}
}

// Write emits the master calendar and one file per proctor, returning the
// paths written. Each file write is independent: on failure the error names
// the file and everything written before it stays on disk.
func (w *Writer) Write(master domain.Calendar, proctors map[string]domain.Calendar) ([]string, error) {
	prefix, err := Prefix(master)
	if err != nil {
		return nil, err
	}

	var written []string

	masterPath := filepath.Join(w.paths.InterimDir, prefix+"-schedule.ics")
	if err := writeFile(masterPath, calendar.EncodeICS(master)); err != nil {
		return written, err
	}
	written = append(written, masterPath)

	// Deterministic write order
	names := make([]string, 0, len(proctors))
	for name := range proctors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(w.paths.ProcessedDir, fmt.Sprintf("%s-%s.ics", prefix, sanitizeName(name)))
		if err := writeFile(path, calendar.EncodeICS(proctors[name])); err != nil {
			return written, err
		}
		written = append(written, path)

		slog.Info("wrote proctor calendar",
			slog.String("proctor", name),
			slog.String("path", path),
			slog.Int("events", len(proctors[name].Events)))
	}

	slog.Info("wrote calendars",
		slog.String("prefix", prefix),
		slog.Int("files", len(written)),
		slog.Int("events", len(master.Events)))

	return written, nil
}

// Prefix derives the output filename prefix from the earliest event's start
// date. A calendar with zero events has no prefix to derive.
func Prefix(master domain.Calendar) (string, error) {
	if len(master.Events) == 0 {
		return "", &schedule.EmptyScheduleError{}
	}
	earliest := master.Events[0].Start
	for _, e := range master.Events[1:] {
		if e.Start.Before(earliest) {
			earliest = e.Start
		}
	}
	return earliest.Format("2006-01"), nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &schedule.WriteError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &schedule.WriteError{Path: path, Err: err}
	}
	return nil
}

// sanitizeName makes a proctor name safe to embed in a file name.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return replacer.Replace(name)
}
