// Package app wires the pipeline stages together: parse, normalize, build,
// write. All components are injected from configuration at startup so tests
// can run the whole pipeline against fixture directories.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"proctorcal/internal/buildings"
	"proctorcal/internal/calendar"
	"proctorcal/internal/config"
	"proctorcal/internal/exporter"
	"proctorcal/internal/schedule"
)

// App represents the conversion pipeline with its configuration and layout.
type App struct {
	cfg   *config.Config
	paths *config.Paths
}

// New creates the application container.
func New(cfg *config.Config, paths *config.Paths) *App {
	return &App{cfg: cfg, paths: paths}
}

// Run converts one schedule workbook into calendar files and returns the
// paths written. The pipeline is fail-fast: the first invalid row aborts the
// run before any file is written.
func (a *App) Run(schedulePath string, startOffset time.Duration) ([]string, error) {
	rows, err := schedule.NewParser(a.cfg.Schedule).ParseFile(schedulePath)
	if err != nil {
		return nil, err
	}

	assignments, err := schedule.NewNormalizer(a.cfg.Schedule, startOffset).Normalize(rows)
	if err != nil {
		return nil, err
	}

	master, perProctor := calendar.Build(assignments, calendar.Options{
		ExpandLocation: a.locationExpander(),
	})

	written, err := exporter.NewWriter(a.paths).Write(master, perProctor)
	if err != nil {
		return written, err
	}

	slog.Info("created calendars",
		slog.String("schedule", schedulePath),
		slog.Int("assignments", len(assignments)),
		slog.Int("proctors", len(perProctor)))

	return written, nil
}

// ExtractBuildings converts a saved buildings index page into the
// abbreviations CSV used to expand exam locations.
func (a *App) ExtractBuildings(indexPath string) (string, error) {
	f, err := os.Open(indexPath)
	if err != nil {
		return "", fmt.Errorf("failed to open index page: %w", err)
	}
	defer f.Close()

	entries, err := buildings.ParseIndex(f)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no building entries found in %s", indexPath)
	}

	if err := buildings.WriteCSV(a.paths.AbbreviationsCSV, entries); err != nil {
		return "", err
	}

	slog.Info("extracted building abbreviations",
		slog.String("index", indexPath),
		slog.String("csv", a.paths.AbbreviationsCSV),
		slog.Int("entries", len(entries)))

	return a.paths.AbbreviationsCSV, nil
}

// locationExpander loads the abbreviations CSV when present. A missing CSV
// is not an error: locations then pass through unexpanded.
func (a *App) locationExpander() func(string) string {
	entries, err := buildings.LoadCSV(a.paths.AbbreviationsCSV)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("could not load building abbreviations",
				slog.String("csv", a.paths.AbbreviationsCSV),
				slog.Any("error", err))
		}
		return nil
	}
	return buildings.NewExpander(entries).Expand
}
