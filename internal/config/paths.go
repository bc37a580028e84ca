package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations: raw schedules are
// read from data/raw, the master calendar and the building-abbreviations CSV
// live in data/interim, and per-proctor calendars land in data/processed.
type Paths struct {
	BaseDir      string
	DataDir      string
	RawDir       string
	InterimDir   string
	ProcessedDir string
	LogsDir      string

	// Well-known files
	AbbreviationsCSV string
}

// NewPaths derives the directory layout from the configured base directory.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	base, err := filepath.Abs(cfg.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	dataDir := filepath.Join(base, cfg.DataDir)
	interimDir := filepath.Join(dataDir, "interim")

	return &Paths{
		BaseDir:      base,
		DataDir:      dataDir,
		RawDir:       filepath.Join(dataDir, "raw"),
		InterimDir:   interimDir,
		ProcessedDir: filepath.Join(dataDir, "processed"),
		LogsDir:      filepath.Join(base, cfg.LogsDir),

		AbbreviationsCSV: filepath.Join(interimDir, "building_abbreviations.csv"),
	}, nil
}

// EnsureDirectories creates every directory of the layout that does not
// already exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.RawDir, p.InterimDir, p.ProcessedDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// LogFile returns the full path for a log file name inside the logs directory.
func (p *Paths) LogFile(name string) string {
	return filepath.Join(p.LogsDir, name)
}
