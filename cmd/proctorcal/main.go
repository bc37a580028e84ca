// Command proctorcal converts an exam-proctoring schedule workbook into
// iCalendar files: one master calendar plus one calendar per proctor.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"proctorcal/internal/app"
	"proctorcal/internal/config"
	"proctorcal/internal/files"
	"proctorcal/internal/infrastructure"
)

func main() {
	configFile := flag.String("config", "", "config file (defaults to proctorcal.yml when present)")
	scheduleFile := flag.String("schedule", "", "schedule to convert; bare names resolve against data/raw (prompts when omitted)")
	startOffset := flag.Int("start-offset", -1, "minutes to subtract from each event start (default from config)")
	buildingsIndex := flag.String("buildings", "", "saved buildings index page; extracts the abbreviations CSV instead of converting a schedule")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "proctorcal: %v\n", err)
		os.Exit(1)
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "proctorcal: %v\n", err)
		os.Exit(1)
	}

	if _, err := infrastructure.InitializeLogger(cfg.Logging, paths.LogFile(cfg.Logging.FileName)); err != nil {
		fmt.Fprintf(os.Stderr, "proctorcal: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogger()

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("failed to create data directories", "error", err)
		os.Exit(1)
	}

	a := app.New(cfg, paths)

	if *buildingsIndex != "" {
		csvPath, err := a.ExtractBuildings(*buildingsIndex)
		if err != nil {
			slog.Error("building extraction failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Extracted building abbreviations to %s\n", csvPath)
		return
	}

	input, err := files.NewSelector(paths.RawDir).Select(*scheduleFile)
	if err != nil {
		slog.Error("schedule selection failed", "error", err)
		os.Exit(1)
	}

	offset := time.Duration(cfg.Schedule.StartOffsetMins) * time.Minute
	if *startOffset >= 0 {
		offset = time.Duration(*startOffset) * time.Minute
	}

	written, err := a.Run(input, offset)
	if err != nil {
		slog.Error("conversion failed", "schedule", input, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Created %d calendar files from %s\n", len(written), input)
}
