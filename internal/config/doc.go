// Package config provides centralized configuration management for the
// schedule converter. It handles loading configuration from multiple sources,
// validation, and the data-directory layout used by the pipeline.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Configuration file (proctorcal.yml, highest priority)
//	2. Environment variables
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern PROCTORCAL_* for namespacing:
//
//	PROCTORCAL_LOGGING_LEVEL=debug
//	PROCTORCAL_PATHS_BASE_DIR=/srv/proctoring
//	PROCTORCAL_SCHEDULE_HEADER_ROW=2
//	PROCTORCAL_SCHEDULE_COLUMNS_EXAM="Subject"
//
// # Path Management
//
// The Paths type derives every file system location from the configured base
// directory:
//
//	data/raw        input schedules and the saved buildings index
//	data/interim    master calendar and building_abbreviations.csv
//	data/processed  per-proctor calendars
//	logs            run logs
//
// # Validation
//
// All configuration is validated at load time: column names must be
// non-empty, the header row and start offset non-negative, and logging
// options within their accepted sets.
package config
