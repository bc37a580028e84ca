package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Schedule ScheduleConfig `yaml:"schedule" envconfig:"SCHEDULE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FileName string `yaml:"file_name" envconfig:"FILE_NAME" default:"proctorcal.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	BaseDir string `yaml:"base_dir" envconfig:"BASE_DIR" default:"."`
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data" validate:"required"`
	LogsDir string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs" validate:"required"`
}

// ScheduleConfig describes the layout of the input schedule sheet
type ScheduleConfig struct {
	// Sheet is the worksheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet" envconfig:"SHEET"`
	// HeaderRow is the zero-based index of the header row. The source
	// schedules carry two banner rows above the column headers.
	HeaderRow       int          `yaml:"header_row" envconfig:"HEADER_ROW" default:"2" validate:"min=0"`
	StartOffsetMins int          `yaml:"start_offset_mins" envconfig:"START_OFFSET_MINS" default:"30" validate:"min=0"`
	Columns         ColumnSchema `yaml:"columns" envconfig:"COLUMNS"`
}

// ColumnSchema maps the canonical record fields to the column names used in
// the schedule sheet.
type ColumnSchema struct {
	Exam      string `yaml:"exam" envconfig:"EXAM" default:"Subject" validate:"required"`
	Date      string `yaml:"date" envconfig:"DATE" default:"Date" validate:"required"`
	StartTime string `yaml:"start_time" envconfig:"START_TIME" default:"Start time" validate:"required"`
	EndTime   string `yaml:"end_time" envconfig:"END_TIME" default:"End time" validate:"required"`
	Location  string `yaml:"location" envconfig:"LOCATION" default:"Location" validate:"required"`
	// ProctorPrefix matches every proctor column ("Proctor 1", "Proctor 2", ...).
	ProctorPrefix string `yaml:"proctor_prefix" envconfig:"PROCTOR_PREFIX" default:"Proctor" validate:"required"`

	// Optional descriptive columns; missing ones are simply left blank.
	Course     string `yaml:"course" envconfig:"COURSE" default:"Course"`
	Section    string `yaml:"section" envconfig:"SECTION" default:"Section"`
	Instructor string `yaml:"instructor" envconfig:"INSTRUCTOR" default:"Instructor"`
	Enrolled   string `yaml:"enrolled" envconfig:"ENROLLED" default:"Students enrolled"`
}

// Load loads configuration from environment variables and an optional YAML
// file. Precedence: config file, then PROCTORCAL_* environment variables,
// then defaults.
func Load(configFile string) (*Config, error) {
	var cfg Config

	// Load defaults and environment variables first
	if err := envconfig.Process("PROCTORCAL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Overlay the config file. The default file is optional; an explicitly
	// requested one must exist.
	optional := configFile == ""
	if optional {
		configFile = "proctorcal.yml"
	}
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	} else if !optional {
		return nil, fmt.Errorf("config file %s: %w", configFile, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate checks the configuration for invalid values
func (c *Config) validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}
