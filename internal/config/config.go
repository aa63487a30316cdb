// =============================================================================
// Timesheet Board Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration (config.yaml). Every setting has a default, so a missing
// config file is not an error: the converter runs with the defaults.
//
// EXAMPLE:
//   input_dir: ./input
//   output_dir: ./output
//   input_sheet: Faltas
//   records_file_format: Trello_Formatado_{timestamp}.xlsx
//   annotated_file_format: Faltas_Atualizadas_{timestamp}.xlsx
//   row_error_policy: abort
//   category_labels:
//     SCHEDULE: TURNO
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is the directory scanned for timesheet exports (.xlsx, .csv).
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory where both output workbooks are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives input files after a successful run.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// OutputArchiveDir receives a copy of every output workbook.
	// Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir"`

	// SkipArchive leaves input files in place after processing.
	SkipArchive bool `yaml:"skip_archive"`

	// =========================================================================
	// INPUT / OUTPUT FORMAT
	// =========================================================================

	// InputSheet is the sheet read from .xlsx inputs. Empty means the first
	// sheet of the workbook.
	InputSheet string `yaml:"input_sheet"`

	// OutputSheet is the sheet name used in both output workbooks.
	// Default: "Sheet1"
	OutputSheet string `yaml:"output_sheet"`

	// CSV holds the settings for .csv inputs.
	CSV CSVSettings `yaml:"csv"`

	// RecordsFileFormat names the board records workbook. Placeholders:
	// {timestamp}, {date}, {time}, {uuid}, {original}.
	// Default: "Trello_Formatado_{timestamp}.xlsx"
	RecordsFileFormat string `yaml:"records_file_format"`

	// AnnotatedFileFormat names the annotated timesheet workbook.
	// Default: "Faltas_Atualizadas_{timestamp}.xlsx"
	AnnotatedFileFormat string `yaml:"annotated_file_format"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile, when set, receives a copy of the log output.
	LogFile string `yaml:"log_file"`

	// LogLevel is one of debug, info, warn, error.
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency bounds the number of files processed at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// RowErrorPolicy is "abort" (a bad row fails the whole file) or
	// "isolate" (bad rows are reported and left unmarked).
	// Default: "abort"
	RowErrorPolicy string `yaml:"row_error_policy"`

	// CategoryLabels overrides the board list name of an event column,
	// keyed by normalized column name (e.g. SCHEDULE: TURNO).
	CategoryLabels map[string]string `yaml:"category_labels"`
}

// CSVSettings contains the settings for parsing CSV exports.
type CSVSettings struct {
	// Delimiter is the field separator: a single character, or one of the
	// names "tab", "pipe", "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// HeaderRow is the 1-based row holding the column headers.
	// Default: 1
	HeaderRow int `yaml:"header_row"`
}

// =============================================================================
// LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the config file. A missing file yields the
//     defaults.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// applyMainConfigDefaults fills unset fields with their default values.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputArchiveDir == "" {
		config.OutputArchiveDir = "./output_archive"
	}
	if config.OutputSheet == "" {
		config.OutputSheet = "Sheet1"
	}
	if config.CSV.Delimiter == "" {
		config.CSV.Delimiter = ","
	}
	if config.CSV.HeaderRow == 0 {
		config.CSV.HeaderRow = 1
	}
	if config.RecordsFileFormat == "" {
		config.RecordsFileFormat = "Trello_Formatado_{timestamp}.xlsx"
	}
	if config.AnnotatedFileFormat == "" {
		config.AnnotatedFileFormat = "Faltas_Atualizadas_{timestamp}.xlsx"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
	if config.RowErrorPolicy == "" {
		config.RowErrorPolicy = "abort"
	}
}

// validateMainConfig checks values that have no sensible fallback.
func validateMainConfig(config *MainConfig) error {
	switch config.RowErrorPolicy {
	case "abort", "isolate":
	default:
		return fmt.Errorf("row_error_policy must be \"abort\" or \"isolate\", got %q", config.RowErrorPolicy)
	}

	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", config.LogLevel)
	}

	if config.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be positive, got %d", config.MaxConcurrency)
	}

	if config.CSV.HeaderRow < 0 {
		return fmt.Errorf("csv.header_row must be positive, got %d", config.CSV.HeaderRow)
	}

	if _, err := config.CSV.Comma(); err != nil {
		return err
	}

	return nil
}

// Comma resolves the configured delimiter to a rune.
func (s CSVSettings) Comma() (rune, error) {
	switch strings.ToLower(s.Delimiter) {
	case "", ",":
		return ',', nil
	case "\\t", "tab":
		return '\t', nil
	case "|", "pipe":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	}

	r := []rune(s.Delimiter)
	if len(r) != 1 || r[0] == '"' || r[0] == '\n' || r[0] == '\r' {
		return 0, fmt.Errorf("csv.delimiter must be a single character, got %q", s.Delimiter)
	}
	return r[0], nil
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// Directories returns the directories the converter writes to.
func (c *MainConfig) Directories() []string {
	return []string{c.InputDir, c.OutputDir, c.InputArchiveDir, c.OutputArchiveDir}
}
