// =============================================================================
// Timesheet Board Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (converter)
//   ├── processCmd (converter process)
//   ├── validateCmd (converter validate)
//   └── versionCmd (converter version)
//
// The root command owns the global flags (--config, --verbose) and the
// shared setup used by subcommands: loading the configuration and building
// the logger.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/timesheet-board-converter/internal/config"
	"github.com/ginjaninja78/timesheet-board-converter/internal/converter"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "converter",
	Short: "Timesheet Board Converter - Turn timesheet exports into task board cards",

	Long: `Timesheet Board Converter reads attendance spreadsheets exported by a
time-tracking system and turns every noteworthy event (late arrival, absence,
overtime, missing punches, holidays) into a card for a Trello-style board.

Each run writes two workbooks:
  - Trello_Formatado_*.xlsx   : one row per board card
  - Faltas_Atualizadas_*.xlsx : the input with processed rows stamped, so the
                                next run skips them

Example Usage:
  converter process                       # Process every file in the input directory
  converter process --file faltas.xlsx    # Process one file
  converter process --dry-run             # Classify without writing anything
  converter validate --file faltas.xlsx   # Check the columns of an export`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.SilenceUsage = true
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// setup loads the configuration and builds the logger. The returned close
// function releases the log file, if one was opened.
func setup(stderr io.Writer) (*config.MainConfig, converter.Logger, func(), error) {
	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load main config: %w", err)
	}

	level := converter.ParseLevel(mainConfig.LogLevel)
	if verbose {
		level = converter.LevelDebug
	}

	out := stderr
	closeFn := func() {}
	if mainConfig.LogFile != "" {
		f, err := os.OpenFile(mainConfig.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = io.MultiWriter(stderr, f)
		closeFn = func() { f.Close() }
	}

	return mainConfig, converter.NewLogger(out, level), closeFn, nil
}
