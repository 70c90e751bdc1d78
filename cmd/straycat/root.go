// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for straycat.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"straycat-cli/internal/config"
	"straycat-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// projectDir is the project root all commands operate on
	projectDir string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "straycat",
		Short: "Launcher and toolbox for the 迷途貓 café cost manager",
		Long: TitleStyle.Render("straycat") + SubtitleStyle.Render(" - launcher and toolbox for the 迷途貓 café cost manager") + `

straycat replaces the batch scripts that used to bootstrap and start the
Streamlit cost management app. It creates the Python virtual environment,
installs pinned dependencies, launches the app, and can serve a native
version of the costing pages without Python at all.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'straycat init' in your project directory
  2. Run 'straycat setup' to build the environment
  3. Run 'straycat run' to start the app

` + SubtitleStyle.Render("Examples:") + `
  straycat setup --log-file setup.log   Build the venv, logging each step
  straycat run --port 8502              Launch the app on another port
  straycat exec -- python -V            Run a command inside the venv
  straycat price 草莓蛋糕=3             Price an order from the CSV data
  straycat doctor                       Check the environment end to end`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./straycat.cue, then the user config dir)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project-dir", "C", ".", "project directory to operate on")

	// Add subcommands
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}
	if projectDir != "" && projectDir != "." {
		config.SetWorkDirOverride(projectDir)
	}

	cfg := config.Get()

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
