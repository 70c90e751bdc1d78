// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"straycat-cli/internal/config"
	"straycat-cli/internal/pyenv"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the project environment end to end",
	Long: `Check everything 'straycat run' depends on: the Python interpreter, the
virtual environment, the requirements manifest, the setup state, and the
configuration file. Exits non-zero when any check fails.`,
	RunE: runDoctor,
}

type doctorCheck struct {
	name string
	run  func(ctx context.Context) (string, error)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	root := projectDir
	venv := pyenv.NewVenv(root, cfg.VenvDir)

	checks := []doctorCheck{
		{
			name: "python interpreter",
			run: func(ctx context.Context) (string, error) {
				interp, err := pyenv.Find(cfg.Python)
				if err != nil {
					return "", err
				}
				version, err := interp.Version(ctx)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%s (%s)", version, interp.Path), nil
			},
		},
		{
			name: "virtual environment",
			run: func(context.Context) (string, error) {
				if !venv.Exists() {
					return "", pyenv.ErrVenvNotFound
				}
				if _, err := os.Stat(venv.Python()); err != nil {
					return "", fmt.Errorf("environment exists but has no interpreter: %w", err)
				}
				return venv.Path(), nil
			},
		},
		{
			name: "venv python runs",
			run: func(ctx context.Context) (string, error) {
				if !venv.Exists() {
					return "", pyenv.ErrVenvNotFound
				}
				interp := &pyenv.Interpreter{Path: venv.Python()}
				return interp.Version(ctx)
			},
		},
		{
			name: "streamlit importable",
			run: func(ctx context.Context) (string, error) {
				if !venv.Exists() {
					return "", pyenv.ErrVenvNotFound
				}
				interp := &pyenv.Interpreter{Path: venv.Python()}
				if err := interp.CheckModule(ctx, "streamlit"); err != nil {
					return "", err
				}
				return "import streamlit succeeds", nil
			},
		},
		{
			name: "requirements manifest",
			run: func(context.Context) (string, error) {
				manifest := cfg.Requirements
				if !filepath.IsAbs(manifest) {
					manifest = filepath.Join(root, manifest)
				}
				if err := pyenv.CheckManifest(manifest); err != nil {
					return "", err
				}
				return manifest, nil
			},
		},
		{
			name: "data directory",
			run: func(context.Context) (string, error) {
				dataDir := cfg.DataDir
				if !filepath.IsAbs(dataDir) {
					dataDir = filepath.Join(root, dataDir)
				}
				info, err := os.Stat(dataDir)
				if err != nil || !info.IsDir() {
					return "", fmt.Errorf("data directory not found: %s", dataDir)
				}
				return dataDir, nil
			},
		},
		{
			name: "setup state",
			run: func(context.Context) (string, error) {
				st, err := pyenv.LoadState(root)
				if err != nil {
					return "", err
				}
				if st == nil {
					return "", fmt.Errorf("no state recorded (setup has not completed)")
				}
				return fmt.Sprintf("python %s, installed %s", st.PythonVersion, st.UpdatedAt.Format("2006-01-02 15:04")), nil
			},
		},
		{
			name: "configuration",
			run: func(ctx context.Context) (string, error) {
				provider := config.NewProvider()
				if _, err := provider.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile, WorkDir: root}); err != nil {
					return "", err
				}
				path, err := config.ResolvePath(ctx, config.LoadOptions{ConfigFilePath: cfgFile, WorkDir: root})
				if err != nil || path == "" {
					return "built-in defaults (no config file)", nil
				}
				return path, nil
			},
		},
	}

	failed := 0
	for _, check := range checks {
		detail, err := check.run(cmd.Context())
		if err != nil {
			failed++
			fmt.Println(ErrorStyle.Render("✗ ") + check.name + SubtitleStyle.Render(": "+err.Error()))
			continue
		}
		fmt.Println(SuccessStyle.Render("✓ ") + check.name + SubtitleStyle.Render(": "+detail))
	}

	if failed > 0 {
		fmt.Println()
		fmt.Println(WarningStyle.Render(fmt.Sprintf("%d check(s) failed. ", failed)) +
			SubtitleStyle.Render("Try ") + CmdStyle.Render("straycat setup") + SubtitleStyle.Render(" first."))
		return &ExitError{Code: 1}
	}
	fmt.Println()
	fmt.Println(SuccessStyle.Render("All checks passed."))
	return nil
}
