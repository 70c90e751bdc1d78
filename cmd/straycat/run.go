// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"straycat-cli/internal/config"
	"straycat-cli/internal/issue"
	"straycat-cli/internal/launcher"
	"straycat-cli/internal/pyenv"

	"github.com/spf13/cobra"
)

var (
	runHost       string
	runPort       int
	runEntrypoint string
	runEnvFiles   []string

	runCmd = &cobra.Command{
		Use:   "run [-- streamlit-args...]",
		Short: "Launch the Streamlit app inside the virtual environment",
		Long: `Launch the Streamlit app in the foreground, using the project's virtual
environment as if it had been activated in the current shell.

The app's exit code becomes straycat's exit code. Arguments after "--" are
passed to streamlit verbatim:

  straycat run -- --theme.base dark`,
		RunE: runRun,
	}
)

func init() {
	runCmd.Flags().StringVar(&runHost, "host", "", "listen address (default from config)")
	runCmd.Flags().IntVar(&runPort, "port", 0, "listen port (default from config)")
	runCmd.Flags().StringVar(&runEntrypoint, "entrypoint", "", "app entrypoint (default from config)")
	runCmd.Flags().StringArrayVar(&runEnvFiles, "env-file", nil, "dotenv files merged into the app environment (repeatable)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	root := projectDir

	host := firstNonEmpty(runHost, cfg.Serve.Host)
	port := runPort
	if port == 0 {
		port = cfg.Serve.Port
	}

	l := &launcher.Launcher{
		Root:     root,
		Venv:     pyenv.NewVenv(root, cfg.VenvDir),
		EnvFiles: runEnvFiles,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}

	res := l.Launch(cmd.Context(), launcher.LaunchOptions{
		Entrypoint: firstNonEmpty(runEntrypoint, cfg.Entrypoint),
		Host:       host,
		Port:       port,
		ExtraArgs:  args,
	})
	return finishLaunch(res)
}

// finishLaunch converts a launch result into the CLI's exit behavior:
// issue cards for known failures, pass-through exit codes otherwise.
func finishLaunch(res *pyenv.Result) error {
	if res.Success() {
		return nil
	}

	switch {
	case errors.Is(res.Error, pyenv.ErrVenvNotFound):
		printIssue(issue.VenvNotFoundId)
	case errors.Is(res.Error, launcher.ErrEntrypointNotFound):
		printIssue(issue.LaunchFailedId)
	}
	if res.Error != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+formatErrorForDisplay(res.Error, verbose))
	}
	return &ExitError{Code: res.ExitCode, Err: res.Error}
}
