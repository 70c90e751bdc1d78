// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"

	"straycat-cli/internal/config"
	"straycat-cli/internal/launcher"
	"straycat-cli/internal/pyenv"

	"github.com/spf13/cobra"
)

var (
	execVirtual  bool
	execEnvFiles []string

	execCmd = &cobra.Command{
		Use:   "exec -- <command> [args...]",
		Short: "Run a command inside the virtual environment",
		Long: `Run a command with the project's virtual environment activated: the venv
bin directory leads PATH, VIRTUAL_ENV is set, and PYTHONHOME is cleared.

With --virtual the single argument is treated as a script and executed by
the built-in POSIX shell interpreter instead of spawning a system process,
which behaves identically on Windows:

  straycat exec --virtual 'pip list | grep -i streamlit'`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExec,
	}
)

func init() {
	execCmd.Flags().BoolVar(&execVirtual, "virtual", false, "interpret the argument as a script for the built-in shell")
	execCmd.Flags().StringArrayVar(&execEnvFiles, "env-file", nil, "dotenv files merged into the command environment (repeatable)")
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	root := projectDir

	l := &launcher.Launcher{
		Root:     root,
		Venv:     pyenv.NewVenv(root, cfg.VenvDir),
		EnvFiles: execEnvFiles,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}

	var res *pyenv.Result
	if execVirtual {
		res = l.ExecVirtual(cmd.Context(), args[0], args[1:]...)
	} else {
		res = l.Exec(cmd.Context(), args)
	}
	return finishLaunch(res)
}
