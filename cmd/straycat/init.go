// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"straycat-cli/internal/config"
	"straycat-cli/internal/csvstore"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a straycat project",
	Long: `Scaffold the files a straycat project needs: a straycat.cue config file, a
requirements.txt manifest, a minimal Streamlit entrypoint, and the seeded
CSV data files. Existing files are never overwritten.`,
	RunE: runInit,
}

const starterRequirements = `streamlit==1.40.0
pandas==2.2.3
`

const starterEntrypoint = `import streamlit as st

st.title("迷途貓咖啡 - 成本管理系統")
st.write("Replace this file with your app, then run: straycat run")
`

const starterConfig = `// straycat project configuration. Values omitted here use built-in defaults.
venv_dir:     ".venv"
requirements: "requirements.txt"
entrypoint:   "main.py"
data_dir:     "."

serve: {
	host: "127.0.0.1"
	port: 8501
}
`

func runInit(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	root := projectDir

	scaffold := []struct {
		path    string
		content string
	}{
		{config.ProjectConfigFileName, starterConfig},
		{cfg.Requirements, starterRequirements},
		{cfg.Entrypoint, starterEntrypoint},
	}

	for _, f := range scaffold {
		path := f.path
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		if _, err := os.Stat(path); err == nil {
			fmt.Println(SubtitleStyle.Render("• kept existing ") + CmdStyle.Render(f.path))
			continue
		}
		if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		fmt.Println(SuccessStyle.Render("✓ created ") + CmdStyle.Render(f.path))
	}

	dataDir := cfg.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(root, dataDir)
	}
	if err := csvstore.New(dataDir).Init(); err != nil {
		return err
	}
	fmt.Println(SuccessStyle.Render("✓ seeded data files in ") + CmdStyle.Render(dataDir))

	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next: ") + CmdStyle.Render("straycat setup"))
	return nil
}
