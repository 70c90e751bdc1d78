// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"straycat-cli/internal/config"
	"straycat-cli/internal/issue"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage straycat configuration",
	Long: `Manage straycat configuration.

A project-level straycat.cue in the project directory takes precedence over
the user-level config file:
  - Linux: ~/.config/straycat/config.cue
  - macOS: ~/Library/Application Support/straycat/config.cue
  - Windows: %AppData%\straycat\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := config.NewProvider()
			opts := config.LoadOptions{ConfigFilePath: cfgFile, WorkDir: projectDir}
			cfg, err := provider.Load(cmd.Context(), opts)
			if err != nil {
				printIssue(issue.ConfigLoadFailedId)
				return err
			}

			path, _ := config.ResolvePath(cmd.Context(), opts)
			if path == "" {
				fmt.Println(SubtitleStyle.Render("source: built-in defaults"))
			} else {
				fmt.Println(SubtitleStyle.Render("source: " + path))
			}
			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile, WorkDir: projectDir})
			if err != nil {
				return err
			}
			if path == "" {
				dir, dirErr := config.ConfigDir()
				if dirErr != nil {
					return dirErr
				}
				fmt.Println(SubtitleStyle.Render("no config file found; would use ") +
					CmdStyle.Render(filepath.Join(dir, config.GlobalConfigFileName)))
				return nil
			}
			fmt.Println(path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the user-level configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}

			path := filepath.Join(dir, config.GlobalConfigFileName)
			if _, err := os.Stat(path); err == nil {
				fmt.Println(WarningStyle.Render("config file already exists: ") + CmdStyle.Render(path))
				return nil
			}

			content := config.GenerateCUE(config.DefaultConfig())
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}
			fmt.Println(SuccessStyle.Render("✓ created ") + CmdStyle.Render(path))
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewProvider().Load(cmd.Context(), config.LoadOptions{ConfigFilePath: cfgFile, WorkDir: projectDir})
			if err != nil {
				printIssue(issue.ConfigLoadFailedId)
				return err
			}
			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})
}
