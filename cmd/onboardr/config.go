package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/aymanbagabas/go-udiff"
	"github.com/charmbracelet/x/editor"
	"github.com/mark3labs/onboardr/internal/config"
	"github.com/spf13/cobra"
)

var configFlags struct {
	project bool
	force   bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage onboardr configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an onboardr configuration file",
	Long: `Create an onboardr configuration file with sensible defaults.

By default, creates a global config at ~/.config/onboardr/onboardr.yml.
Use --project to create a project-local config in the current directory.
With --force an existing file is replaced and the changes are shown as a diff.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd.OutOrStdout(), configPath(), configFlags.force)
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in $EDITOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := initConfig(cmd.OutOrStdout(), path, false); err != nil {
				return err
			}
		}

		c, err := editor.Cmd("onboardr", path)
		if err != nil {
			return fmt.Errorf("preparing editor: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("running editor: %w", err)
		}

		if _, err := config.Load(); err != nil {
			return fmt.Errorf("config is invalid after editing: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Config saved: %s\n", path)
		return nil
	},
}

func init() {
	configCmd.PersistentFlags().BoolVarP(&configFlags.project, "project", "p", false, "Use the config in the current directory instead of the global one")
	configInitCmd.Flags().BoolVarP(&configFlags.force, "force", "f", false, "Overwrite existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
}

func configPath() string {
	if configFlags.project {
		return config.ProjectPath()
	}
	return config.GlobalPath()
}

// initConfig writes the default config to path. An existing file is only
// replaced with force, in which case a unified diff of the change is printed.
func initConfig(w io.Writer, path string, force bool) error {
	existing, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading existing config: %w", err)
	}
	if exists && !force {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", path)
	}

	data, err := config.Marshal(config.Default())
	if err != nil {
		return err
	}

	if exists {
		if bytes.Equal(existing, data) {
			fmt.Fprintf(w, "Config at %s already matches the defaults\n", path)
			return nil
		}
		fmt.Fprint(w, udiff.Unified(path+" (current)", path+" (defaults)", string(existing), string(data)))
		fmt.Fprintln(w)
	}

	if err := config.WriteFile(path, config.Default()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(w, "Config written to: %s\n\n", path)
	fmt.Fprintln(w, "Run 'onboardr setup' to get started.")
	return nil
}
