package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/onboardr/internal/gate"
	"github.com/mark3labs/onboardr/internal/hooks"
	"github.com/mark3labs/onboardr/internal/logger"
	"github.com/mark3labs/onboardr/internal/store"
	"github.com/mark3labs/onboardr/internal/tui/setup"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	dataDir string
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run the first-run setup wizard",
	Long: `Run the setup wizard for this installation.

The wizard creates the first administrator account and then lets you enable
apps. If an administrator already exists the account step is skipped.
When setup finishes the post_setup hook from .onboardr.hooks.yml runs, if
configured, and the address of the installation is printed.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().StringVar(&setupFlags.dataDir, "data-dir", "", "Data directory (default: from config)")
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if setupFlags.dataDir != "" {
		cfg.DataDir = setupFlags.dataDir
	}

	ctx := cmd.Context()
	s, err := store.Open(ctx, cfg.DataDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Warn("Closing store: %v", err)
		}
	}()

	opts := setup.Options{
		AppName:           cfg.AppName,
		AppsStep:          cfg.AppsStep,
		MinPasswordLength: cfg.AdminMinPassword,
		Decider:           gate.AllowAll,
	}
	res, err := setup.Run(ctx, opts, s, func() error {
		return s.MarkComplete(ctx)
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.Cancelled {
		fmt.Fprintln(out, "Setup cancelled. Run 'onboardr setup' again to continue.")
		return nil
	}
	if !res.Completed {
		return nil
	}

	enabled, err := s.EnabledApps(ctx)
	if err != nil {
		return err
	}
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	output, err := hooks.RunPostSetup(ctx, workDir, hooks.Variables{
		AppName: cfg.AppName,
		BaseURL: cfg.BaseURL,
		Apps:    enabled,
	})
	if err != nil {
		return fmt.Errorf("post-setup hook: %w", err)
	}
	if output != "" {
		fmt.Fprint(out, output)
	}

	fmt.Fprintf(out, "Setup complete. Open %s to get started.\n", redirectURL(cfg.BaseURL))
	return nil
}

// redirectURL is the page to open once setup is done.
func redirectURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/"
}
