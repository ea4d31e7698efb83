package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/onboardr/internal/apps"
	"github.com/mark3labs/onboardr/internal/store"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show setup progress for this installation",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		s, err := store.Open(ctx, cfg.DataDir)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		state, err := s.LoadState(ctx)
		if err != nil {
			return err
		}

		printStatus(cmd.OutOrStdout(), state)
		return nil
	},
}

func printStatus(w io.Writer, state *store.State) {
	setupState := "pending"
	if state.Complete {
		setupState = "complete"
	}
	fmt.Fprintf(w, "Setup:          %s\n", setupState)
	fmt.Fprintf(w, "Administrators: %d\n", state.AdminCount())

	enabled := apps.SortedSlugs(state.Apps)
	if len(enabled) == 0 {
		fmt.Fprintln(w, "Enabled apps:   none")
		return
	}

	names := make([]string, 0, len(enabled))
	for _, slug := range enabled {
		if app, ok := apps.Lookup(slug); ok {
			names = append(names, app.Name)
		} else {
			names = append(names, slug)
		}
	}
	fmt.Fprintf(w, "Enabled apps:   %s\n", strings.Join(names, ", "))
}
