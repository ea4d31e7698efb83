package main

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/onboardr/internal/apps"
	"github.com/mark3labs/onboardr/internal/tui/theme"
	"github.com/spf13/cobra"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List the apps that can be enabled during setup",
	RunE: func(cmd *cobra.Command, args []string) error {
		printCatalog(cmd.OutOrStdout())
		return nil
	},
}

func printCatalog(w io.Writer) {
	s := theme.Current().S()
	slugStyle := lipgloss.NewStyle().Width(20)

	for i, c := range apps.Categories() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, s.ModalTitle.Render(c.Title()))
		for _, app := range apps.ByCategory(c) {
			fmt.Fprintf(w, "  %s %s\n", slugStyle.Render(app.Slug), s.Muted.Render(app.Description))
		}
	}
}
