package wizard

import (
	"strings"

	"charm.land/glamour/v2"
	"github.com/mark3labs/onboardr/internal/tui/theme"
)

// Modal width bounds
const (
	minModalWidth = 60
	maxModalWidth = 100
)

// RenderHintBar renders a hint bar with the given key-description pairs.
// Example: RenderHintBar("tab", "buttons", "esc", "back")
// Returns: "tab buttons • esc back"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()

	var result strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			result.WriteString(" " + s.HintSeparator.Render("•") + " ")
		}
		result.WriteString(s.HintKey.Render(pairs[i]) + " " + s.HintDesc.Render(pairs[i+1]))
	}
	return result.String()
}

// renderMarkdown renders a step description with glamour.
// Falls back to the raw text if rendering fails.
func renderMarkdown(content string, width int) string {
	if content == "" {
		return ""
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	// Glamour pads with blank lines; the modal handles spacing
	return strings.Trim(rendered, "\n")
}
