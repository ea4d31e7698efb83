package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	// Wizard frame
	ModalContainer lipgloss.Style
	ModalTitle     lipgloss.Style
	StepLabel      lipgloss.Style
	Content        lipgloss.Style

	// Buttons
	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	// Hint bar
	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	// Text
	Alert    lipgloss.Style
	Notice   lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
}
