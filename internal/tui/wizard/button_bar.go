package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/onboardr/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// ButtonID identifies what a button does when activated.
type ButtonID int

const (
	ButtonBack ButtonID = iota
	ButtonNext
)

// Button represents a single button in the button bar.
type Button struct {
	ID    ButtonID
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with consistent styling and a focus
// cursor that skips disabled buttons.
type ButtonBar struct {
	buttons []Button
	focused int // -1 when no button has focus
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		focused: -1,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Focused reports whether any button has focus.
func (b *ButtonBar) Focused() bool {
	return b.focused >= 0
}

// FocusedButton returns the ID of the focused button.
func (b *ButtonBar) FocusedButton() (ButtonID, bool) {
	if b.focused < 0 {
		return 0, false
	}
	return b.buttons[b.focused].ID, true
}

// FocusFirst focuses the first enabled button. Returns false if none is enabled.
func (b *ButtonBar) FocusFirst() bool {
	return b.focusFrom(0, 1)
}

// FocusLast focuses the last enabled button. Returns false if none is enabled.
func (b *ButtonBar) FocusLast() bool {
	return b.focusFrom(len(b.buttons)-1, -1)
}

// FocusNext moves focus right. Returns false when it runs off the end.
func (b *ButtonBar) FocusNext() bool {
	if b.focused < 0 {
		return b.FocusFirst()
	}
	return b.focusFrom(b.focused+1, 1)
}

// FocusPrev moves focus left. Returns false when it runs off the start.
func (b *ButtonBar) FocusPrev() bool {
	if b.focused < 0 {
		return b.FocusLast()
	}
	return b.focusFrom(b.focused-1, -1)
}

// Blur removes focus from all buttons.
func (b *ButtonBar) Blur() {
	b.focused = -1
}

func (b *ButtonBar) focusFrom(start, dir int) bool {
	for i := start; i >= 0 && i < len(b.buttons); i += dir {
		if b.buttons[i].State != ButtonDisabled {
			b.focused = i
			return true
		}
	}
	return false
}

// Render renders the button bar with proper spacing and styling.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	s := theme.Current().S()

	var renderedButtons []string
	for i, btn := range b.buttons {
		var rendered string
		switch {
		case btn.State == ButtonDisabled:
			rendered = s.ButtonDisabled.Render(btn.Label)
		case i == b.focused:
			rendered = s.ButtonFocused.Render(btn.Label)
		default:
			rendered = s.ButtonNormal.Render(btn.Label)
		}
		renderedButtons = append(renderedButtons, rendered)
	}

	result := strings.Join(renderedButtons, "")

	// Right-align like a dialog footer
	return lipgloss.PlaceHorizontal(b.width, lipgloss.Right, result)
}

// CreateBackNextButtons creates the standard Back/Next button set.
// backEnabled: whether Back button is enabled
// nextEnabled: whether Next button is enabled (false while a step is busy)
func CreateBackNextButtons(backLabel, nextLabel string, backEnabled, nextEnabled bool) []Button {
	state := func(enabled bool) ButtonState {
		if enabled {
			return ButtonNormal
		}
		return ButtonDisabled
	}

	return []Button{
		{ID: ButtonBack, Label: "← " + backLabel, State: state(backEnabled)},
		{ID: ButtonNext, Label: nextLabel + " →", State: state(nextEnabled)},
	}
}
