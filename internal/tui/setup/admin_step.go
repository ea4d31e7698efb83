package setup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/onboardr/internal/store"
	"github.com/mark3labs/onboardr/internal/tui/theme"
	"github.com/mark3labs/onboardr/internal/tui/wizard"
	flow "github.com/mark3labs/onboardr/internal/wizard"
)

// Form fields in focus order
const (
	fieldUsername = iota
	fieldFullName
	fieldEmail
	fieldPassword
	fieldCount
)

var fieldNames = [fieldCount]string{"username", "full_name", "email", "password"}

var fieldLabels = [fieldCount]string{"Username", "Full name", "Email address", "Password"}

// AdminCreatedMsg reports the outcome of an account submission.
type AdminCreatedMsg struct {
	Account *store.Account
	Err     error
}

// AdminStepOptions configures the administrator step.
type AdminStepOptions struct {
	ExistingAdmins    int
	MinPasswordLength int
	OnCreated         func()
}

// AdminStep is the form that creates the first administrator.
type AdminStep struct {
	ctx   context.Context
	store Store
	ctl   flow.Controls
	opts  AdminStepOptions

	inputs     [fieldCount]textinput.Model
	focusIndex int
	fieldErrs  store.FieldErrors
	alert      string
	submitting bool

	width  int
	height int
}

// NewAdminStep creates the administrator form.
func NewAdminStep(ctx context.Context, s Store, ctl flow.Controls, opts AdminStepOptions) *AdminStep {
	if opts.MinPasswordLength <= 0 {
		opts.MinPasswordLength = store.DefaultMinPasswordLength
	}

	t := theme.Current()
	styles := textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgSubtle)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	}

	placeholders := [fieldCount]string{
		"admin",
		"Jane Doe",
		"admin@example.com",
		fmt.Sprintf("At least %d characters", opts.MinPasswordLength),
	}

	a := &AdminStep{
		ctx:    ctx,
		store:  s,
		ctl:    ctl,
		opts:   opts,
		width:  60,
		height: 10,
	}
	for i := range a.inputs {
		in := textinput.New()
		in.Prompt = "› "
		in.Placeholder = placeholders[i]
		in.SetStyles(styles)
		in.SetWidth(50)
		a.inputs[i] = in
	}
	a.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	a.inputs[fieldPassword].EchoCharacter = '•'

	return a
}

// Init focuses the first field.
func (a *AdminStep) Init() tea.Cmd {
	if a.opts.ExistingAdmins > 0 {
		return nil
	}
	return a.focusField(fieldUsername)
}

// SetSize updates the dimensions for the form.
func (a *AdminStep) SetSize(width, height int) {
	a.width = width
	a.height = height
	for i := range a.inputs {
		a.inputs[i].SetWidth(width - 4)
	}
}

// Submitting reports whether an account submission is in flight.
func (a *AdminStep) Submitting() bool {
	return a.submitting
}

// Input returns the current form values.
func (a *AdminStep) Input() store.AdminInput {
	return store.AdminInput{
		Username:          a.inputs[fieldUsername].Value(),
		FullName:          a.inputs[fieldFullName].Value(),
		Email:             a.inputs[fieldEmail].Value(),
		Password:          a.inputs[fieldPassword].Value(),
		MinPasswordLength: a.opts.MinPasswordLength,
	}
}

// Update handles messages for the form.
func (a *AdminStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case AdminCreatedMsg:
		return a.handleCreated(msg)

	case tea.KeyPressMsg:
		if a.opts.ExistingAdmins > 0 {
			switch msg.String() {
			case "enter":
				a.ctl.Nav.Next()
			case "esc":
				return wizard.Cancel
			}
			return nil
		}

		// The form is locked until the submission returns
		if a.submitting {
			return nil
		}

		switch msg.String() {
		case "esc":
			return wizard.Cancel
		case "tab", "down":
			return a.focusField((a.focusIndex + 1) % fieldCount)
		case "shift+tab", "up":
			return a.focusField((a.focusIndex + fieldCount - 1) % fieldCount)
		case "ctrl+s":
			return a.submit()
		case "enter":
			if a.focusIndex < fieldPassword {
				return a.focusField(a.focusIndex + 1)
			}
			return a.submit()
		}
	}

	var cmd tea.Cmd
	a.inputs[a.focusIndex], cmd = a.inputs[a.focusIndex].Update(msg)
	return cmd
}

func (a *AdminStep) focusField(i int) tea.Cmd {
	a.inputs[a.focusIndex].Blur()
	a.focusIndex = i
	return a.inputs[i].Focus()
}

// submit marks the step pending and creates the account off the event loop.
func (a *AdminStep) submit() tea.Cmd {
	a.submitting = true
	a.alert = ""
	a.fieldErrs = nil
	a.ctl.SetPending(true)

	ctx, s, in := a.ctx, a.store, a.Input()
	return func() tea.Msg {
		acct, err := s.CreateAdmin(ctx, in)
		return AdminCreatedMsg{Account: acct, Err: err}
	}
}

func (a *AdminStep) handleCreated(msg AdminCreatedMsg) tea.Cmd {
	a.submitting = false
	a.ctl.SetPending(false)

	if msg.Err != nil {
		var fe store.FieldErrors
		switch {
		case errors.As(msg.Err, &fe):
			a.fieldErrs = fe
			a.alert = "Please fix the highlighted fields."
			for i, name := range fieldNames {
				if _, bad := fe[name]; bad {
					return a.focusField(i)
				}
			}
		case errors.Is(msg.Err, store.ErrUsernameTaken):
			a.fieldErrs = store.FieldErrors{"username": "is already taken"}
			a.alert = "That username is already taken."
			return a.focusField(fieldUsername)
		case errors.Is(msg.Err, store.ErrEmailTaken):
			a.fieldErrs = store.FieldErrors{"email": "is already in use"}
			a.alert = "That email address is already in use."
			return a.focusField(fieldEmail)
		default:
			log.Error("Creating administrator failed: %v", msg.Err)
			a.alert = "Could not create the account: " + msg.Err.Error()
		}
		return nil
	}

	log.Info("Administrator %s created", msg.Account.Username)
	if a.opts.OnCreated != nil {
		a.opts.OnCreated()
	}
	a.ctl.Nav.Next()
	return nil
}

// View renders the form.
func (a *AdminStep) View() string {
	s := theme.Current().S()

	if a.opts.ExistingAdmins > 0 {
		var b strings.Builder
		b.WriteString(s.Notice.Render("An administrator account already exists."))
		b.WriteString("\n\n")
		b.WriteString(s.Muted.Render("Continue to finish setting up this installation."))
		b.WriteString("\n\n")
		b.WriteString(wizard.RenderHintBar("enter", "continue", "esc", "quit"))
		return b.String()
	}

	var b strings.Builder
	for i := range a.inputs {
		label := fieldLabels[i]
		if i == a.focusIndex {
			b.WriteString(s.Selected.Render(label))
		} else {
			b.WriteString(label)
		}
		b.WriteString("\n")
		b.WriteString(a.inputs[i].View())
		b.WriteString("\n")
		if msg, bad := a.fieldErrs[fieldNames[i]]; bad {
			b.WriteString(s.Alert.Render(fmt.Sprintf("  %s %s", label, msg)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if a.alert != "" {
		b.WriteString(s.Alert.Render("✗ " + a.alert))
		b.WriteString("\n\n")
	}

	if a.submitting {
		b.WriteString(s.Muted.Render("Creating account..."))
	} else {
		b.WriteString(wizard.RenderHintBar("tab", "next field", "enter", "submit", "esc", "quit"))
	}
	return b.String()
}
