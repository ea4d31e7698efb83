// Package wizard hosts a step sequence in a Bubble Tea program: it draws the
// frame (step label, title, description, default buttons) and lets each
// step's content drive navigation through its controls.
package wizard

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/onboardr/internal/logger"
	"github.com/mark3labs/onboardr/internal/tui/theme"
	flow "github.com/mark3labs/onboardr/internal/wizard"
)

var log = logger.Named("wizard")

// ContentClassFlush renders step content without the frame's inner padding.
const ContentClassFlush = "flush"

// Content is the body of one step. It is created when the step becomes
// active and discarded when it is left.
type Content interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
}

// Focusable content can hand keyboard focus to the button bar and take it back.
type Focusable interface {
	Focus() tea.Cmd
	Blur()
}

// Step is a wizard step rendering terminal content.
type Step = flow.Step[Content]

// CancelMsg asks the wizard to exit without finishing.
type CancelMsg struct{}

// Cancel returns a command that cancels the wizard. Steps with custom
// actions use it for their own cancel key.
func Cancel() tea.Msg { return CancelMsg{} }

// Result reports how the wizard ended.
type Result struct {
	Completed bool   // Next was taken on the last step
	Cancelled bool   // User quit before finishing
	LastStep  string // Key of the step that was active at exit
}

// Option configures a WizardModel.
type Option func(*WizardModel)

// WithStart sets the initially active step index.
func WithStart(index int) Option {
	return func(m *WizardModel) { m.start = index }
}

// WithLabels overrides the button and step labels.
func WithLabels(l flow.Labels) Option {
	return func(m *WizardModel) { m.labels = &l }
}

// WithOnFinish sets the action run when the last step advances. A returned
// error is shown in the frame and the wizard stays open.
func WithOnFinish(fn func() error) Option {
	return func(m *WizardModel) { m.onFinish = fn }
}

// WizardModel is the BubbleTea model hosting a step sequence.
type WizardModel struct {
	title string
	ctrl  *flow.Controller[Content]

	// Construction options
	start    int
	labels   *flow.Labels
	onFinish func() error

	active    Content // Content of the active step
	changed   bool    // Active step changed since last sync
	completed bool
	cancelled bool
	err       error // Finish error shown under the content

	buttonBar     *ButtonBar
	buttonFocused bool // True if buttons have focus (vs step content)

	spinner  spinner.Model
	spinning bool

	width  int
	height int

	descCache map[int]string // Rendered descriptions by step index
	descWidth int
}

// New creates a wizard over steps.
func New(title string, steps []Step, opts ...Option) (*WizardModel, error) {
	m := &WizardModel{
		title:     title,
		width:     minModalWidth + 10,
		height:    30,
		descCache: make(map[int]string),
	}
	for _, opt := range opts {
		opt(m)
	}

	flowOpts := []flow.Option{
		flow.WithStart(m.start),
		flow.WithOnFinish(m.finish),
		flow.WithOnChange(func(from, to int) {
			log.Debug("Step %d -> %d", from, to)
			m.changed = true
		}),
	}
	if m.labels != nil {
		flowOpts = append(flowOpts, flow.WithLabels(*m.labels))
	}

	ctrl, err := flow.New(steps, flowOpts...)
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Current().S().Selected
	m.spinner = s

	return m, nil
}

// Run creates a standalone BubbleTea program for the wizard, runs it, and
// reports how it ended.
func Run(m *WizardModel) (Result, error) {
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		return Result{}, fmt.Errorf("wizard failed: %w", err)
	}

	wizModel, ok := finalModel.(*WizardModel)
	if !ok {
		return Result{}, fmt.Errorf("unexpected model type")
	}
	return wizModel.Result(), nil
}

// Result reports the wizard outcome so far.
func (m *WizardModel) Result() Result {
	return Result{
		Completed: m.completed,
		Cancelled: m.cancelled,
		LastStep:  m.ctrl.Step().Key,
	}
}

// Controller exposes the underlying step controller.
func (m *WizardModel) Controller() *flow.Controller[Content] {
	return m.ctrl
}

// finish runs when the last step advances.
func (m *WizardModel) finish() {
	if m.onFinish != nil {
		if err := m.onFinish(); err != nil {
			log.Error("Finish failed: %v", err)
			m.err = err
			return
		}
	}
	m.err = nil
	m.completed = true
}

// Init activates the starting step.
func (m *WizardModel) Init() tea.Cmd {
	m.changed = true
	return m.sync()
}

// Update handles messages for the wizard.
func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if m.completed || m.cancelled {
		return m, tea.Quit
	}
	return m, tea.Batch(cmd, m.sync())
}

func (m *WizardModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateContentSize()
		return nil

	case CancelMsg:
		m.cancelled = true
		return nil

	case spinner.TickMsg:
		if !m.ctrl.Pending() {
			m.spinning = false
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.cancelled = true
			return nil
		}
		if m.ctrl.DefaultActions() {
			if cmd, handled := m.handleDefaultKey(msg); handled {
				return cmd
			}
		}
	}

	if m.active == nil {
		return nil
	}
	return m.active.Update(msg)
}

// handleDefaultKey implements the frame's keys for steps without custom
// actions. It reports false when the key belongs to the content.
func (m *WizardModel) handleDefaultKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	if m.buttonFocused {
		switch msg.String() {
		case "tab", "right":
			if !m.buttonBar.FocusNext() {
				return m.focusContent(), true
			}
			return nil, true
		case "shift+tab", "left":
			if !m.buttonBar.FocusPrev() {
				return m.focusContent(), true
			}
			return nil, true
		case "enter", " ", "space":
			if id, ok := m.buttonBar.FocusedButton(); ok {
				m.activate(id)
			}
			return nil, true
		case "esc":
			return m.focusContent(), true
		}
		return nil, true
	}

	switch msg.String() {
	case "tab":
		m.focusButtons()
		return nil, true
	case "esc":
		if m.ctrl.IsFirst() {
			m.cancelled = true
		} else {
			m.ctrl.Prev()
		}
		return nil, true
	}
	return nil, false
}

// activate runs a default button.
func (m *WizardModel) activate(id ButtonID) {
	switch id {
	case ButtonBack:
		m.ctrl.Prev()
	case ButtonNext:
		if m.ctrl.Pending() {
			return
		}
		m.ctrl.Next()
	}
}

func (m *WizardModel) focusButtons() {
	if m.buttonBar == nil || !m.buttonBar.FocusFirst() {
		return
	}
	m.buttonFocused = true
	if f, ok := m.active.(Focusable); ok {
		f.Blur()
	}
}

func (m *WizardModel) focusContent() tea.Cmd {
	m.buttonFocused = false
	if m.buttonBar != nil {
		m.buttonBar.Blur()
	}
	if f, ok := m.active.(Focusable); ok {
		return f.Focus()
	}
	return nil
}

// sync builds content for a newly active step, refreshes the button bar
// and starts the spinner when the step goes pending.
func (m *WizardModel) sync() tea.Cmd {
	var cmds []tea.Cmd

	if m.changed {
		m.changed = false
		m.buttonFocused = false
		m.err = nil
		m.active = m.ctrl.Content()
		if m.active != nil {
			m.updateContentSize()
			cmds = append(cmds, m.active.Init())
		}
	}

	m.refreshButtons()

	if m.ctrl.Pending() && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}

	return tea.Batch(cmds...)
}

// refreshButtons rebuilds the default buttons, keeping focus where it was.
func (m *WizardModel) refreshButtons() {
	if !m.ctrl.DefaultActions() {
		m.buttonBar = nil
		m.buttonFocused = false
		return
	}

	var focused ButtonID
	hadFocus := false
	if m.buttonBar != nil && m.buttonFocused {
		focused, hadFocus = m.buttonBar.FocusedButton()
	}

	pending := m.ctrl.Pending()
	m.buttonBar = NewButtonBar(CreateBackNextButtons(
		m.ctrl.PrevLabel(),
		m.ctrl.NextLabel(),
		!m.ctrl.IsFirst() && !pending,
		!pending,
	))
	m.buttonBar.SetWidth(m.contentWidth())

	if !hadFocus {
		return
	}
	for i, b := range m.buttonBar.buttons {
		if b.ID == focused && b.State != ButtonDisabled {
			m.buttonBar.focused = i
			return
		}
	}
	if !m.buttonBar.FocusFirst() {
		m.buttonFocused = false
	}
}

// modalWidth returns the modal width for the current terminal size.
func (m *WizardModel) modalWidth() int {
	w := m.width - 10
	if w < minModalWidth {
		w = minModalWidth
	}
	if w > maxModalWidth {
		w = maxModalWidth
	}
	return w
}

// contentWidth is the modal width minus border and padding.
func (m *WizardModel) contentWidth() int {
	return m.modalWidth() - 6
}

func (m *WizardModel) updateContentSize() {
	if m.buttonBar != nil {
		m.buttonBar.SetWidth(m.contentWidth())
	}
	if m.active == nil {
		return
	}

	// Reserve space for title, description, buttons and hints
	contentHeight := m.height - 16
	if contentHeight < 6 {
		contentHeight = 6
	}
	width := m.contentWidth()
	if m.ctrl.Step().ContentClass != ContentClassFlush {
		width -= 2
	}
	m.active.SetSize(width, contentHeight)
}

// description returns the rendered description of the active step.
func (m *WizardModel) description() string {
	width := m.contentWidth()
	if width != m.descWidth {
		m.descCache = make(map[int]string)
		m.descWidth = width
	}

	idx := m.ctrl.Index()
	if d, ok := m.descCache[idx]; ok {
		return d
	}
	d := renderMarkdown(m.ctrl.Step().Description, width)
	m.descCache[idx] = d
	return d
}

// View renders the wizard UI.
func (m *WizardModel) View() tea.View {
	var view tea.View
	view.AltScreen = true

	content := m.renderModal()

	canvas := uv.NewScreenBuffer(m.width, m.height)
	uv.NewStyledString(content).Draw(canvas, uv.Rectangle{
		Min: uv.Position{X: 0, Y: 0},
		Max: uv.Position{X: m.width, Y: m.height},
	})

	view.Content = lipgloss.NewLayer(canvas.Render())
	return view
}

// renderModal draws the frame around the active step.
func (m *WizardModel) renderModal() string {
	s := theme.Current().S()
	step := m.ctrl.Step()

	var sections []string

	label := m.ctrl.StepLabel()
	if m.ctrl.Pending() {
		label = m.spinner.View() + " " + label
	}
	header := s.ModalTitle.Render(m.title)
	if m.title != "" {
		header += "  "
	}
	header += s.StepLabel.Render(label)
	sections = append(sections, header, "")

	sections = append(sections, s.ModalTitle.Render(step.Title))
	if desc := m.description(); desc != "" {
		sections = append(sections, desc)
	}
	sections = append(sections, "")

	if m.active != nil {
		body := m.active.View()
		if step.ContentClass != ContentClassFlush {
			body = s.Content.Render(body)
		}
		sections = append(sections, body)
	}

	if m.err != nil {
		sections = append(sections, "", s.Alert.Render("✗ "+m.err.Error()))
	}

	if m.buttonBar != nil {
		sections = append(sections, "", m.buttonBar.Render())
	}

	sections = append(sections, "", m.hints())

	modal := s.ModalContainer.Width(m.modalWidth()).Render(strings.Join(sections, "\n"))

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// hints returns the hint bar for the current focus.
func (m *WizardModel) hints() string {
	switch {
	case !m.ctrl.DefaultActions():
		return RenderHintBar("ctrl+c", "quit")
	case m.buttonFocused:
		return RenderHintBar("←/→", "move", "enter", "select", "esc", "back to form")
	case m.ctrl.IsFirst():
		return RenderHintBar("tab", "buttons", "esc", "cancel")
	default:
		return RenderHintBar("tab", "buttons", "esc", "back")
	}
}
