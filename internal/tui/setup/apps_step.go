package setup

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/onboardr/internal/apps"
	"github.com/mark3labs/onboardr/internal/gate"
	"github.com/mark3labs/onboardr/internal/tui/theme"
	"github.com/mark3labs/onboardr/internal/tui/wizard"
	flow "github.com/mark3labs/onboardr/internal/wizard"
)

// categoryTabWidth is the width of the vertical category tabs.
const categoryTabWidth = 18

// AppsLoadedMsg carries the currently enabled apps.
type AppsLoadedMsg struct {
	Enabled []string
	Err     error
}

// AppsSavedMsg reports the outcome of saving the enabled apps.
type AppsSavedMsg struct {
	Err error
}

// appListProps is everything the gated list needs to render.
type appListProps struct {
	Categories []apps.Category
	Category   int
	Apps       []apps.App
	Cursor     int
	Enabled    map[string]bool
	Width      int
}

// AppsStep lets the administrator pick which integrations to enable.
type AppsStep struct {
	ctx   context.Context
	store Store
	ctl   flow.Controls
	gate  *gate.Gate
	list  gate.Component[appListProps]

	categories []apps.Category
	category   int
	cursor     int
	enabled    map[string]bool

	loaded  bool
	loadErr error
	saving  bool
	alert   string

	width  int
	height int
}

// NewAppsStep creates the app picker. The list is rendered through g.
func NewAppsStep(ctx context.Context, s Store, ctl flow.Controls, g *gate.Gate) *AppsStep {
	return &AppsStep{
		ctx:        ctx,
		store:      s,
		ctl:        ctl,
		gate:       g,
		list:       gate.Wrap(g, renderAppList),
		categories: apps.Categories(),
		enabled:    make(map[string]bool),
		width:      60,
		height:     10,
	}
}

// Init loads the enabled apps. Nothing is read when the gate denies the
// picker.
func (a *AppsStep) Init() tea.Cmd {
	if !a.gate.Allowed() {
		a.loaded = true
		return nil
	}
	return a.load()
}

func (a *AppsStep) load() tea.Cmd {
	a.loaded = false
	a.loadErr = nil
	a.alert = ""
	ctx, s := a.ctx, a.store
	return func() tea.Msg {
		enabled, err := s.EnabledApps(ctx)
		return AppsLoadedMsg{Enabled: enabled, Err: err}
	}
}

// SetSize updates the dimensions for the picker.
func (a *AppsStep) SetSize(width, height int) {
	a.width = width
	a.height = height
}

// Enabled returns the selected app slugs in lexical order.
func (a *AppsStep) Enabled() []string {
	return apps.SortedSlugs(a.enabled)
}

func (a *AppsStep) currentApps() []apps.App {
	return apps.ByCategory(a.categories[a.category])
}

// Update handles messages for the picker.
func (a *AppsStep) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case AppsLoadedMsg:
		a.loaded = true
		if msg.Err != nil {
			log.Warn("Loading enabled apps failed: %v", msg.Err)
			a.loadErr = msg.Err
			a.alert = "Could not load enabled apps: " + msg.Err.Error()
			return nil
		}
		a.enabled = make(map[string]bool, len(msg.Enabled))
		for _, s := range msg.Enabled {
			a.enabled[s] = true
		}
		return nil

	case AppsSavedMsg:
		a.saving = false
		a.ctl.SetPending(false)
		if msg.Err != nil {
			log.Error("Saving enabled apps failed: %v", msg.Err)
			a.alert = "Could not save apps: " + msg.Err.Error()
			return nil
		}
		a.ctl.Nav.Next()
		return nil

	case tea.KeyPressMsg:
		if a.saving {
			return nil
		}
		key := msg.String()
		if key == "esc" {
			a.ctl.Nav.Prev()
			return nil
		}
		// The selection is only written back once it has been read.
		if !a.ready() {
			if key == "r" && a.loadErr != nil {
				return a.load()
			}
			return nil
		}
		switch key {
		case "enter":
			return a.finish()
		case "left", "h", "shift+tab":
			a.moveCategory(-1)
		case "right", "l", "tab":
			a.moveCategory(1)
		case "up", "k":
			if a.cursor > 0 {
				a.cursor--
			}
		case "down", "j":
			if a.cursor < len(a.currentApps())-1 {
				a.cursor++
			}
		case " ", "space":
			list := a.currentApps()
			if len(list) > 0 {
				slug := list[a.cursor].Slug
				if a.enabled[slug] {
					delete(a.enabled, slug)
				} else {
					a.enabled[slug] = true
				}
			}
		}
	}
	return nil
}

// ready reports whether the enabled set has been read successfully.
func (a *AppsStep) ready() bool {
	return a.loaded && a.loadErr == nil
}

func (a *AppsStep) moveCategory(delta int) {
	n := len(a.categories)
	a.category = (a.category + delta + n) % n
	a.cursor = 0
}

// finish saves the selection, or moves on directly when the list is gated off.
func (a *AppsStep) finish() tea.Cmd {
	if !a.gate.Allowed() {
		a.ctl.Nav.Next()
		return nil
	}

	a.saving = true
	a.alert = ""
	a.ctl.SetPending(true)

	ctx, s, enabled := a.ctx, a.store, a.Enabled()
	return func() tea.Msg {
		return AppsSavedMsg{Err: s.SetApps(ctx, enabled)}
	}
}

// View renders the picker.
func (a *AppsStep) View() string {
	s := theme.Current().S()

	var sections []string
	if !a.loaded {
		sections = append(sections, s.Muted.Render("Loading apps..."))
	} else {
		sections = append(sections, a.list(appListProps{
			Categories: a.categories,
			Category:   a.category,
			Apps:       a.currentApps(),
			Cursor:     a.cursor,
			Enabled:    a.enabled,
			Width:      a.width,
		}))
	}

	if a.alert != "" {
		sections = append(sections, "", a.gate.Render(gate.Props{
			As:    statusLine,
			Class: "alert",
			Role:  "alert",
		}, a.alert))
	}

	sections = append(sections, "")
	switch {
	case a.saving:
		sections = append(sections, s.Muted.Render("Saving..."))
	case a.loadErr != nil:
		sections = append(sections, wizard.RenderHintBar("r", "retry", "esc", "back"))
	case !a.loaded:
		sections = append(sections, wizard.RenderHintBar("esc", "back"))
	default:
		sections = append(sections, wizard.RenderHintBar(
			"←/→", "category", "space", "toggle", "enter", "finish", "esc", "back",
		))
	}
	return strings.Join(sections, "\n")
}

// statusLine renders a row under the picker. Class "alert" uses the alert
// style and Role "alert" adds the failure mark.
func statusLine(attrs gate.Attrs, content string) string {
	s := theme.Current().S()
	if attrs.Role == "alert" {
		content = "✗ " + content
	}
	if attrs.Class == "alert" {
		return s.Alert.Render(content)
	}
	return s.Muted.Render(content)
}

// renderAppList draws category tabs beside the apps of the selected category.
func renderAppList(p appListProps) string {
	s := theme.Current().S()

	var tabs []string
	for i, c := range p.Categories {
		count := 0
		for _, app := range apps.ByCategory(c) {
			if p.Enabled[app.Slug] {
				count++
			}
		}
		label := c.Title()
		if count > 0 {
			label = fmt.Sprintf("%s (%d)", label, count)
		}
		if i == p.Category {
			tabs = append(tabs, s.Selected.Render("▌"+label))
		} else {
			tabs = append(tabs, " "+label)
		}
	}
	tabCol := lipgloss.NewStyle().Width(categoryTabWidth).Render(strings.Join(tabs, "\n"))

	var rows []string
	for i, app := range p.Apps {
		box := "[ ]"
		if p.Enabled[app.Slug] {
			box = s.Success.Render("[x]")
		}
		name := app.Name
		if i == p.Cursor {
			name = s.Selected.Render("› " + name)
		} else {
			name = "  " + name
		}
		rows = append(rows, box+" "+name, "      "+s.Muted.Render(app.Description))
	}

	listWidth := p.Width - categoryTabWidth
	if listWidth < 20 {
		listWidth = 20
	}
	listCol := lipgloss.NewStyle().Width(listWidth).Render(strings.Join(rows, "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, tabCol, listCol)
}
