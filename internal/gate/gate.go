// Package gate renders protected content only when an injected decider
// allows the feature it guards.
package gate

import (
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/onboardr/internal/logger"
)

var log = logger.Named("gate")

// Decider decides whether a feature may be shown.
type Decider interface {
	Allow(feature string) bool
}

// DeciderFunc adapts a function to a Decider.
type DeciderFunc func(feature string) bool

// Allow implements Decider.
func (f DeciderFunc) Allow(feature string) bool { return f(feature) }

var (
	// AllowAll permits every feature.
	AllowAll Decider = DeciderFunc(func(string) bool { return true })
	// DenyAll refuses every feature.
	DenyAll Decider = DeciderFunc(func(string) bool { return false })
)

// Attrs are passed unchanged to an Element.
type Attrs struct {
	Class string
	Role  string
}

// Element wraps rendered content, e.g. in a styled block. Class and Role
// are hints; an Element may act on them or ignore them.
type Element func(attrs Attrs, content string) string

// Block returns an Element that renders content with a fixed style and
// ignores attrs.
func Block(style lipgloss.Style) Element {
	return Styled(func(Attrs) lipgloss.Style { return style })
}

// Styled returns an Element that picks its style from attrs.
func Styled(styleFor func(Attrs) lipgloss.Style) Element {
	return func(attrs Attrs, content string) string {
		return styleFor(attrs).Render(content)
	}
}

// Container is the block Wrap places around a gated component.
var Container = Block(lipgloss.NewStyle())

// Props controls how allowed content is wrapped.
type Props struct {
	As    Element // nil renders children as-is
	Class string
	Role  string
}

// Gate guards a single feature.
type Gate struct {
	decider  Decider
	feature  string
	fallback string
}

// Option configures a Gate.
type Option func(*Gate)

// WithFallback sets the output used when the feature is denied.
func WithFallback(s string) Option {
	return func(g *Gate) { g.fallback = s }
}

// New creates a gate for feature. A nil decider allows everything.
func New(decider Decider, feature string, opts ...Option) *Gate {
	if decider == nil {
		decider = AllowAll
	}
	g := &Gate{decider: decider, feature: feature}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Feature returns the guarded feature name.
func (g *Gate) Feature() string { return g.feature }

// Allowed asks the decider about the guarded feature.
func (g *Gate) Allowed() bool {
	if g.decider.Allow(g.feature) {
		return true
	}
	log.Debug("Feature %q denied, rendering fallback", g.feature)
	return false
}

// Render returns children, wrapped in props.As when set, if the feature is
// allowed and the fallback otherwise.
func (g *Gate) Render(props Props, children string) string {
	if !g.Allowed() {
		return g.fallback
	}
	if props.As == nil {
		return children
	}
	return props.As(Attrs{Class: props.Class, Role: props.Role}, children)
}

// Component renders from props.
type Component[P any] func(props P) string

// Wrap returns a component that renders c inside g, all of it inside a
// Container block. Props reach c untouched, and c is not called when the
// feature is denied; the fallback is still placed in the Container.
func Wrap[P any](g *Gate, c Component[P]) Component[P] {
	return func(props P) string {
		if !g.Allowed() {
			return Container(Attrs{}, g.fallback)
		}
		return Container(Attrs{}, c(props))
	}
}
