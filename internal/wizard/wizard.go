// Package wizard sequences the steps of a multi-step flow.
//
// A Controller owns the active step index and the pending flag. Step content
// never touches that state directly: it receives a Controls value with a
// pending setter and a navigation handle, and calls them when its own work
// finishes. The package has no rendering dependency; V is whatever the host
// renders a step into.
package wizard

import (
	"errors"
	"fmt"
)

// ErrNoSteps is returned when a controller is built from an empty sequence.
var ErrNoSteps = errors.New("wizard requires at least one step")

// Nav is the navigation handle handed to step content.
type Nav interface {
	// Next moves to the following step, or completes the flow on the last step.
	Next()
	// Prev moves to the previous step. No-op on the first step.
	Prev()
}

// Controls bundles the collaborators a step's content receives.
type Controls struct {
	SetPending func(pending bool)
	Nav        Nav
}

// Step describes one page of the flow.
type Step[V any] struct {
	Key           string // Stable identifier used for start selection
	Title         string
	Description   string
	CustomActions bool   // Content renders its own navigation controls
	ContentClass  string // Optional presentation hint for the content area
	Content       func(c Controls) V
}

// Labels configures the host-rendered navigation text.
type Labels struct {
	Next      string
	Prev      string
	Finish    string
	StepLabel func(current, total int) string
}

// DefaultLabels returns the labels used when none are configured.
func DefaultLabels() Labels {
	return Labels{
		Next:   "Next step",
		Prev:   "Back",
		Finish: "Finish",
		StepLabel: func(current, total int) string {
			return fmt.Sprintf("Step %d of %d", current, total)
		},
	}
}

// Option configures a Controller.
type Option func(*options)

type options struct {
	start    int
	labels   Labels
	onFinish func()
	onChange func(from, to int)
}

// WithStart sets the starting index. Out-of-range values are clamped.
func WithStart(index int) Option {
	return func(o *options) { o.start = index }
}

// WithLabels overrides the navigation labels. Empty fields keep their defaults.
func WithLabels(l Labels) Option {
	return func(o *options) {
		if l.Next != "" {
			o.labels.Next = l.Next
		}
		if l.Prev != "" {
			o.labels.Prev = l.Prev
		}
		if l.Finish != "" {
			o.labels.Finish = l.Finish
		}
		if l.StepLabel != nil {
			o.labels.StepLabel = l.StepLabel
		}
	}
}

// WithOnFinish sets the action run when Next is called on the last step.
func WithOnFinish(fn func()) Option {
	return func(o *options) { o.onFinish = fn }
}

// WithOnChange registers an observer for active index changes.
func WithOnChange(fn func(from, to int)) Option {
	return func(o *options) { o.onChange = fn }
}

// Controller tracks the active step of a frozen step sequence.
// It is not safe for concurrent use; hosts drive it from a single event loop.
type Controller[V any] struct {
	steps    []Step[V]
	current  int
	pending  bool
	labels   Labels
	onFinish func()
	onChange func(from, to int)

	// content caches the active step's rendered content for one activation
	content    V
	hasContent bool
}

// New creates a controller over steps. The slice is copied; later changes by
// the caller do not affect the controller.
func New[V any](steps []Step[V], opts ...Option) (*Controller[V], error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}

	o := options{labels: DefaultLabels()}
	for _, opt := range opts {
		opt(&o)
	}

	frozen := make([]Step[V], len(steps))
	copy(frozen, steps)

	return &Controller[V]{
		steps:    frozen,
		current:  clamp(o.start, len(frozen)),
		labels:   o.labels,
		onFinish: o.onFinish,
		onChange: o.onChange,
	}, nil
}

// Next advances by one step. On the last step it runs the finish action
// instead and leaves the index unchanged.
func (c *Controller[V]) Next() {
	if c.current == len(c.steps)-1 {
		if c.onFinish != nil {
			c.onFinish()
		}
		return
	}
	c.moveTo(c.current + 1)
}

// Prev moves back by one step, stopping at the first.
func (c *Controller[V]) Prev() {
	if c.current == 0 {
		return
	}
	c.moveTo(c.current - 1)
}

func (c *Controller[V]) moveTo(index int) {
	from := c.current
	c.current = index

	var zero V
	c.content = zero
	c.hasContent = false

	if c.onChange != nil {
		c.onChange(from, index)
	}
}

// SetPending records whether the active step has work in flight.
func (c *Controller[V]) SetPending(pending bool) {
	c.pending = pending
}

// Pending reports whether the active step has work in flight.
func (c *Controller[V]) Pending() bool {
	return c.pending
}

// Index returns the active step index.
func (c *Controller[V]) Index() int {
	return c.current
}

// Len returns the number of steps.
func (c *Controller[V]) Len() int {
	return len(c.steps)
}

// Step returns the active step descriptor.
func (c *Controller[V]) Step() Step[V] {
	return c.steps[c.current]
}

// Steps returns a copy of the step sequence.
func (c *Controller[V]) Steps() []Step[V] {
	out := make([]Step[V], len(c.steps))
	copy(out, c.steps)
	return out
}

// IsFirst reports whether the first step is active.
func (c *Controller[V]) IsFirst() bool {
	return c.current == 0
}

// IsLast reports whether the last step is active.
func (c *Controller[V]) IsLast() bool {
	return c.current == len(c.steps)-1
}

// DefaultActions reports whether the host should render its own
// previous/next controls for the active step.
func (c *Controller[V]) DefaultActions() bool {
	return !c.steps[c.current].CustomActions
}

// Controls returns the collaborators handed to step content.
func (c *Controller[V]) Controls() Controls {
	return Controls{
		SetPending: c.SetPending,
		Nav:        c,
	}
}

// Content returns the active step's content, invoking its content function
// on first use after each activation.
func (c *Controller[V]) Content() V {
	if !c.hasContent {
		step := c.steps[c.current]
		if step.Content != nil {
			c.content = step.Content(c.Controls())
		}
		c.hasContent = true
	}
	return c.content
}

// StepLabel formats the position of the active step, 1-based.
func (c *Controller[V]) StepLabel() string {
	return c.labels.StepLabel(c.current+1, len(c.steps))
}

// NextLabel returns the label for the forward control of the active step.
func (c *Controller[V]) NextLabel() string {
	if c.IsLast() {
		return c.labels.Finish
	}
	return c.labels.Next
}

// PrevLabel returns the label for the backward control.
func (c *Controller[V]) PrevLabel() string {
	return c.labels.Prev
}

func clamp(index, n int) int {
	if index < 0 {
		return 0
	}
	if index >= n {
		return n - 1
	}
	return index
}
