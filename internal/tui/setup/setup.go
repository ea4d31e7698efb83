// Package setup builds the first-run wizard: an administrator account step
// followed, when configured, by an enable-apps step.
package setup

import (
	"context"
	"fmt"

	"github.com/mark3labs/onboardr/internal/gate"
	"github.com/mark3labs/onboardr/internal/logger"
	"github.com/mark3labs/onboardr/internal/store"
	"github.com/mark3labs/onboardr/internal/tui/wizard"
	flow "github.com/mark3labs/onboardr/internal/wizard"
)

var log = logger.Named("setup")

// Step keys
const (
	StepAdmin = "admin"
	StepApps  = "apps"
)

// FeatureApps is the gate feature guarding the app list.
const FeatureApps = "apps"

// Store is what the setup steps need from the installation store.
type Store interface {
	CreateAdmin(ctx context.Context, in store.AdminInput) (*store.Account, error)
	AdminCount(ctx context.Context) (int, error)
	SetApps(ctx context.Context, enabled []string) error
	EnabledApps(ctx context.Context) ([]string, error)
}

// Options are the resolved settings the step list is built from.
type Options struct {
	AppName           string
	AppsStep          bool // Include the enable-apps step
	MinPasswordLength int
	Decider           gate.Decider // Nil allows every feature
}

// progress is shared by the steps of one wizard run.
type progress struct {
	adminCount int
}

// BuildSteps returns the frozen step list for opts. adminCount is the number
// of administrators that already exist.
func BuildSteps(ctx context.Context, opts Options, s Store, adminCount int) []wizard.Step {
	p := &progress{adminCount: adminCount}

	var seq flow.Sequence[wizard.Content]
	seq.Add(wizard.Step{
		Key:           StepAdmin,
		Title:         "Administrator user",
		Description:   "Let's create the first administrator user.",
		CustomActions: true,
		Content: func(c flow.Controls) wizard.Content {
			return NewAdminStep(ctx, s, c, AdminStepOptions{
				ExistingAdmins:    p.adminCount,
				MinPasswordLength: opts.MinPasswordLength,
				OnCreated:         func() { p.adminCount++ },
			})
		},
	})
	seq.AddIf(opts.AppsStep, wizard.Step{
		Key:   StepApps,
		Title: "Enable apps",
		Description: fmt.Sprintf(
			"Enable apps that you would like to use with your **%s** instance. You can change them later.",
			opts.AppName,
		),
		CustomActions: true,
		ContentClass:  wizard.ContentClassFlush,
		Content: func(c flow.Controls) wizard.Content {
			return NewAppsStep(ctx, s, c, gate.New(opts.Decider, FeatureApps,
				gate.WithFallback("Apps are not available for this installation."),
			))
		},
	})
	return seq.Steps()
}

// StartIndex skips the administrator step when an administrator exists.
func StartIndex(steps []wizard.Step, adminCount int) int {
	return flow.StartAfter(steps, StepAdmin, adminCount > 0)
}

// NewWizard counts existing administrators, builds the steps and returns the
// wizard positioned on the right step. onFinish runs when the last step
// completes.
func NewWizard(ctx context.Context, opts Options, s Store, onFinish func() error) (*wizard.WizardModel, error) {
	count, err := s.AdminCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting administrators: %w", err)
	}

	steps := BuildSteps(ctx, opts, s, count)
	start := StartIndex(steps, count)
	log.Debug("Setup wizard: %d steps, %d admins, starting at %d", len(steps), count, start)

	return wizard.New(opts.AppName+" setup", steps,
		wizard.WithStart(start),
		wizard.WithOnFinish(onFinish),
	)
}

// Run shows the setup wizard until it finishes or the user quits.
func Run(ctx context.Context, opts Options, s Store, onFinish func() error) (wizard.Result, error) {
	m, err := NewWizard(ctx, opts, s, onFinish)
	if err != nil {
		return wizard.Result{}, err
	}
	return wizard.Run(m)
}
