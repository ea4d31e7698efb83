package wizard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// textStep returns a step whose content is its own title.
func textStep(key, title string) Step[string] {
	return Step[string]{
		Key:   key,
		Title: title,
		Content: func(Controls) string {
			return title
		},
	}
}

func TestNew_EmptySequence(t *testing.T) {
	t.Parallel()

	c, err := New[string](nil)
	require.ErrorIs(t, err, ErrNoSteps)
	require.Nil(t, c)
}

func TestNew_ClampsStart(t *testing.T) {
	t.Parallel()

	steps := []Step[string]{textStep("a", "A"), textStep("b", "B")}

	c, err := New(steps, WithStart(7))
	require.NoError(t, err)
	require.Equal(t, 1, c.Index())

	c, err = New(steps, WithStart(-3))
	require.NoError(t, err)
	require.Equal(t, 0, c.Index())
}

func TestNew_CopiesSteps(t *testing.T) {
	t.Parallel()

	steps := []Step[string]{textStep("a", "A"), textStep("b", "B")}
	c, err := New(steps)
	require.NoError(t, err)

	steps[0] = textStep("z", "Z")
	require.Equal(t, "a", c.Step().Key)
}

func TestNext_AdvancesAndFinishesOnLastStep(t *testing.T) {
	t.Parallel()

	finished := 0
	c, err := New(
		[]Step[string]{textStep("a", "A"), textStep("b", "B"), textStep("c", "C")},
		WithOnFinish(func() { finished++ }),
	)
	require.NoError(t, err)

	c.Next()
	require.Equal(t, 1, c.Index())
	c.Next()
	require.Equal(t, 2, c.Index())
	require.Equal(t, 0, finished)

	// Advancing from the last step completes once per call and never moves.
	c.Next()
	require.Equal(t, 2, c.Index())
	require.Equal(t, 1, finished)
	c.Next()
	require.Equal(t, 2, c.Index())
	require.Equal(t, 2, finished)
}

func TestNext_LastStepWithoutFinishAction(t *testing.T) {
	t.Parallel()

	c, err := New([]Step[string]{textStep("a", "A")})
	require.NoError(t, err)

	require.NotPanics(t, c.Next)
	require.Equal(t, 0, c.Index())
}

func TestPrev_ClampedAtFirst(t *testing.T) {
	t.Parallel()

	c, err := New([]Step[string]{textStep("a", "A"), textStep("b", "B")}, WithStart(1))
	require.NoError(t, err)

	c.Prev()
	require.Equal(t, 0, c.Index())
	c.Prev()
	require.Equal(t, 0, c.Index())
}

func TestPending_DoesNotMoveIndex(t *testing.T) {
	t.Parallel()

	c, err := New([]Step[string]{textStep("a", "A"), textStep("b", "B")})
	require.NoError(t, err)

	controls := c.Controls()
	controls.SetPending(true)
	require.True(t, c.Pending())
	controls.SetPending(false)
	require.False(t, c.Pending())
	require.Equal(t, 0, c.Index())
}

func TestNext_PermittedWhilePending(t *testing.T) {
	t.Parallel()

	c, err := New([]Step[string]{textStep("a", "A"), textStep("b", "B")})
	require.NoError(t, err)

	c.SetPending(true)
	c.Controls().Nav.Next()
	require.Equal(t, 1, c.Index())
}

func TestDefaultActions(t *testing.T) {
	t.Parallel()

	custom := textStep("custom", "Custom")
	custom.CustomActions = true

	c, err := New([]Step[string]{textStep("plain", "Plain"), custom})
	require.NoError(t, err)

	require.True(t, c.DefaultActions())
	c.Next()
	require.False(t, c.DefaultActions())
}

func TestContent_InvokedOncePerActivation(t *testing.T) {
	t.Parallel()

	calls := map[string]int{}
	counting := func(key string) Step[string] {
		return Step[string]{
			Key: key,
			Content: func(Controls) string {
				calls[key]++
				return key
			},
		}
	}

	c, err := New([]Step[string]{counting("a"), counting("b")})
	require.NoError(t, err)

	require.Equal(t, "a", c.Content())
	require.Equal(t, "a", c.Content())
	require.Equal(t, 1, calls["a"])

	c.Next()
	require.Equal(t, "b", c.Content())
	c.Prev()
	require.Equal(t, "a", c.Content())
	require.Equal(t, 2, calls["a"])
	require.Equal(t, 1, calls["b"])
}

func TestContent_NavigatesThroughControls(t *testing.T) {
	t.Parallel()

	var nav Nav
	steps := []Step[string]{
		{Key: "a", Content: func(ctl Controls) string { nav = ctl.Nav; return "A" }},
		textStep("b", "B"),
	}

	c, err := New(steps)
	require.NoError(t, err)
	require.Equal(t, "A", c.Content())

	nav.Next()
	require.Equal(t, 1, c.Index())
	require.Equal(t, "B", c.Content())
}

func TestOnChange(t *testing.T) {
	t.Parallel()

	var moves [][2]int
	c, err := New(
		[]Step[string]{textStep("a", "A"), textStep("b", "B")},
		WithOnChange(func(from, to int) { moves = append(moves, [2]int{from, to}) }),
	)
	require.NoError(t, err)

	c.Prev() // no-op, no notification
	c.Next()
	c.Next() // finish, no notification
	c.Prev()

	require.Equal(t, [][2]int{{0, 1}, {1, 0}}, moves)
}

func TestLabels(t *testing.T) {
	t.Parallel()

	c, err := New([]Step[string]{textStep("a", "A"), textStep("b", "B")})
	require.NoError(t, err)

	require.Equal(t, "Step 1 of 2", c.StepLabel())
	require.Equal(t, "Next step", c.NextLabel())
	require.Equal(t, "Back", c.PrevLabel())

	c.Next()
	require.Equal(t, "Step 2 of 2", c.StepLabel())
	require.Equal(t, "Finish", c.NextLabel())
}

func TestWithLabels_KeepsDefaultsForEmptyFields(t *testing.T) {
	t.Parallel()

	c, err := New(
		[]Step[string]{textStep("a", "A")},
		WithLabels(Labels{
			Finish: "Done",
			StepLabel: func(current, total int) string {
				return "page"
			},
		}),
	)
	require.NoError(t, err)

	require.Equal(t, "Done", c.NextLabel())
	require.Equal(t, "Back", c.PrevLabel())
	require.Equal(t, "page", c.StepLabel())
}

// TestScenario_StartPastCompletedStep walks the two-step flow that starts on
// the second step because its precondition already holds.
func TestScenario_StartPastCompletedStep(t *testing.T) {
	t.Parallel()

	steps := []Step[string]{textStep("admin", "Step A"), textStep("apps", "Step B")}
	start := StartAfter(steps, "admin", true)
	require.Equal(t, 1, start)

	completed := 0
	c, err := New(steps, WithStart(start), WithOnFinish(func() { completed++ }))
	require.NoError(t, err)
	require.Equal(t, "Step B", c.Content())

	c.Next()
	require.Equal(t, 1, completed)
	require.Equal(t, 1, c.Index())

	c.Prev()
	require.Equal(t, 0, c.Index())
	require.Equal(t, "Step A", c.Content())
}
