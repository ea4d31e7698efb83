package wizard

// Sequence builds a step list from resolved configuration.
// Steps are either added or left out entirely; order is insertion order.
type Sequence[V any] struct {
	steps []Step[V]
}

// Add appends a step.
func (s *Sequence[V]) Add(step Step[V]) *Sequence[V] {
	s.steps = append(s.steps, step)
	return s
}

// AddIf appends a step only when include is true.
func (s *Sequence[V]) AddIf(include bool, step Step[V]) *Sequence[V] {
	if include {
		s.steps = append(s.steps, step)
	}
	return s
}

// Steps returns the built sequence as a new slice.
func (s *Sequence[V]) Steps() []Step[V] {
	out := make([]Step[V], len(s.steps))
	copy(out, s.steps)
	return out
}

// IndexOf returns the index of the step with key, or -1.
func IndexOf[V any](steps []Step[V], key string) int {
	for i, step := range steps {
		if step.Key == key {
			return i
		}
	}
	return -1
}

// StartAfter picks the starting index for a flow.
// When done is true the flow starts on the step following key (clamped to
// the last step); otherwise, or when key is absent, it starts at 0.
// The result depends only on its inputs.
func StartAfter[V any](steps []Step[V], key string, done bool) int {
	if !done || len(steps) == 0 {
		return 0
	}
	idx := IndexOf(steps, key)
	if idx < 0 {
		return 0
	}
	return clamp(idx+1, len(steps))
}
