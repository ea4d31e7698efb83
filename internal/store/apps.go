package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/onboardr/internal/apps"
	"github.com/mark3labs/onboardr/internal/nats"
)

// ErrUnknownApp is returned when a slug is not in the app catalog.
var ErrUnknownApp = errors.New("unknown app")

// SetApps makes the enabled set equal to enabled, publishing one event per
// app that changes. Unknown slugs are rejected before anything is written.
func (s *Store) SetApps(ctx context.Context, enabled []string) error {
	want := make(map[string]bool, len(enabled))
	for _, slug := range enabled {
		if _, ok := apps.Lookup(slug); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownApp, slug)
		}
		want[slug] = true
	}

	state, err := s.LoadState(ctx)
	if err != nil {
		return err
	}

	for _, slug := range apps.SortedSlugs(want) {
		if state.Apps[slug] {
			continue
		}
		if _, err := s.PublishEvent(ctx, Event{Type: nats.EventTypeApp, Action: "enable", Data: slug}); err != nil {
			return err
		}
	}
	for _, slug := range apps.SortedSlugs(state.Apps) {
		if want[slug] {
			continue
		}
		if _, err := s.PublishEvent(ctx, Event{Type: nats.EventTypeApp, Action: "disable", Data: slug}); err != nil {
			return err
		}
	}

	log.Info("Enabled apps updated: %d enabled", len(want))
	return nil
}

// EnabledApps returns the enabled app slugs in lexical order.
func (s *Store) EnabledApps(ctx context.Context) ([]string, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return nil, err
	}
	return apps.SortedSlugs(state.Apps), nil
}
