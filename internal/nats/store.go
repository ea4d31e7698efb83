package nats

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	streamName = "onboardr_events"

	// Event types
	EventTypeAccount = "account"
	EventTypeApp     = "app"
	EventTypeSetup   = "setup"
)

// SubjectAll matches every installation event.
const SubjectAll = "onboardr.>"

// SubjectForEvent returns the subject for an event type.
// Example: "onboardr.account"
func SubjectForEvent(eventType string) string {
	return fmt.Sprintf("onboardr.%s", eventType)
}

// SetupStream creates or updates the JetStream stream for installation events.
// Installation state must outlive any retention window, so nothing expires.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{SubjectAll},
		Storage:  jetstream.FileStorage,
	})
}
