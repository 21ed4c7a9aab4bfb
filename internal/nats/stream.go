package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	// StreamName is the JetStream stream holding every campus event.
	StreamName = "campus_events"

	// EventTypeSchool is the event type of school lifecycle events.
	EventTypeSchool = "school"

	// duplicateWindow bounds Nats-Msg-Id deduplication of retried publishes.
	duplicateWindow = 2 * time.Minute
)

// SubjectForType returns the wildcard subject for all events of a type.
// Example: "campus.school.>"
func SubjectForType(eventType string) string {
	return fmt.Sprintf("campus.%s.>", eventType)
}

// SubjectForEvent returns the subject of an event about one entity.
// Example: "campus.school.3f2a..."
func SubjectForEvent(eventType, id string) string {
	return fmt.Sprintf("campus.%s.%s", eventType, id)
}

// SetupStream creates or updates the campus event stream. Events are kept
// forever: the log is the source of truth for the catalog.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       StreamName,
		Subjects:   []string{"campus.>"},
		Storage:    jetstream.FileStorage,
		Duplicates: duplicateWindow,
	})
}
