package services

import (
	"context"
	"encoding/json"
	"time"

	"herbalgarden/internal/logger"
	"herbalgarden/internal/models"
)

// Routing keys for note lifecycle events.
const (
	EventNoteCreated = "note.created"
	EventNoteUpdated = "note.updated"
	EventNoteDeleted = "note.deleted"
	EventNoteShared  = "note.shared"
)

// EventPublisher delivers a serialized event under a routing key.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// NoteEvent is the payload published for every note write.
type NoteEvent struct {
	NoteID     string              `json:"noteId"`
	UserID     string              `json:"userId,omitempty"`
	PlantName  string              `json:"plantName,omitempty"`
	Category   models.NoteCategory `json:"category,omitempty"`
	SharedWith []string            `json:"sharedWith,omitempty"`
	OccurredAt time.Time           `json:"occurredAt"`
}

// publishNoteEvent is best effort: the write already succeeded, so a broker
// failure is logged and swallowed.
func publishNoteEvent(ctx context.Context, pub EventPublisher, log *logger.Logger, routingKey string, ev NoteEvent) {
	if pub == nil {
		return
	}
	body, err := json.Marshal(ev)
	if err != nil {
		log.Warn("failed to marshal note event", "routing_key", routingKey, "note_id", ev.NoteID, "error", err)
		return
	}
	if err := pub.Publish(ctx, routingKey, body); err != nil {
		log.Warn("failed to publish note event", "routing_key", routingKey, "note_id", ev.NoteID, "error", err)
	}
}
