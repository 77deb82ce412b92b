package events

import (
	"context"
	"time"

	"entityapi/internal/model"
)

// Type names an entity lifecycle change.
type Type string

const (
	EntityCreated Type = "entity.created"
	EntityUpdated Type = "entity.updated"
	EntityDeleted Type = "entity.deleted"
)

// Event is a change notification for a single entity. Entity is nil for deletions.
type Event struct {
	Type       Type          `json:"type"`
	EntityID   int64         `json:"entity_id"`
	Entity     *model.Entity `json:"entity,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewEvent stamps an event with the current UTC time.
func NewEvent(t Type, id int64, e *model.Entity) Event {
	return Event{Type: t, EntityID: id, Entity: e, OccurredAt: time.Now().UTC()}
}

// Publisher delivers change events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error { return nil }
