// Package events provides in-process pub/sub for domain events.
// Subscribers react to watchlist and review changes, for example to
// invalidate cached recommendations.
package events

import "time"

// Event is the base interface all events implement.
type Event interface {
	EventType() string
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent creates a BaseEvent with the current timestamp.
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		Type:      eventType,
		Timestamp: time.Now(),
	}
}
