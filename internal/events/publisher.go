package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Domain event types
const (
	EventQuestionApproved   = "question.approved"
	EventInterviewCompleted = "interview.completed"
	EventInterviewAbandoned = "interview.abandoned"
)

// Event is the envelope published to the broker for every domain event.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// NewEvent builds an event envelope with a fresh ID and timestamp.
func NewEvent(eventType string, data any) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    "interview-platform",
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopEventPublisher discards events. Used when no broker is configured.
type NoopEventPublisher struct{}

func NewNoopEventPublisher() *NoopEventPublisher { return &NoopEventPublisher{} }

func (p *NoopEventPublisher) Publish(ctx context.Context, event Event) error { return nil }
func (p *NoopEventPublisher) Close() error                                   { return nil }
