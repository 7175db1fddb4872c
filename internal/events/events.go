package events

import (
	"context"
	"time"

	"github.com/yoockh/mentorship/internal/models"
)

const DefaultStream = "sessions:events"

// Event types, one per lifecycle edge.
const (
	TypeConfirmed = "session.confirmed"
	TypeStarted   = "session.started"
	TypeCompleted = "session.completed"
	TypeCancelled = "session.cancelled"
	TypeNoShow    = "session.no_show"
)

type Event struct {
	Type      string
	SessionID string
	MentorID  string
	MenteeID  string
	Status    models.SessionStatus
	At        time.Time
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// TypeFor names the event emitted when a session enters status.
func TypeFor(status models.SessionStatus) string {
	switch status {
	case models.StatusConfirmed:
		return TypeConfirmed
	case models.StatusInProgress:
		return TypeStarted
	case models.StatusCompleted:
		return TypeCompleted
	case models.StatusCancelled:
		return TypeCancelled
	case models.StatusNoShow:
		return TypeNoShow
	default:
		return "session." + string(status)
	}
}
