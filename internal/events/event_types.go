package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/flo-mobility/admin-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUsersBlocked        EventType = EventType(domain.AuditUsersBlocked)
	EventUsersUnblocked      EventType = EventType(domain.AuditUsersUnblocked)
	EventUsersDeleted        EventType = EventType(domain.AuditUsersDeleted)
	EventTicketCreated       EventType = EventType(domain.AuditTicketCreated)
	EventTicketStatusChanged EventType = EventType(domain.AuditTicketStatusChanged)
	EventTicketCommentAdded  EventType = EventType(domain.AuditTicketCommentAdded)
	EventOperatorLoggedIn    EventType = EventType(domain.AuditOperatorLoggedIn)
	EventOperatorLoggedOut   EventType = EventType(domain.AuditOperatorLoggedOut)
)

// AllTypes lists every event the console emits.
var AllTypes = []EventType{
	EventUsersBlocked,
	EventUsersUnblocked,
	EventUsersDeleted,
	EventTicketCreated,
	EventTicketStatusChanged,
	EventTicketCommentAdded,
	EventOperatorLoggedIn,
	EventOperatorLoggedOut,
}

// Actor identifies the operator behind an event.
type Actor struct {
	OperatorID string `json:"operator_id"`
	Email      string `json:"email,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	TargetType string      `json:"target_type"`
	TargetIDs  []string    `json:"target_ids"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, actor Actor, targetType string, targetIDs []string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		TargetType: targetType,
		TargetIDs:  targetIDs,
		Actor:      actor,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// UsersChangedPayload payload.
type UsersChangedPayload struct {
	Kind   domain.UserKind `json:"kind,omitempty"`
	Reason string          `json:"reason,omitempty"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Subject  string                `json:"subject"`
	Priority domain.TicketPriority `json:"priority"`
	Location string                `json:"location"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Comment   string              `json:"comment,omitempty"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	BodyPreview string `json:"body_preview"`
}
