package domain

import "time"

// AuditAction captures what an operator did.
type AuditAction string

const (
	AuditUsersBlocked        AuditAction = "users_blocked"
	AuditUsersUnblocked      AuditAction = "users_unblocked"
	AuditUsersDeleted        AuditAction = "users_deleted"
	AuditTicketCreated       AuditAction = "ticket_created"
	AuditTicketStatusChanged AuditAction = "ticket_status_changed"
	AuditTicketCommentAdded  AuditAction = "ticket_comment_added"
	AuditOperatorLoggedIn    AuditAction = "operator_logged_in"
	AuditOperatorLoggedOut   AuditAction = "operator_logged_out"
)

// AuditEntry is an immutable record of an operator action.
type AuditEntry struct {
	ID         string
	EventID    string
	Action     AuditAction
	OperatorID string
	TargetType string
	TargetIDs  []string
	Payload    map[string]any
	CreatedAt  time.Time
}
