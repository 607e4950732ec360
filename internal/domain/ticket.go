package domain

// TicketStatus enumerates lifecycle states for support tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Valid reports whether the status can be applied through the Flo API.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency chosen when a ticket is raised.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// Valid reports whether the priority is accepted by the Flo API.
func (p TicketPriority) Valid() bool {
	return p == TicketPriorityLow || p == TicketPriorityMedium || p == TicketPriorityHigh
}

// TicketUser is the requester summary embedded in a ticket.
type TicketUser struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
}

// TicketAttachment is a file uploaded with a ticket.
type TicketAttachment struct {
	ID         string  `json:"id"`
	FileName   string  `json:"fileName"`
	FileURL    string  `json:"fileUrl"`
	FileSize   FlexInt `json:"fileSize"`
	UploadedAt string  `json:"uploadedAt"`
}

// TicketComment is a reply posted on a ticket.
type TicketComment struct {
	CreatedAt string `json:"createdAt"`
	CreatedBy string `json:"createdBy"`
	Comment   string `json:"comment"`
}

// Ticket mirrors a support ticket record.
type Ticket struct {
	ID           string             `json:"id"`
	TicketID     *string            `json:"ticketId"`
	Subject      string             `json:"subject"`
	Description  string             `json:"description"`
	User         TicketUser         `json:"user"`
	CreatedAt    string             `json:"createdAt"`
	Status       TicketStatus       `json:"ticket_status"`
	CustomerType string             `json:"customerType"`
	Department   string             `json:"department"`
	Location     string             `json:"location"`
	MapURL       *string            `json:"mapUrl"`
	Attachments  []TicketAttachment `json:"attachments"`
	Comments     []TicketComment    `json:"comments,omitempty"`
}

// NewTicket is the payload for raising a ticket.
type NewTicket struct {
	Subject     string         `json:"subject"`
	Description string         `json:"description"`
	Priority    TicketPriority `json:"priority"`
	Location    string         `json:"location"`
	MapURL      *string        `json:"map_url"`
}
