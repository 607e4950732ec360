package dto

import "github.com/flo-mobility/admin-console/internal/domain"

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Subject     string                `json:"subject"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	Location    string                `json:"location"`
	MapURL      *string               `json:"map_url"`
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// AddCommentRequest payload.
type AddCommentRequest struct {
	Message string `json:"message"`
}

// TicketSummary is a ticket row of the tickets table.
type TicketSummary struct {
	domain.Ticket
	StatusLabel      string `json:"statusLabel"`
	CreatedAtDisplay string `json:"createdAtDisplay"`
}

// TicketListResponse lists tickets with the active filters.
type TicketListResponse struct {
	Data   []TicketSummary `json:"data"`
	Page   domain.Page     `json:"page"`
	Status string          `json:"status"`
	Search string          `json:"search"`
}
