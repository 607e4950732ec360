package floapi

import (
	"context"
	"net/url"

	"github.com/flo-mobility/admin-console/internal/domain"
)

// ListTickets returns tickets filtered by status and free-text search.
func (c *Client) ListTickets(ctx context.Context, status, search string) (*domain.List[domain.Ticket], error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	if search != "" {
		query.Set("search", search)
	}
	var out domain.List[domain.Ticket]
	if err := c.get(ctx, "tickets.list", "/tickets", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTicket fetches one ticket with its comments.
func (c *Client) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	var out Envelope[domain.Ticket]
	if err := c.get(ctx, "tickets.get", "/tickets/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// CreateTicket raises a new ticket.
func (c *Client) CreateTicket(ctx context.Context, ticket domain.NewTicket) (*domain.Ticket, error) {
	var out Envelope[domain.Ticket]
	if err := c.post(ctx, "tickets.create", "/tickets", ticket, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateTicketStatus moves a ticket to a new status.
func (c *Client) UpdateTicketStatus(ctx context.Context, id string, status domain.TicketStatus, comment string) error {
	return c.put(ctx, "tickets.update_status", "/tickets/"+url.PathEscape(id)+"/status", map[string]string{
		"status":            string(status),
		"resolutionComment": comment,
	}, nil)
}

// AddTicketComment posts a reply on a ticket.
func (c *Client) AddTicketComment(ctx context.Context, id, message string) error {
	return c.post(ctx, "tickets.add_comment", "/tickets/"+url.PathEscape(id)+"/comments", map[string]string{
		"message": message,
	}, nil)
}
