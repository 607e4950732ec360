package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/events"
	"github.com/flo-mobility/admin-console/internal/present"
	"github.com/flo-mobility/admin-console/internal/querycache"
	apperrors "github.com/flo-mobility/admin-console/pkg/util/errorutil"
)

const (
	ticketsResource = "tickets"
	defaultLocation = "Remote"
	previewLength   = 120
)

// TicketService coordinates the support ticket workflow.
type TicketService struct {
	api        TicketsAPI
	cache      *querycache.Cache
	ttl        time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	API        TicketsAPI
	Cache      *querycache.Cache
	TTL        time.Duration
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Subject     string
	Description string
	Priority    domain.TicketPriority
	Location    string
	MapURL      *string
}

// StatusUpdateResult reports a completed status change.
type StatusUpdateResult struct {
	TicketID          string              `json:"ticketId"`
	Status            domain.TicketStatus `json:"status"`
	StatusLabel       string              `json:"statusLabel"`
	ResolutionComment string              `json:"resolutionComment"`
	Message           string              `json:"message"`
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		api:        deps.API,
		cache:      deps.Cache,
		ttl:        deps.TTL,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// List returns tickets filtered by status and search term.
func (s *TicketService) List(ctx context.Context, status, search string) (*domain.List[domain.Ticket], error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "all" {
		status = ""
	}
	search = strings.TrimSpace(search)
	key := querycache.Key(ticketsResource, status, search)
	return querycache.Fetch(ctx, s.cache, key, s.ttl, func(ctx context.Context) (*domain.List[domain.Ticket], error) {
		return s.api.ListTickets(ctx, status, search)
	})
}

// Get returns one ticket with its comments.
func (s *TicketService) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("ticket id is required", nil)
	}
	return s.api.GetTicket(ctx, id)
}

// Create raises a new ticket.
func (s *TicketService) Create(ctx context.Context, actor events.Actor, input TicketCreateInput) (*domain.Ticket, error) {
	payload := domain.NewTicket{
		Subject:     strings.TrimSpace(input.Subject),
		Description: strings.TrimSpace(input.Description),
		Priority:    domain.TicketPriority(strings.ToLower(strings.TrimSpace(string(input.Priority)))),
		Location:    strings.TrimSpace(input.Location),
		MapURL:      input.MapURL,
	}

	missing := []string{}
	if payload.Subject == "" {
		missing = append(missing, "subject")
	}
	if payload.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", map[string]any{"fields": missing})
	}
	if payload.Priority == "" {
		payload.Priority = domain.TicketPriorityLow
	}
	if !payload.Priority.Valid() {
		return nil, apperrors.NewValidationError("priority must be low, medium or high", map[string]any{"priority": payload.Priority})
	}
	if payload.Location == "" {
		payload.Location = defaultLocation
	}
	if payload.MapURL != nil && strings.TrimSpace(*payload.MapURL) == "" {
		payload.MapURL = nil
	}

	ticket, err := s.api.CreateTicket(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, ticketsResource)

	target := []string{}
	if ticket != nil && ticket.ID != "" {
		target = append(target, ticket.ID)
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.New(events.EventTicketCreated, actor, "ticket", target, events.TicketCreatedPayload{
		Subject:  payload.Subject,
		Priority: payload.Priority,
		Location: payload.Location,
	}))
	return ticket, nil
}

// UpdateStatus moves a ticket to status. Re-applying the current status is
// rejected before the update endpoint is called.
func (s *TicketService) UpdateStatus(ctx context.Context, actor events.Actor, id string, status domain.TicketStatus) (*StatusUpdateResult, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("ticket id is required", nil)
	}
	status = domain.TicketStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid ticket status", map[string]any{"status": status})
	}

	current, err := s.api.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	label := present.TicketStatusLabel(status)
	if current.Status == status {
		return nil, apperrors.NewConflict(fmt.Sprintf("Ticket is already in %s status.", label), map[string]any{"status": status})
	}

	comment := ResolutionComment(status)
	if err := s.api.UpdateTicketStatus(ctx, id, status, comment); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, ticketsResource)
	publishEvent(ctx, s.dispatcher, s.logger, events.New(events.EventTicketStatusChanged, actor, "ticket", []string{id}, events.TicketStatusChangedPayload{
		OldStatus: current.Status,
		NewStatus: status,
		Comment:   comment,
	}))

	return &StatusUpdateResult{
		TicketID:          id,
		Status:            status,
		StatusLabel:       label,
		ResolutionComment: comment,
		Message:           fmt.Sprintf("Ticket status has been updated to %s successfully!", label),
	}, nil
}

// AddComment posts a reply on a ticket.
func (s *TicketService) AddComment(ctx context.Context, actor events.Actor, id, message string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewValidationError("ticket id is required", nil)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return apperrors.NewValidationError("comment message is required", nil)
	}
	if err := s.api.AddTicketComment(ctx, id, message); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, ticketsResource)
	publishEvent(ctx, s.dispatcher, s.logger, events.New(events.EventTicketCommentAdded, actor, "ticket", []string{id}, events.TicketCommentAddedPayload{
		BodyPreview: preview(message),
	}))
	return nil
}

// ResolutionComment is the note attached to a status change.
func ResolutionComment(status domain.TicketStatus) string {
	switch status {
	case domain.TicketStatusResolved:
		return "Issue has been resolved successfully."
	case domain.TicketStatusClosed:
		return "Ticket has been closed."
	case domain.TicketStatusInProgress:
		return "Ticket is now in progress."
	default:
		return "Ticket status updated."
	}
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLength {
		return s
	}
	return string(r[:previewLength]) + "..."
}
