package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/events"
	"github.com/flo-mobility/admin-console/internal/floapi"
)

// AuthAPI is the slice of the Flo API used by the login flow.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*floapi.AuthResult, error)
	VerifyLoginOTP(ctx context.Context, email, otp string) (*floapi.AuthResult, error)
	SendPasswordResetLink(ctx context.Context, email string) (*floapi.AuthResult, error)
	VerifyForgotPassword(ctx context.Context, email, otpHash string) (*floapi.AuthResult, error)
	ChangePassword(ctx context.Context, email, password string) (*floapi.AuthResult, error)
}

// UsersAPI is the slice of the Flo API used for account management.
type UsersAPI interface {
	ListUsers(ctx context.Context, kind domain.UserKind, q floapi.UserQuery) (*domain.List[domain.User], error)
	GetUser(ctx context.Context, kind domain.UserKind, id string) (*domain.User, error)
	UserAnalytics(ctx context.Context, kind domain.UserKind, id string) (*domain.Analytics, error)
	BlockUsers(ctx context.Context, kind domain.UserKind, ids []string) error
	UnblockUsers(ctx context.Context, kind domain.UserKind, ids []string) error
	DeleteUsers(ctx context.Context, kind domain.UserKind, ids []string) error
	BlockAnyUsers(ctx context.Context, ids []string) error
	RecentlyJoined(ctx context.Context) ([]domain.RecentlyJoinedUser, error)
}

// TicketsAPI is the slice of the Flo API used for support tickets.
type TicketsAPI interface {
	ListTickets(ctx context.Context, status, search string) (*domain.List[domain.Ticket], error)
	GetTicket(ctx context.Context, id string) (*domain.Ticket, error)
	CreateTicket(ctx context.Context, ticket domain.NewTicket) (*domain.Ticket, error)
	UpdateTicketStatus(ctx context.Context, id string, status domain.TicketStatus, comment string) error
	AddTicketComment(ctx context.Context, id, message string) error
}

// InsightsAPI covers the dashboard and activity endpoints.
type InsightsAPI interface {
	Dashboard(ctx context.Context, startDate, endDate string) (*domain.Dashboard, error)
	Activities(ctx context.Context, startDate, endDate string) ([]domain.ActivityGroup, error)
}

// RidesAPI covers ride history and reviews.
type RidesAPI interface {
	Rides(ctx context.Context, kind domain.UserKind, customerID string, page, size int, status string) (*domain.List[domain.Ride], error)
	Reviews(ctx context.Context, kind domain.UserKind, customerID string, page, size int) (*domain.List[domain.Review], error)
	LegacyReviews(ctx context.Context, customerID string, page, size int) (*domain.List[domain.Review], error)
}

var (
	_ AuthAPI     = (*floapi.Client)(nil)
	_ UsersAPI    = (*floapi.Client)(nil)
	_ TicketsAPI  = (*floapi.Client)(nil)
	_ InsightsAPI = (*floapi.Client)(nil)
	_ RidesAPI    = (*floapi.Client)(nil)
)

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("publish event failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
