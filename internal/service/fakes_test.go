package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/events"
	"github.com/flo-mobility/admin-console/internal/floapi"
	"github.com/flo-mobility/admin-console/internal/querycache"
	"github.com/flo-mobility/admin-console/internal/repository"
	apperrors "github.com/flo-mobility/admin-console/pkg/util/errorutil"
)

type fakeUsers struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	listCalls int
	blocked   [][]string
	unblocked [][]string
	deleted   [][]string
	blockAny  [][]string
}

func newFakeUsers(users ...domain.User) *fakeUsers {
	f := &fakeUsers{users: map[string]*domain.User{}}
	for i := range users {
		u := users[i]
		f.users[u.ID] = &u
	}
	return f
}

func (f *fakeUsers) ListUsers(_ context.Context, _ domain.UserKind, _ floapi.UserQuery) (*domain.List[domain.User], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := &domain.List[domain.User]{}
	for _, u := range f.users {
		out.Data = append(out.Data, *u)
	}
	return out, nil
}

func (f *fakeUsers) GetUser(_ context.Context, _ domain.UserKind, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.NewUpstreamError(404, "user not found", nil)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) UserAnalytics(context.Context, domain.UserKind, string) (*domain.Analytics, error) {
	return &domain.Analytics{TotalRides: 3}, nil
}

func (f *fakeUsers) BlockUsers(_ context.Context, _ domain.UserKind, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocked = append(f.blocked, ids)
	return nil
}

func (f *fakeUsers) UnblockUsers(_ context.Context, _ domain.UserKind, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unblocked = append(f.unblocked, ids)
	return nil
}

func (f *fakeUsers) DeleteUsers(_ context.Context, _ domain.UserKind, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, ids)
	return nil
}

func (f *fakeUsers) BlockAnyUsers(_ context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blockAny = append(f.blockAny, ids)
	return nil
}

func (f *fakeUsers) RecentlyJoined(context.Context) ([]domain.RecentlyJoinedUser, error) {
	return []domain.RecentlyJoinedUser{{Name: "Ada"}}, nil
}

type fakeRides struct {
	rides   []domain.Ride
	reviews []domain.Review
}

func (f *fakeRides) Rides(context.Context, domain.UserKind, string, int, int, string) (*domain.List[domain.Ride], error) {
	return &domain.List[domain.Ride]{Data: f.rides, Page: domain.Page{Current: 1}}, nil
}

func (f *fakeRides) Reviews(context.Context, domain.UserKind, string, int, int) (*domain.List[domain.Review], error) {
	return &domain.List[domain.Review]{Data: f.reviews}, nil
}

func (f *fakeRides) LegacyReviews(context.Context, string, int, int) (*domain.List[domain.Review], error) {
	return &domain.List[domain.Review]{Data: f.reviews}, nil
}

type fakeTickets struct {
	ticket      domain.Ticket
	created     []domain.NewTicket
	updates     []string
	comments    []string
	listCalls   int
	updateCalls int
}

func (f *fakeTickets) ListTickets(context.Context, string, string) (*domain.List[domain.Ticket], error) {
	f.listCalls++
	return &domain.List[domain.Ticket]{Data: []domain.Ticket{f.ticket}}, nil
}

func (f *fakeTickets) GetTicket(_ context.Context, id string) (*domain.Ticket, error) {
	t := f.ticket
	t.ID = id
	return &t, nil
}

func (f *fakeTickets) CreateTicket(_ context.Context, in domain.NewTicket) (*domain.Ticket, error) {
	f.created = append(f.created, in)
	return &domain.Ticket{ID: "t-new", Subject: in.Subject, Status: domain.TicketStatusOpen}, nil
}

func (f *fakeTickets) UpdateTicketStatus(_ context.Context, _ string, status domain.TicketStatus, comment string) error {
	f.updateCalls++
	f.updates = append(f.updates, string(status)+"|"+comment)
	f.ticket.Status = status
	return nil
}

func (f *fakeTickets) AddTicketComment(_ context.Context, _ string, message string) error {
	f.comments = append(f.comments, message)
	return nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, ev events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, ev)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type fakeAuditRepo struct {
	created []domain.AuditEntry
	filter  repository.AuditFilter
}

func (r *fakeAuditRepo) Create(_ context.Context, e *domain.AuditEntry) error {
	r.created = append(r.created, *e)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, f repository.AuditFilter) ([]domain.AuditEntry, int, error) {
	r.filter = f
	return r.created, len(r.created), nil
}

func newTestCache() *querycache.Cache {
	return querycache.New(querycache.NewMemoryStore(), true, zap.NewNop(), nil)
}

const testTTL = time.Minute
