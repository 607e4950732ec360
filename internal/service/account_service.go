package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/events"
	"github.com/flo-mobility/admin-console/internal/floapi"
	"github.com/flo-mobility/admin-console/internal/listing"
	"github.com/flo-mobility/admin-console/internal/querycache"
	apperrors "github.com/flo-mobility/admin-console/pkg/util/errorutil"
)

const maxSelectionLookups = 8

// AccountService manages rental customers or taxi (billing) accounts.
type AccountService struct {
	kind       domain.UserKind
	users      UsersAPI
	rides      RidesAPI
	cache      *querycache.Cache
	ttl        time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AccountDependencies bundles collaborators of the account service.
type AccountDependencies struct {
	Users      UsersAPI
	Rides      RidesAPI
	Cache      *querycache.Cache
	TTL        time.Duration
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// AccountOverview is everything the customer details page shows.
type AccountOverview struct {
	User      *domain.User                `json:"user"`
	Analytics *domain.Analytics           `json:"analytics"`
	Rides     *domain.List[domain.Ride]   `json:"rides"`
	Reviews   *domain.List[domain.Review] `json:"reviews"`
}

// MutationResult reports a completed bulk action.
type MutationResult struct {
	Message string   `json:"message"`
	UserIDs []string `json:"userIds"`
}

// NewAccountService builds a service for one product line.
func NewAccountService(kind domain.UserKind, deps AccountDependencies) *AccountService {
	return &AccountService{
		kind:       kind,
		users:      deps.Users,
		rides:      deps.Rides,
		cache:      deps.Cache,
		ttl:        deps.TTL,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Kind reports the product line served.
func (s *AccountService) Kind() domain.UserKind { return s.kind }

// List returns one page of accounts.
func (s *AccountService) List(ctx context.Context, p listing.Params) (*domain.List[domain.User], error) {
	key := querycache.Key(s.kind.Resource(), p.Page, p.Size, strings.ToLower(p.Status), p.Search)
	return querycache.Fetch(ctx, s.cache, key, s.ttl, func(ctx context.Context) (*domain.List[domain.User], error) {
		return s.users.ListUsers(ctx, s.kind, floapi.UserQuery{
			Page:   p.Page,
			Size:   p.Size,
			Status: p.StatusFilter(),
			Search: p.Search,
		})
	})
}

// Get returns one account.
func (s *AccountService) Get(ctx context.Context, id string) (*domain.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("customer id is required", nil)
	}
	key := querycache.Key(s.kind.Resource(), "user", id)
	return querycache.Fetch(ctx, s.cache, key, s.ttl, func(ctx context.Context) (*domain.User, error) {
		return s.users.GetUser(ctx, s.kind, id)
	})
}

// Analytics returns the account's ride breakdown.
func (s *AccountService) Analytics(ctx context.Context, id string) (*domain.Analytics, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("customer id is required", nil)
	}
	key := querycache.Key(s.kind.Resource(), "analytics", id)
	return querycache.Fetch(ctx, s.cache, key, s.ttl, func(ctx context.Context) (*domain.Analytics, error) {
		return s.users.UserAnalytics(ctx, s.kind, id)
	})
}

// Overview loads the account, analytics and the first page of rides and
// reviews concurrently.
func (s *AccountService) Overview(ctx context.Context, id string) (*AccountOverview, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("customer id is required", nil)
	}
	var out AccountOverview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		user, err := s.Get(gctx, id)
		out.User = user
		return err
	})
	g.Go(func() error {
		analytics, err := s.Analytics(gctx, id)
		out.Analytics = analytics
		return err
	})
	g.Go(func() error {
		rides, err := s.rides.Rides(gctx, s.kind, id, listing.DefaultPage, listing.DefaultSize, "")
		out.Rides = rides
		return err
	})
	g.Go(func() error {
		reviews, err := s.rides.Reviews(gctx, s.kind, id, listing.DefaultPage, listing.DefaultReviewSize)
		out.Reviews = reviews
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Block deactivates the selected accounts. Selections that contain accounts
// already inactive are rejected without calling the block endpoint.
func (s *AccountService) Block(ctx context.Context, actor events.Actor, ids []string) (*MutationResult, error) {
	ids = cleanIDs(ids)
	if len(ids) == 0 {
		return nil, apperrors.NewValidationError("Please select at least one row to block", nil)
	}
	if err := s.ensureNoneIn(ctx, ids, domain.UserStatusInactive); err != nil {
		return nil, err
	}
	if err := s.users.BlockUsers(ctx, s.kind, ids); err != nil {
		return nil, err
	}
	s.afterMutation(ctx, actor, events.EventUsersBlocked, ids)
	return &MutationResult{Message: "Selected users have been blocked", UserIDs: ids}, nil
}

// Unblock reactivates the selected accounts.
func (s *AccountService) Unblock(ctx context.Context, actor events.Actor, ids []string) (*MutationResult, error) {
	ids = cleanIDs(ids)
	if len(ids) == 0 {
		return nil, apperrors.NewValidationError("Please select at least one row to unblock", nil)
	}
	if err := s.ensureNoneIn(ctx, ids, domain.UserStatusActive); err != nil {
		return nil, err
	}
	if err := s.users.UnblockUsers(ctx, s.kind, ids); err != nil {
		return nil, err
	}
	s.afterMutation(ctx, actor, events.EventUsersUnblocked, ids)
	return &MutationResult{Message: "Selected users have been unblocked", UserIDs: ids}, nil
}

// Delete removes the selected accounts.
func (s *AccountService) Delete(ctx context.Context, actor events.Actor, ids []string) (*MutationResult, error) {
	ids = cleanIDs(ids)
	if len(ids) == 0 {
		return nil, apperrors.NewValidationError("Please select at least one row to delete", nil)
	}
	if err := s.users.DeleteUsers(ctx, s.kind, ids); err != nil {
		return nil, err
	}
	s.afterMutation(ctx, actor, events.EventUsersDeleted, ids)
	return &MutationResult{Message: "Selected users have been deleted", UserIDs: ids}, nil
}

// ensureNoneIn fails when any selected account already has status.
func (s *AccountService) ensureNoneIn(ctx context.Context, ids []string, status domain.UserStatus) error {
	statuses := make([]domain.UserStatus, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxSelectionLookups)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			user, err := s.users.GetUser(gctx, s.kind, id)
			if err != nil {
				return err
			}
			statuses[i] = user.Status
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	matching := 0
	for _, st := range statuses {
		if strings.EqualFold(string(st), string(status)) {
			matching++
		}
	}
	switch {
	case matching == 0:
		return nil
	case matching == len(ids):
		return apperrors.NewConflict("All selected rows are already "+string(status), map[string]any{"userIds": ids})
	default:
		return apperrors.NewConflict("Some selected rows are already "+string(status), map[string]any{"userIds": ids})
	}
}

func (s *AccountService) afterMutation(ctx context.Context, actor events.Actor, eventType events.EventType, ids []string) {
	s.cache.Invalidate(ctx, s.kind.Resource())
	publishEvent(ctx, s.dispatcher, s.logger, events.New(eventType, actor, "user", ids, events.UsersChangedPayload{Kind: s.kind}))
}

// UserAdminService handles actions that span both product lines.
type UserAdminService struct {
	users      UsersAPI
	cache      *querycache.Cache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewUserAdminService builds the service.
func NewUserAdminService(users UsersAPI, cache *querycache.Cache, dispatcher events.Dispatcher, logger *zap.Logger) *UserAdminService {
	return &UserAdminService{users: users, cache: cache, dispatcher: dispatcher, logger: logger}
}

// BlockAny blocks accounts through the kind-less endpoint.
func (s *UserAdminService) BlockAny(ctx context.Context, actor events.Actor, ids []string) (*MutationResult, error) {
	ids = cleanIDs(ids)
	if len(ids) == 0 {
		return nil, apperrors.NewValidationError("Please select at least one row to block", nil)
	}
	if err := s.users.BlockAnyUsers(ctx, ids); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, domain.UserKindRental.Resource(), domain.UserKindTaxi.Resource())
	publishEvent(ctx, s.dispatcher, s.logger, events.New(events.EventUsersBlocked, actor, "user", ids, events.UsersChangedPayload{}))
	return &MutationResult{Message: "Selected users have been blocked", UserIDs: ids}, nil
}

func cleanIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
