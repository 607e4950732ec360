package floapi

import (
	"context"
	"net/url"

	"github.com/flo-mobility/admin-console/internal/domain"
)

const (
	blockReason   = "Violation of terms of service"
	unblockReason = "Violation of terms resolved"
)

// UserQuery filters an account list. Empty Status or Search are omitted.
type UserQuery struct {
	Page   int
	Size   int
	Status string
	Search string
}

type userIDsRequest struct {
	UserIDs       []string `json:"userIds"`
	BlockedReason string   `json:"blockedReason,omitempty"`
	DeleteReason  string   `json:"deleteReason,omitempty"`
}

// ListUsers returns a page of rental or taxi accounts.
func (c *Client) ListUsers(ctx context.Context, kind domain.UserKind, q UserQuery) (*domain.List[domain.User], error) {
	query := pageQuery(q.Page, q.Size)
	if q.Status != "" {
		query.Set("status", q.Status)
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	var out domain.List[domain.User]
	if err := c.get(ctx, "users.list."+string(kind), "/users/"+string(kind), query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches a single account.
func (c *Client) GetUser(ctx context.Context, kind domain.UserKind, id string) (*domain.User, error) {
	var out Envelope[domain.User]
	path := "/users/" + string(kind) + "/" + url.PathEscape(id)
	if err := c.get(ctx, "users.get."+string(kind), path, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UserAnalytics fetches the ride breakdown for an account.
func (c *Client) UserAnalytics(ctx context.Context, kind domain.UserKind, id string) (*domain.Analytics, error) {
	var out Envelope[domain.Analytics]
	path := "/users/" + string(kind) + "-analytics/" + url.PathEscape(id)
	if err := c.get(ctx, "users.analytics."+string(kind), path, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// BlockUsers deactivates accounts of one kind.
func (c *Client) BlockUsers(ctx context.Context, kind domain.UserKind, ids []string) error {
	return c.post(ctx, "users.block."+string(kind), "/users/block/"+string(kind), userIDsRequest{
		UserIDs:       ids,
		BlockedReason: blockReason,
	}, nil)
}

// UnblockUsers reactivates accounts of one kind.
func (c *Client) UnblockUsers(ctx context.Context, kind domain.UserKind, ids []string) error {
	return c.post(ctx, "users.unblock."+string(kind), "/users/unblock/"+string(kind), userIDsRequest{
		UserIDs:       ids,
		BlockedReason: unblockReason,
	}, nil)
}

// DeleteUsers removes accounts of one kind.
func (c *Client) DeleteUsers(ctx context.Context, kind domain.UserKind, ids []string) error {
	reason := blockReason
	if kind == domain.UserKindTaxi {
		reason = "User account deletion requested"
	}
	return c.post(ctx, "users.delete."+string(kind), "/users/"+string(kind)+"/delete", userIDsRequest{
		UserIDs:      ids,
		DeleteReason: reason,
	}, nil)
}

// BlockAnyUsers blocks accounts regardless of product line.
func (c *Client) BlockAnyUsers(ctx context.Context, ids []string) error {
	return c.post(ctx, "users.block", "/users/block", userIDsRequest{
		UserIDs:       ids,
		BlockedReason: blockReason,
	}, nil)
}

// RecentlyJoined lists the newest accounts for the dashboard.
func (c *Client) RecentlyJoined(ctx context.Context) ([]domain.RecentlyJoinedUser, error) {
	var out Envelope[[]domain.RecentlyJoinedUser]
	if err := c.get(ctx, "users.recently_joined", "/users/recently-joined", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
