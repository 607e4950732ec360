package floapi

import (
	"context"
	"net/url"

	"github.com/flo-mobility/admin-console/internal/domain"
)

// Dashboard fetches metrics and chart series for the date range.
func (c *Client) Dashboard(ctx context.Context, startDate, endDate string) (*domain.Dashboard, error) {
	query := url.Values{}
	query.Set("startDate", startDate)
	query.Set("endDate", endDate)
	var out domain.Dashboard
	if err := c.get(ctx, "dashboard.get", "/dashboard", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Activities fetches the activity timeline. The range is sent only when both
// bounds are set.
func (c *Client) Activities(ctx context.Context, startDate, endDate string) ([]domain.ActivityGroup, error) {
	var query url.Values
	if startDate != "" && endDate != "" {
		query = url.Values{}
		query.Set("startDate", startDate)
		query.Set("endDate", endDate)
	}
	var out Envelope[[]domain.ActivityGroup]
	if err := c.get(ctx, "activities.list", "/activities", query, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Rides lists rides taken by a customer.
func (c *Client) Rides(ctx context.Context, kind domain.UserKind, customerID string, page, size int, status string) (*domain.List[domain.Ride], error) {
	query := pageQuery(page, size)
	if status != "" {
		query.Set("status", status)
	}
	var out domain.List[domain.Ride]
	path := "/rides/" + string(kind) + "/" + url.PathEscape(customerID)
	if err := c.get(ctx, "rides.list."+string(kind), path, query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reviews lists reviews left by a customer.
func (c *Client) Reviews(ctx context.Context, kind domain.UserKind, customerID string, page, size int) (*domain.List[domain.Review], error) {
	var out domain.List[domain.Review]
	path := "/reviews/" + string(kind) + "/" + url.PathEscape(customerID)
	if err := c.get(ctx, "reviews.list."+string(kind), path, pageQuery(page, size), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LegacyReviews lists reviews through the kind-less endpoint.
func (c *Client) LegacyReviews(ctx context.Context, customerID string, page, size int) (*domain.List[domain.Review], error) {
	var out domain.List[domain.Review]
	path := "/reviews/" + url.PathEscape(customerID)
	if err := c.get(ctx, "reviews.list", path, pageQuery(page, size), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
