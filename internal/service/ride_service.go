package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/listing"
	"github.com/flo-mobility/admin-console/internal/present"
	"github.com/flo-mobility/admin-console/internal/querycache"
	apperrors "github.com/flo-mobility/admin-console/pkg/util/errorutil"
)

const (
	ridesResource   = "rides"
	reviewsResource = "reviews"
)

// RideRow is a ride with its display fields.
type RideRow struct {
	domain.Ride
	Date string `json:"date"`
	Time string `json:"time"`
}

// RidePage is a page of rides plus the fare total of that page.
type RidePage struct {
	Data      []RideRow       `json:"data"`
	Page      domain.Page     `json:"page"`
	FareTotal decimal.Decimal `json:"fareTotal"`
}

// ReviewRow is a review with its display date.
type ReviewRow struct {
	domain.Review
	Date string `json:"date"`
}

// ReviewPage is a page of reviews.
type ReviewPage struct {
	Data []ReviewRow `json:"data"`
	Page domain.Page `json:"page"`
}

// RideService serves a customer's ride history and reviews.
type RideService struct {
	api   RidesAPI
	cache *querycache.Cache
	ttl   time.Duration
}

// NewRideService builds the service.
func NewRideService(api RidesAPI, cache *querycache.Cache, ttl time.Duration) *RideService {
	return &RideService{api: api, cache: cache, ttl: ttl}
}

// Rides lists a customer's rides.
func (s *RideService) Rides(ctx context.Context, kind domain.UserKind, customerID string, p listing.Params) (*RidePage, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, apperrors.NewValidationError("customer id is required", nil)
	}
	status := p.StatusFilter()
	key := querycache.Key(ridesResource, kind, customerID, p.Page, p.Size, status)
	list, err := querycache.Fetch(ctx, s.cache, key, s.ttl, func(ctx context.Context) (*domain.List[domain.Ride], error) {
		return s.api.Rides(ctx, kind, customerID, p.Page, p.Size, status)
	})
	if err != nil {
		return nil, err
	}

	out := &RidePage{Data: make([]RideRow, 0, len(list.Data)), Page: list.Page, FareTotal: decimal.Zero}
	for _, ride := range list.Data {
		if ride.Fare.Valid {
			out.FareTotal = out.FareTotal.Add(ride.Fare.Decimal)
		}
		out.Data = append(out.Data, RideRow{
			Ride: ride,
			Date: present.FormatRideDate(ride.BookingDate),
			Time: present.FormatRideTime(ride.BookingTime),
		})
	}
	return out, nil
}

// Reviews lists reviews left by a customer of the given kind.
func (s *RideService) Reviews(ctx context.Context, kind domain.UserKind, customerID string, p listing.Params) (*ReviewPage, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, apperrors.NewValidationError("customer id is required", nil)
	}
	key := querycache.Key(reviewsResource, kind, customerID, p.Page, p.Size)
	list, err := querycache.Fetch(ctx, s.cache, key, s.ttl, func(ctx context.Context) (*domain.List[domain.Review], error) {
		return s.api.Reviews(ctx, kind, customerID, p.Page, p.Size)
	})
	if err != nil {
		return nil, err
	}
	return reviewPage(list), nil
}

// LegacyReviews lists reviews through the kind-less endpoint.
func (s *RideService) LegacyReviews(ctx context.Context, customerID string, p listing.Params) (*ReviewPage, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, apperrors.NewValidationError("customer id is required", nil)
	}
	key := querycache.Key(reviewsResource, "any", customerID, p.Page, p.Size)
	list, err := querycache.Fetch(ctx, s.cache, key, s.ttl, func(ctx context.Context) (*domain.List[domain.Review], error) {
		return s.api.LegacyReviews(ctx, customerID, p.Page, p.Size)
	})
	if err != nil {
		return nil, err
	}
	return reviewPage(list), nil
}

func reviewPage(list *domain.List[domain.Review]) *ReviewPage {
	out := &ReviewPage{Data: make([]ReviewRow, 0, len(list.Data)), Page: list.Page}
	for _, r := range list.Data {
		out.Data = append(out.Data, ReviewRow{Review: r, Date: present.FormatTicketDate(r.CreatedAt)})
	}
	return out
}
