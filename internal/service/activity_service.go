package service

import (
	"context"
	"strings"
	"time"

	"github.com/flo-mobility/admin-console/internal/daterange"
	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/querycache"
)

const activitiesResource = "activities"

// ActivityService serves the recent-activity timeline.
type ActivityService struct {
	insights InsightsAPI
	cache    *querycache.Cache
	ttl      time.Duration
}

// NewActivityService builds the service. ttl is the timeline's staleness
// window.
func NewActivityService(insights InsightsAPI, cache *querycache.Cache, ttl time.Duration) *ActivityService {
	return &ActivityService{insights: insights, cache: cache, ttl: ttl}
}

// Timeline returns activities grouped by day, each tagged with its kind.
func (s *ActivityService) Timeline(ctx context.Context, r daterange.Range) ([]domain.ActivityGroup, error) {
	key := querycache.Key(activitiesResource, r.StartString(), r.EndString())
	groups, err := querycache.Fetch(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]domain.ActivityGroup, error) {
		return s.insights.Activities(ctx, r.StartString(), r.EndString())
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.ActivityGroup, len(groups))
	for i, g := range groups {
		out[i] = domain.ActivityGroup{Date: g.Date, Activities: make([]domain.Activity, len(g.Activities))}
		for j, a := range g.Activities {
			a.Kind = ClassifyActivity(a.Title)
			out[i].Activities[j] = a
		}
	}
	return out, nil
}

// ClassifyActivity buckets an activity by its title.
func ClassifyActivity(title string) domain.ActivityKind {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "user"):
		return domain.ActivityKindEmployees
	case strings.Contains(lower, "ticket"):
		return domain.ActivityKindProfile
	default:
		return domain.ActivityKindTransactions
	}
}
