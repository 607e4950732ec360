package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/flo-mobility/admin-console/internal/daterange"
	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/present"
	"github.com/flo-mobility/admin-console/internal/querycache"
)

const (
	dashboardResource      = "dashboard"
	recentlyJoinedResource = "recently-joined"
	metricsSince           = "last month"
)

// MetricChange is the trend shown under a metric card.
type MetricChange struct {
	Percent   float64          `json:"percent"`
	Direction domain.Direction `json:"direction"`
	Since     string           `json:"since"`
}

// MetricCard is one of the dashboard's headline counters.
type MetricCard struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Value  int          `json:"value"`
	Change MetricChange `json:"change"`
}

// OnboardingPoint is a bucket of the onboarding chart.
type OnboardingPoint struct {
	Month         string  `json:"month"`
	RentalUsers   float64 `json:"rentalUsers"`
	BikeTaxiUsers float64 `json:"bikeTaxiUsers"`
}

// RaisedTicketPoint is a bucket of the raised tickets chart.
type RaisedTicketPoint struct {
	Month             string  `json:"month"`
	RaisedTickets     float64 `json:"raisedTickets"`
	ProcessingTickets float64 `json:"processingTickets"`
}

// OpenResolvedPoint is a bucket of the open versus resolved chart.
type OpenResolvedPoint struct {
	Month           string  `json:"month"`
	OpenTickets     float64 `json:"openTickets"`
	ResolvedTickets float64 `json:"resolvedTickets"`
}

// DashboardView is the dashboard as rendered by the console.
type DashboardView struct {
	Greeting            string                  `json:"greeting"`
	StartDate           string                  `json:"startDate"`
	EndDate             string                  `json:"endDate"`
	Metrics             []MetricCard            `json:"metrics"`
	CustomerOnboarding  domain.OnboardingMetric `json:"customerOnboarding"`
	OnBoardingData      []OnboardingPoint       `json:"onBoardingData"`
	RaiseTicketData     []RaisedTicketPoint     `json:"raiseTicketData"`
	OpenResolvedTickets []OpenResolvedPoint     `json:"openResolvedTickets"`
}

// DashboardService serves dashboard metrics and charts.
type DashboardService struct {
	insights InsightsAPI
	users    UsersAPI
	cache    *querycache.Cache
	ttl      time.Duration
	now      func() time.Time
}

// NewDashboardService builds the service.
func NewDashboardService(insights InsightsAPI, users UsersAPI, cache *querycache.Cache, ttl time.Duration) *DashboardService {
	return &DashboardService{insights: insights, users: users, cache: cache, ttl: ttl, now: time.Now}
}

// Dashboard returns the transformed dashboard for the range.
func (s *DashboardService) Dashboard(ctx context.Context, r daterange.Range) (*DashboardView, error) {
	raw, err := querycache.Fetch(ctx, s.cache, dashboardKey(r), s.ttl, func(ctx context.Context) (*domain.Dashboard, error) {
		return s.insights.Dashboard(ctx, r.StartString(), r.EndString())
	})
	if err != nil {
		return nil, err
	}
	view := TransformDashboard(raw)
	view.Greeting = present.Greeting(s.now().Hour())
	view.StartDate = r.StartString()
	view.EndDate = r.EndString()
	return view, nil
}

// Refresh drops the cached dashboard for the range only.
func (s *DashboardService) Refresh(ctx context.Context, r daterange.Range) {
	s.cache.InvalidateKey(ctx, dashboardKey(r))
}

// RecentlyJoined lists the newest accounts.
func (s *DashboardService) RecentlyJoined(ctx context.Context) ([]domain.RecentlyJoinedUser, error) {
	return querycache.Fetch(ctx, s.cache, querycache.Key(recentlyJoinedResource), s.ttl, func(ctx context.Context) ([]domain.RecentlyJoinedUser, error) {
		return s.users.RecentlyJoined(ctx)
	})
}

func dashboardKey(r daterange.Range) string {
	return querycache.Key(dashboardResource, r.StartString(), r.EndString())
}

// TransformDashboard maps the upstream payload onto the console's cards and
// chart series.
func TransformDashboard(raw *domain.Dashboard) *DashboardView {
	view := &DashboardView{
		Metrics:             []MetricCard{},
		OnBoardingData:      []OnboardingPoint{},
		RaiseTicketData:     []RaisedTicketPoint{},
		OpenResolvedTickets: []OpenResolvedPoint{},
	}
	if raw == nil {
		return view
	}

	view.Metrics = []MetricCard{
		metricCard("Active Tickets", raw.Metrics.ActiveTickets),
		metricCard("Resolved Tickets", raw.Metrics.ResolvedTickets),
		metricCard("Opened Tickets", raw.Metrics.OpenedTickets),
	}
	view.CustomerOnboarding = raw.Metrics.CustomerOnboarding

	for _, item := range raw.OnboardingData {
		view.OnBoardingData = append(view.OnBoardingData, OnboardingPoint{Month: item.Date, RentalUsers: item.Rental, BikeTaxiUsers: item.Taxi})
	}
	for _, item := range raw.TicketData {
		view.RaiseTicketData = append(view.RaiseTicketData, RaisedTicketPoint{Month: item.Date, RaisedTickets: item.Rental, ProcessingTickets: item.Taxi})
	}
	for _, item := range raw.OpenResolvedData {
		view.OpenResolvedTickets = append(view.OpenResolvedTickets, OpenResolvedPoint{Month: item.Date, OpenTickets: item.Rental, ResolvedTickets: item.Taxi})
	}
	return view
}

func metricCard(title string, m domain.TrendMetric) MetricCard {
	return MetricCard{
		ID:    present.KebabCase(strings.ReplaceAll(title, " ", "")),
		Title: title,
		Value: int(m.Value),
		Change: MetricChange{
			Percent:   ParsePercent(string(m.Change)),
			Direction: m.Direction,
			Since:     metricsSince,
		},
	}
}

// ParsePercent reads the leading number of a change string such as "12.5%"
// or "-3". Anything unparseable is zero.
func ParsePercent(raw string) float64 {
	raw = strings.TrimSpace(raw)
	end := 0
	for i, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || (i == 0 && (r == '-' || r == '+')) {
			end = i + 1
			continue
		}
		break
	}
	for end > 0 {
		if v, err := strconv.ParseFloat(raw[:end], 64); err == nil {
			return v
		}
		end--
	}
	return 0
}
