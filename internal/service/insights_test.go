package service

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/flo-mobility/admin-console/internal/config"
	"github.com/flo-mobility/admin-console/internal/daterange"
	"github.com/flo-mobility/admin-console/internal/domain"
	"github.com/flo-mobility/admin-console/internal/events"
	"github.com/flo-mobility/admin-console/internal/listing"
)

type fakeInsights struct {
	dashboardCalls int
	activityCalls  int
	groups         []domain.ActivityGroup
}

func (f *fakeInsights) Dashboard(context.Context, string, string) (*domain.Dashboard, error) {
	f.dashboardCalls++
	return &domain.Dashboard{
		Metrics: domain.DashboardMetrics{
			ActiveTickets:   domain.TrendMetric{Value: 12, Change: "12.5%", Direction: domain.DirectionUp},
			ResolvedTickets: domain.TrendMetric{Value: 4, Change: "-3", Direction: domain.DirectionDown},
			OpenedTickets:   domain.TrendMetric{Value: 1, Change: "n/a"},
		},
		OnboardingData:   []domain.ChartItem{{Date: "Jan", Rental: 3, Taxi: 4}},
		TicketData:       []domain.ChartItem{{Date: "Feb", Rental: 5, Taxi: 6}},
		OpenResolvedData: []domain.ChartItem{{Date: "Mar", Rental: 7, Taxi: 8}},
	}, nil
}

func (f *fakeInsights) Activities(context.Context, string, string) ([]domain.ActivityGroup, error) {
	f.activityCalls++
	return f.groups, nil
}

func testRange() daterange.Range {
	return daterange.Default(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
}

func TestDashboardTransform(t *testing.T) {
	insights := &fakeInsights{}
	svc := NewDashboardService(insights, newFakeUsers(), newTestCache(), testTTL)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }

	view, err := svc.Dashboard(context.Background(), testRange())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if view.Greeting != "Good Morning" || view.StartDate != "2023-05-01" {
		t.Fatalf("unexpected header %+v", view)
	}
	if len(view.Metrics) != 3 {
		t.Fatalf("expected three cards, got %d", len(view.Metrics))
	}
	active := view.Metrics[0]
	if active.ID != "active-tickets" || active.Title != "Active Tickets" || active.Value != 12 ||
		active.Change.Percent != 12.5 || active.Change.Since != "last month" {
		t.Fatalf("unexpected card %+v", active)
	}
	if view.Metrics[1].Change.Percent != -3 || view.Metrics[2].Change.Percent != 0 {
		t.Fatalf("unexpected percents %+v", view.Metrics)
	}
	if view.OnBoardingData[0].RentalUsers != 3 || view.OnBoardingData[0].BikeTaxiUsers != 4 ||
		view.RaiseTicketData[0].ProcessingTickets != 6 || view.OpenResolvedTickets[0].ResolvedTickets != 8 ||
		view.OpenResolvedTickets[0].Month != "Mar" {
		t.Fatalf("unexpected series %+v", view)
	}
}

func TestDashboardRefreshDropsOneRange(t *testing.T) {
	insights := &fakeInsights{}
	svc := NewDashboardService(insights, newFakeUsers(), newTestCache(), testTTL)
	ctx := context.Background()
	r := testRange()
	other, _ := daterange.Parse("2024-01-01", "2024-02-01", time.Now())

	_, _ = svc.Dashboard(ctx, r)
	_, _ = svc.Dashboard(ctx, other)
	_, _ = svc.Dashboard(ctx, r)
	if insights.dashboardCalls != 2 {
		t.Fatalf("expected cached dashboards, got %d calls", insights.dashboardCalls)
	}
	svc.Refresh(ctx, r)
	_, _ = svc.Dashboard(ctx, r)
	_, _ = svc.Dashboard(ctx, other)
	if insights.dashboardCalls != 3 {
		t.Fatalf("refresh must drop only its range, got %d calls", insights.dashboardCalls)
	}
}

func TestParsePercent(t *testing.T) {
	cases := map[string]float64{"12.5%": 12.5, "+4": 4, "-0.5 pts": -0.5, "": 0, "abc": 0, "7.": 7}
	for in, want := range cases {
		if got := ParsePercent(in); got != want {
			t.Fatalf("ParsePercent(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTimelineClassifies(t *testing.T) {
	insights := &fakeInsights{groups: []domain.ActivityGroup{{
		Date: "2024-05-01",
		Activities: []domain.Activity{
			{Title: "New User registered"},
			{Title: "Ticket resolved"},
			{Title: "Payment received"},
		},
	}}}
	svc := NewActivityService(insights, newTestCache(), 5*time.Minute)
	groups, err := svc.Timeline(context.Background(), testRange())
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	got := groups[0].Activities
	if got[0].Kind != domain.ActivityKindEmployees || got[1].Kind != domain.ActivityKindProfile || got[2].Kind != domain.ActivityKindTransactions {
		t.Fatalf("unexpected kinds %+v", got)
	}
	_, _ = svc.Timeline(context.Background(), testRange())
	if insights.activityCalls != 1 {
		t.Fatalf("timeline should be cached, got %d calls", insights.activityCalls)
	}
}

func TestRidesSumFares(t *testing.T) {
	date := "2024-03-05T14:07:00Z"
	rides := &fakeRides{rides: []domain.Ride{
		{ID: "1", Fare: decimal.NewNullDecimal(decimal.RequireFromString("10.10")), BookingDate: &date, BookingTime: &date},
		{ID: "2", Fare: decimal.NewNullDecimal(decimal.RequireFromString("0.20"))},
		{ID: "3"},
	}}
	svc := NewRideService(rides, newTestCache(), testTTL)
	page, err := svc.Rides(context.Background(), domain.UserKindTaxi, "c1", listing.Parse(nil))
	if err != nil {
		t.Fatalf("rides: %v", err)
	}
	if !page.FareTotal.Equal(decimal.RequireFromString("10.30")) {
		t.Fatalf("unexpected total %s", page.FareTotal)
	}
	if page.Data[0].Date != "05-03-2024" || page.Data[0].Time != "02:07 PM" || page.Data[1].Date != "N/A" {
		t.Fatalf("unexpected rows %+v", page.Data)
	}
	if _, err := svc.Rides(context.Background(), domain.UserKindTaxi, " ", listing.Parse(nil)); err == nil {
		t.Fatalf("customer id must be required")
	}
}

func TestAuditServiceHandleAndList(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewAuditService(repo)
	ev := events.New(events.EventTicketStatusChanged, operator, "ticket", []string{"t1"}, events.TicketStatusChangedPayload{
		OldStatus: domain.TicketStatusOpen,
		NewStatus: domain.TicketStatusClosed,
	})
	if err := svc.Handle(context.Background(), ev); err != nil {
		t.Fatalf("handle: %v", err)
	}
	entry := repo.created[0]
	if entry.EventID != ev.ID || entry.Action != domain.AuditTicketStatusChanged || entry.Payload["new_status"] != "closed" {
		t.Fatalf("unexpected entry %+v", entry)
	}

	page, err := svc.List(context.Background(), AuditQuery{Action: "ticket_status_changed", Page: 3, Size: 500})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Size != 100 || repo.filter.Offset != 200 || *repo.filter.Action != domain.AuditTicketStatusChanged {
		t.Fatalf("unexpected paging %+v %+v", page, repo.filter)
	}

	if _, err := NewAuditService(nil).List(context.Background(), AuditQuery{}); err == nil {
		t.Fatalf("disabled audit must fail")
	}
}

type fakeWriter struct {
	msgs []kafka.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaPublisher(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w, zap.NewNop())
	ev := events.New(events.EventUsersDeleted, operator, "user", []string{"1"}, nil)
	if err := p.Handle(context.Background(), ev); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(w.msgs) != 1 || string(w.msgs[0].Key) != "op-1" || string(w.msgs[0].Headers[0].Value) != "users_deleted" {
		t.Fatalf("unexpected messages %+v", w.msgs)
	}
	if NewKafkaWriter(configWithoutBrokers(), zap.NewNop()) != nil {
		t.Fatalf("no brokers must yield no writer")
	}
}

func configWithoutBrokers() config.KafkaConfig {
	return config.KafkaConfig{AuditTopic: "flo.admin.audit"}
}
