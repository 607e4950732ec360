package domain

// Direction is the trend of a dashboard metric.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// TrendMetric is a ticket counter with its change against the previous period.
type TrendMetric struct {
	Value     FlexInt    `json:"value"`
	Change    FlexString `json:"change"`
	Direction Direction  `json:"direction"`
}

// OnboardingMetric counts new customers over the period.
type OnboardingMetric struct {
	Value  FlexInt    `json:"value"`
	Change FlexString `json:"change"`
	Users  FlexInt    `json:"users"`
}

// DashboardMetrics is the metrics block of the dashboard endpoint.
type DashboardMetrics struct {
	ActiveTickets      TrendMetric      `json:"activeTickets"`
	ResolvedTickets    TrendMetric      `json:"resolvedTickets"`
	OpenedTickets      TrendMetric      `json:"openedTickets"`
	CustomerOnboarding OnboardingMetric `json:"customerOnboarding"`
}

// ChartItem is one bucket of a two-series dashboard chart.
type ChartItem struct {
	Date        string  `json:"date"`
	Rental      float64 `json:"rental"`
	Taxi        float64 `json:"taxi"`
	Granularity string  `json:"granularity"`
}

// Dashboard is the raw dashboard payload returned by the Flo API.
type Dashboard struct {
	Metrics          DashboardMetrics `json:"metrics"`
	OnboardingData   []ChartItem      `json:"onboardingData"`
	TicketData       []ChartItem      `json:"ticketData"`
	OpenResolvedData []ChartItem      `json:"openResolvedData"`
}
