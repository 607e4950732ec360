package domain

// ActivityKind groups timeline entries for display.
type ActivityKind string

const (
	ActivityKindEmployees    ActivityKind = "employees"
	ActivityKindProfile      ActivityKind = "profile"
	ActivityKindTransactions ActivityKind = "transactions"
)

// ActivityDetails carries optional deep-link data for an activity.
type ActivityDetails struct {
	CustomerID string `json:"customerId,omitempty"`
	ActionLink string `json:"actionLink,omitempty"`
}

// Activity is a single entry of the recent-activity timeline.
type Activity struct {
	Time        string           `json:"time"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        string           `json:"type,omitempty"`
	EventType   string           `json:"eventType,omitempty"`
	Kind        ActivityKind     `json:"kind,omitempty"`
	Details     *ActivityDetails `json:"details,omitempty"`
}

// ActivityGroup is the timeline for one day.
type ActivityGroup struct {
	Date       string     `json:"date"`
	Activities []Activity `json:"activities"`
}
