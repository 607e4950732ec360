package present

import (
	"testing"

	"github.com/flo-mobility/admin-console/internal/domain"
)

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2024-03-05T10:00:00.000Z"); got != "5 Mar, 2024" {
		t.Fatalf("got %q", got)
	}
	if got := FormatDate("garbage"); got != "garbage" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatTicketDate(t *testing.T) {
	if got := FormatTicketDate("2024-03-05"); got != "05 Mar 2024" {
		t.Fatalf("got %q", got)
	}
	if got := FormatTicketDate(""); got != InvalidDate {
		t.Fatalf("got %q", got)
	}
}

func TestFormatRide(t *testing.T) {
	d := "2024-03-05T14:07:00Z"
	if FormatRideDate(&d) != "05-03-2024" || FormatRideTime(&d) != "02:07 PM" {
		t.Fatalf("unexpected ride formatting %s %s", FormatRideDate(&d), FormatRideTime(&d))
	}
	if FormatRideDate(nil) != NotAvailable || FormatRideTime(nil) != NotAvailable {
		t.Fatalf("missing values must be N/A")
	}
}

func TestTicketStatusLabel(t *testing.T) {
	cases := map[domain.TicketStatus]string{
		domain.TicketStatusOpen:       "Open",
		domain.TicketStatusInProgress: "In Progress",
		domain.TicketStatusResolved:   "Resolved",
		domain.TicketStatusClosed:     "Closed",
		"escalated":                   "Escalated",
		"":                            "",
	}
	for in, want := range cases {
		if got := TicketStatusLabel(in); got != want {
			t.Fatalf("%q: got %q want %q", in, got, want)
		}
	}
}

func TestKebabCaseAndGreeting(t *testing.T) {
	if KebabCase("activeTickets") != "active-tickets" {
		t.Fatalf("unexpected kebab %q", KebabCase("activeTickets"))
	}
	if Greeting(9) != "Good Morning" || Greeting(12) != "Good Afternoon" || Greeting(17) != "Good Evening" {
		t.Fatalf("unexpected greetings")
	}
}
