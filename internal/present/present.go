// Package present shapes upstream values for display in the console.
package present

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/flo-mobility/admin-console/internal/domain"
)

const (
	InvalidDate  = "Invalid date"
	InvalidTime  = "Invalid time"
	NotAvailable = "N/A"
)

var (
	inputLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.000Z07:00",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	titleCaser = cases.Title(language.English)
	upperCaser = cases.Upper(language.English)
	camelHump  = regexp.MustCompile(`([a-z])([A-Z])`)
)

// ParseTime accepts the timestamp shapes the Flo API produces.
func ParseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders "2 Jan, 2006". Unparseable input is returned as is.
func FormatDate(raw string) string {
	t, ok := ParseTime(raw)
	if !ok {
		return raw
	}
	return t.Format("2 Jan, 2006")
}

// FormatTicketDate renders "02 Jan 2006".
func FormatTicketDate(raw string) string {
	t, ok := ParseTime(raw)
	if !ok {
		return InvalidDate
	}
	return t.Format("02 Jan 2006")
}

// FormatRideDate renders "02-01-2006"; a missing date is "N/A".
func FormatRideDate(raw *string) string {
	if raw == nil || *raw == "" {
		return NotAvailable
	}
	t, ok := ParseTime(*raw)
	if !ok {
		return InvalidDate
	}
	return t.Format("02-01-2006")
}

// FormatRideTime renders "03:04 PM"; a missing time is "N/A".
func FormatRideTime(raw *string) string {
	if raw == nil || *raw == "" {
		return NotAvailable
	}
	t, ok := ParseTime(*raw)
	if !ok {
		return InvalidTime
	}
	return t.Format("03:04 PM")
}

// TicketStatusLabel returns the human label of a ticket status.
func TicketStatusLabel(status domain.TicketStatus) string {
	switch status {
	case domain.TicketStatusOpen, domain.TicketStatusInProgress, domain.TicketStatusResolved, domain.TicketStatusClosed:
		return titleCaser.String(strings.ReplaceAll(string(status), "_", " "))
	}
	s := string(status)
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return upperCaser.String(s[:size]) + s[size:]
}

// KebabCase turns "activeTickets" into "active-tickets".
func KebabCase(s string) string {
	return strings.ToLower(camelHump.ReplaceAllString(s, "$1-$2"))
}

// Greeting picks the salutation for the hour of day.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good Morning"
	case hour < 17:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}
