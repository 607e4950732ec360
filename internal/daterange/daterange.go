// Package daterange parses the startDate/endDate window used by the
// dashboard and activity views.
package daterange

import (
	"strings"
	"time"

	apperrors "github.com/flo-mobility/admin-console/pkg/util/errorutil"
)

// Layout is the wire format of range bounds.
const Layout = "2006-01-02"

// Range is an inclusive day window.
type Range struct {
	Start time.Time
	End   time.Time
}

// Default returns the window from one year before now up to now.
func Default(now time.Time) Range {
	end := truncate(now)
	return Range{Start: end.AddDate(-1, 0, 0), End: end}
}

// Parse reads the bounds. A missing bound falls back to its default; a start
// after the end is rejected.
func Parse(startRaw, endRaw string, now time.Time) (Range, error) {
	r := Default(now)
	if s := strings.TrimSpace(startRaw); s != "" {
		t, err := time.Parse(Layout, s)
		if err != nil {
			return Range{}, apperrors.NewValidationError("invalid startDate", map[string]any{"startDate": s})
		}
		r.Start = t
	}
	if s := strings.TrimSpace(endRaw); s != "" {
		t, err := time.Parse(Layout, s)
		if err != nil {
			return Range{}, apperrors.NewValidationError("invalid endDate", map[string]any{"endDate": s})
		}
		r.End = t
	}
	if r.Start.After(r.End) {
		return Range{}, apperrors.NewValidationError("start date cannot be after end date", map[string]any{
			"startDate": r.StartString(),
			"endDate":   r.EndString(),
		})
	}
	return r, nil
}

// StartString formats the lower bound.
func (r Range) StartString() string { return r.Start.Format(Layout) }

// EndString formats the upper bound.
func (r Range) EndString() string { return r.End.Format(Layout) }

func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
