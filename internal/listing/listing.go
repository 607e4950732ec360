// Package listing keeps list filters and pagination in URL search parameters.
package listing

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage       = 1
	DefaultSize       = 10
	DefaultReviewSize = 5
	StatusAll         = "all"
)

// Keys names the query parameters a list reads its state from.
type Keys struct {
	Page   string
	Size   string
	Status string
	Search string
}

var (
	// ListKeys are used by account, ticket and ride lists.
	ListKeys = Keys{Page: "page", Size: "size", Status: "status", Search: "search"}
	// ReviewKeys keep review pagination apart from the page's main list.
	ReviewKeys = Keys{Page: "reviewPage", Size: "reviewSize"}
)

// Params is the list state held in the query string.
type Params struct {
	Page   int    `json:"page"`
	Size   int    `json:"size"`
	Status string `json:"status"`
	Search string `json:"search"`
}

// Parse reads list state using ListKeys.
func Parse(values url.Values) Params {
	return ParseWith(values, ListKeys, DefaultSize)
}

// ParseReviews reads review pagination using ReviewKeys.
func ParseReviews(values url.Values) Params {
	return ParseWith(values, ReviewKeys, DefaultReviewSize)
}

// ParseWith reads list state. Missing, non-numeric or non-positive numbers
// fall back to the defaults.
func ParseWith(values url.Values, keys Keys, defaultSize int) Params {
	p := Params{
		Page:   positive(values.Get(keys.Page), DefaultPage),
		Size:   positive(values.Get(keys.Size), defaultSize),
		Status: StatusAll,
	}
	if keys.Status != "" {
		if s := strings.TrimSpace(values.Get(keys.Status)); s != "" {
			p.Status = s
		}
	}
	if keys.Search != "" {
		p.Search = values.Get(keys.Search)
	}
	return p
}

// StatusFilter returns the status to send upstream, empty for "all".
func (p Params) StatusFilter() string {
	if strings.EqualFold(p.Status, StatusAll) {
		return ""
	}
	return p.Status
}

// Apply returns a copy of values with updates merged in. A non-blank search
// or status resets pagination. Blank updates and a status of "all" remove
// their key.
func Apply(values url.Values, updates map[string]string) url.Values {
	return ApplyWith(values, ListKeys, updates)
}

// ApplyWith is Apply for an arbitrary key set.
func ApplyWith(values url.Values, keys Keys, updates map[string]string) url.Values {
	next := url.Values{}
	for k, v := range values {
		next[k] = append([]string(nil), v...)
	}

	if nonBlank(updates, keys.Search) || nonBlank(updates, keys.Status) {
		next.Del(keys.Page)
		next.Del(keys.Size)
	}

	for k, v := range updates {
		if strings.TrimSpace(v) == "" || (k == keys.Status && strings.EqualFold(v, StatusAll)) {
			next.Del(k)
			continue
		}
		next.Set(k, v)
	}
	return next
}

// PageChange returns the query for another page, or nil when it is the
// current one.
func PageChange(values url.Values, p Params, page int) url.Values {
	return PageChangeWith(values, ListKeys, p, page)
}

// PageChangeWith is PageChange for an arbitrary key set.
func PageChangeWith(values url.Values, keys Keys, p Params, page int) url.Values {
	if page == p.Page {
		return nil
	}
	return ApplyWith(values, keys, map[string]string{
		keys.Page: strconv.Itoa(page),
		keys.Size: strconv.Itoa(p.Size),
	})
}

// SizeChange returns the query for a new page size starting at page 1, or
// nil when the size is unchanged.
func SizeChange(values url.Values, p Params, size int) url.Values {
	return SizeChangeWith(values, ListKeys, p, size)
}

// SizeChangeWith is SizeChange for an arbitrary key set.
func SizeChangeWith(values url.Values, keys Keys, p Params, size int) url.Values {
	if size == p.Size {
		return nil
	}
	return ApplyWith(values, keys, map[string]string{
		keys.Page: "1",
		keys.Size: strconv.Itoa(size),
	})
}

// Links are ready-made query strings for navigating a list.
type Links struct {
	Self     string `json:"self"`
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
}

// BuildLinks derives navigation links from the upstream page numbers. A zero
// next or previous page yields no link.
func BuildLinks(path string, values url.Values, keys Keys, p Params, next, previous int) Links {
	links := Links{Self: withQuery(path, values)}
	if next > 0 {
		if q := PageChangeWith(values, keys, p, next); q != nil {
			links.Next = withQuery(path, q)
		}
	}
	if previous > 0 {
		if q := PageChangeWith(values, keys, p, previous); q != nil {
			links.Previous = withQuery(path, q)
		}
	}
	return links
}

func withQuery(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}

func nonBlank(updates map[string]string, key string) bool {
	if key == "" {
		return false
	}
	v, ok := updates[key]
	return ok && strings.TrimSpace(v) != ""
}

func positive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
