package events

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultPageSize matches the six-card grid of the catalogue UI.
const DefaultPageSize = 6

type SortMode string

const (
	SortByDate   SortMode = "date"   // calendar date, most recent event first
	SortByTitle  SortMode = "title"  // locale-aware title, ascending
	SortByRecent SortMode = "recent" // store-assigned creation time, newest first
)

// ParseSortMode maps a query-string value onto a SortMode, defaulting to
// SortByDate for anything unrecognised.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortByTitle:
		return SortByTitle
	case SortByRecent:
		return SortByRecent
	default:
		return SortByDate
	}
}

// Page is one slice of the filtered, sorted catalogue.
type Page struct {
	Events    []Event `json:"events"`
	Page      int     `json:"page"`
	PageCount int     `json:"page_count"`
	Total     int     `json:"total"`
}

// Filter returns the events whose title or description contains term,
// case-insensitively. An empty term keeps everything.
func Filter(all []Event, term string) []Event {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return all
	}

	out := make([]Event, 0, len(all))
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Title), term) ||
			strings.Contains(strings.ToLower(e.Description), term) {
			out = append(out, e)
		}
	}
	return out
}

// SortEvents orders the slice in place according to mode. The sort is
// stable so equal keys keep their fetch order.
func SortEvents(list []Event, mode SortMode) {
	switch mode {
	case SortByTitle:
		cl := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(list, func(i, j int) bool {
			return cl.CompareString(list[i].Title, list[j].Title) < 0
		})
	case SortByRecent:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		})
	default:
		sort.SliceStable(list, func(i, j int) bool {
			return calendarDate(list[i].Date).After(calendarDate(list[j].Date))
		})
	}
}

// Paginate slices the list into the requested page. Pages are 1-based;
// out-of-range pages clamp to the valid range so a shrinking filter never
// strands the caller on an empty page.
func Paginate(list []Event, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(list)
	pageCount := (total + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	}
	if pageCount > 0 && page > pageCount {
		page = pageCount
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Events:    list[start:end],
		Page:      page,
		PageCount: pageCount,
		Total:     total,
	}
}

func calendarDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
