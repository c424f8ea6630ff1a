package events

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []Event {
	return []Event{
		{ID: "1", Title: "Jazz Night", Description: "Live music downtown", Date: "2025-10-01", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Title: "art fair", Description: "Local artists", Date: "2025-09-15", CreatedAt: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)},
		{ID: "3", Title: "Hackathon", Description: "48h of code and music", Date: "2025-12-05", CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "4", Title: "Book Club", Description: "Monthly meetup", Date: "2025-09-15", CreatedAt: time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)},
	}
}

func TestFilter(t *testing.T) {
	all := sampleEvents()

	t.Run("matches title or description case-insensitively", func(t *testing.T) {
		got := Filter(all, "MUSIC")
		require.Len(t, got, 2)

		for _, e := range got {
			matched := strings.Contains(strings.ToLower(e.Title), "music") ||
				strings.Contains(strings.ToLower(e.Description), "music")
			assert.True(t, matched, "event %s should contain the term", e.ID)
		}
	})

	t.Run("excludes non-matching events", func(t *testing.T) {
		got := Filter(all, "music")
		for _, e := range got {
			assert.NotEqual(t, "2", e.ID)
			assert.NotEqual(t, "4", e.ID)
		}
	})

	t.Run("empty term keeps everything", func(t *testing.T) {
		assert.Len(t, Filter(all, ""), len(all))
		assert.Len(t, Filter(all, "   "), len(all))
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		assert.Empty(t, Filter(all, "zzzzz"))
	})
}

func TestSortEvents(t *testing.T) {
	t.Run("by title is case-insensitive ascending", func(t *testing.T) {
		list := sampleEvents()
		SortEvents(list, SortByTitle)

		got := make([]string, len(list))
		for i, e := range list {
			got[i] = e.Title
		}
		assert.Equal(t, []string{"art fair", "Book Club", "Hackathon", "Jazz Night"}, got)
	})

	t.Run("by date is calendar date descending", func(t *testing.T) {
		list := sampleEvents()
		SortEvents(list, SortByDate)

		for i := 1; i < len(list); i++ {
			prev := calendarDate(list[i-1].Date)
			cur := calendarDate(list[i].Date)
			assert.False(t, cur.After(prev), "dates must not increase")
		}
		assert.Equal(t, "3", list[0].ID)
	})

	t.Run("by date is stable for equal dates", func(t *testing.T) {
		list := sampleEvents()
		SortEvents(list, SortByDate)

		// Events 2 and 4 share a date and must keep their input order.
		var shared []string
		for _, e := range list {
			if e.Date == "2025-09-15" {
				shared = append(shared, e.ID)
			}
		}
		assert.Equal(t, []string{"2", "4"}, shared)
	})

	t.Run("by recent is creation time descending", func(t *testing.T) {
		list := sampleEvents()
		SortEvents(list, SortByRecent)

		got := make([]string, len(list))
		for i, e := range list {
			got[i] = e.ID
		}
		assert.Equal(t, []string{"4", "2", "3", "1"}, got)
	})
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortByTitle, ParseSortMode("title"))
	assert.Equal(t, SortByRecent, ParseSortMode("recent"))
	assert.Equal(t, SortByDate, ParseSortMode("date"))
	assert.Equal(t, SortByDate, ParseSortMode(""))
	assert.Equal(t, SortByDate, ParseSortMode("bogus"))
}

func TestPaginate(t *testing.T) {
	makeList := func(n int) []Event {
		list := make([]Event, n)
		for i := range list {
			list[i] = Event{ID: fmt.Sprintf("e%02d", i)}
		}
		return list
	}

	t.Run("page count is ceil of total over page size", func(t *testing.T) {
		for _, tc := range []struct {
			total, pages int
		}{
			{0, 0}, {1, 1}, {6, 1}, {7, 2}, {12, 2}, {13, 3},
		} {
			page := Paginate(makeList(tc.total), 1, DefaultPageSize)
			assert.Equal(t, tc.pages, page.PageCount, "total=%d", tc.total)
			assert.Equal(t, tc.total, page.Total)
		}
	})

	t.Run("concatenating pages reproduces the list exactly once", func(t *testing.T) {
		list := makeList(13)
		first := Paginate(list, 1, DefaultPageSize)

		var seen []Event
		for p := 1; p <= first.PageCount; p++ {
			seen = append(seen, Paginate(list, p, DefaultPageSize).Events...)
		}
		require.Len(t, seen, len(list))
		for i := range list {
			assert.Equal(t, list[i].ID, seen[i].ID)
		}
	})

	t.Run("out of range pages clamp", func(t *testing.T) {
		list := makeList(7)

		page := Paginate(list, 99, DefaultPageSize)
		assert.Equal(t, 2, page.Page)
		assert.Len(t, page.Events, 1)

		page = Paginate(list, 0, DefaultPageSize)
		assert.Equal(t, 1, page.Page)
		assert.Len(t, page.Events, DefaultPageSize)
	})

	t.Run("empty list yields empty first page", func(t *testing.T) {
		page := Paginate(nil, 1, DefaultPageSize)
		assert.Equal(t, 0, page.PageCount)
		assert.Empty(t, page.Events)
	})
}
