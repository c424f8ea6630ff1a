package calendar

import (
	"fmt"
	"net/url"
	"time"

	"github.com/eventconnect-app/go-events-backend/internal/events"
)

const renderURL = "https://calendar.google.com/calendar/render"

// defaultDuration is assumed for every listing; events carry only a
// calendar date.
const defaultDuration = 2 * time.Hour

// DeepLink builds a prefilled Google Calendar "add event" URL. No API
// calls, no token handling; opening the link is the whole integration.
func DeepLink(e *events.Event) (string, error) {
	start, err := time.Parse(events.DateLayout, e.Date)
	if err != nil {
		return "", fmt.Errorf("event has no valid date: %w", err)
	}
	end := start.Add(defaultDuration)

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", e.Title)
	q.Set("details", e.Description)
	q.Set("dates", fmt.Sprintf("%s/%s", calendarStamp(start), calendarStamp(end)))
	if e.Location != "" {
		q.Set("location", e.Location)
	}

	return renderURL + "?" + q.Encode(), nil
}

func calendarStamp(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}
