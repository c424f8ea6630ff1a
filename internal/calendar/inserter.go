package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/eventconnect-app/go-events-backend/config"
	"github.com/eventconnect-app/go-events-backend/internal/events"
)

// ErrNotConfigured means the OAuth client ID or API key is missing; the
// insert variant fails closed without them.
var ErrNotConfigured = errors.New("calendar export is not configured")

// Inserter is the OAuth variant of the calendar export: given a
// consent-obtained access token it inserts the event into the caller's
// primary calendar and returns the created event's web link. Tokens are
// never persisted; each session supplies its own.
type Inserter struct {
	clientID string
	apiKey   string
}

func NewInserter(cfg config.CalendarConfig) (*Inserter, error) {
	if cfg.OAuthClientID == "" || cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	return &Inserter{clientID: cfg.OAuthClientID, apiKey: cfg.APIKey}, nil
}

// Insert adds the event to the token owner's primary calendar.
func (i *Inserter) Insert(ctx context.Context, accessToken string, e *events.Event) (string, error) {
	if accessToken == "" {
		return "", errors.New("access token is required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := gcal.NewService(ctx,
		option.WithTokenSource(ts),
		option.WithScopes(gcal.CalendarEventsScope))
	if err != nil {
		return "", fmt.Errorf("create calendar service: %w", err)
	}

	item, err := toCalendarEvent(e)
	if err != nil {
		return "", err
	}

	created, err := svc.Events.Insert("primary", item).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar event: %w", err)
	}
	return created.HtmlLink, nil
}

func toCalendarEvent(e *events.Event) (*gcal.Event, error) {
	start, err := time.Parse(events.DateLayout, e.Date)
	if err != nil {
		return nil, fmt.Errorf("event has no valid date: %w", err)
	}
	end := start.Add(defaultDuration)

	return &gcal.Event{
		Summary:     e.Title,
		Description: e.Description,
		Location:    e.Location,
		Start: &gcal.EventDateTime{
			DateTime: start.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcal.EventDateTime{
			DateTime: end.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
	}, nil
}
