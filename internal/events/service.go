package events

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"
)

// Store is the event document gateway the service runs against.
type Store interface {
	List(ctx context.Context) ([]Event, error)
	Get(ctx context.Context, id string) (*Event, error)
	Create(ctx context.Context, e Event) (string, error)
	Update(ctx context.Context, id string, p Patch) error
	Delete(ctx context.Context, id string) error
}

// Cache is the optional catalogue snapshot cache.
type Cache interface {
	Get(ctx context.Context) ([]Event, error)
	Set(ctx context.Context, events []Event) error
	Invalidate(ctx context.Context) error
}

// Query selects one catalogue page.
type Query struct {
	Search   string
	Sort     SortMode
	Page     int
	PageSize int
}

// Service owns catalogue reads and admin mutations of the event
// collection. The cache may be nil, in which case every read hits the
// store.
type Service struct {
	store Store
	cache Cache
}

func NewService(store Store, cache Cache) *Service {
	return &Service{store: store, cache: cache}
}

// Catalogue returns the filtered, sorted, paginated view of all events.
func (s *Service) Catalogue(ctx context.Context, q Query) (*Page, error) {
	all, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := Filter(all, q.Search)
	SortEvents(filtered, q.Sort)
	page := Paginate(filtered, q.Page, q.PageSize)
	return &page, nil
}

// Get returns one event by ID.
func (s *Service) Get(ctx context.Context, id string) (*Event, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}
	return s.store.Get(ctx, id)
}

// Create validates the draft and inserts it. The stored document gets a
// server-assigned creation timestamp; callers refetch the catalogue
// rather than patching local state.
func (s *Service) Create(ctx context.Context, d Draft) (*Event, error) {
	e, err := draftToEvent(d)
	if err != nil {
		return nil, err
	}

	id, err := s.store.Create(ctx, *e)
	if err != nil {
		return nil, err
	}
	e.ID = id

	s.invalidate(ctx)
	return e, nil
}

// Update applies a tagged partial update to an existing event.
func (s *Service) Update(ctx context.Context, id string, p Patch) error {
	if err := validatePatch(p); err != nil {
		return err
	}
	if p.Empty() {
		return nil
	}

	if err := s.store.Update(ctx, id, p); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// Remove deletes an event. Callers owning a detail view of the event are
// responsible for navigating away afterwards.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// RefreshCache re-reads the full collection into the cache. Used by the
// nightly warmer; a nil cache makes this a no-op.
func (s *Service) RefreshCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, all)
}

func (s *Service) fetchAll(ctx context.Context) ([]Event, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("catalogue cache read failed, falling back to store: %v", err)
		}
	}

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, all); err != nil {
			log.Printf("catalogue cache write failed: %v", err)
		}
	}
	return all, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("catalogue cache invalidation failed: %v", err)
	}
}

func draftToEvent(d Draft) (*Event, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Date = strings.TrimSpace(d.Date)
	d.Description = strings.TrimSpace(d.Description)
	d.Location = strings.TrimSpace(d.Location)
	d.CreatedBy = strings.TrimSpace(d.CreatedBy)

	switch {
	case d.Title == "":
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	case d.Date == "":
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	case d.Description == "":
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	case d.Location == "":
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	case d.CreatedBy == "":
		return nil, fmt.Errorf("%w: organiser name is required", ErrValidation)
	}

	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if d.Price != nil && *d.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if err := checkURL(d.ImageURL); err != nil {
		return nil, fmt.Errorf("%w: image_url is not a valid URL", ErrValidation)
	}
	if err := checkURL(d.EventURL); err != nil {
		return nil, fmt.Errorf("%w: event_url is not a valid URL", ErrValidation)
	}

	return &Event{
		Title:       d.Title,
		Date:        d.Date,
		Description: d.Description,
		ImageURL:    strings.TrimSpace(d.ImageURL),
		Location:    d.Location,
		Price:       d.Price,
		EventURL:    strings.TrimSpace(d.EventURL),
		CreatedBy:   d.CreatedBy,
	}, nil
}

func validatePatch(p Patch) error {
	required := map[string]StringUpdate{
		"title":       p.Title,
		"date":        p.Date,
		"description": p.Description,
	}
	for name, u := range required {
		if u.Op == Clear {
			return fmt.Errorf("%w: %s cannot be cleared", ErrValidation, name)
		}
		if u.Op == Set && strings.TrimSpace(u.Value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, name)
		}
	}

	if p.Date.Op == Set {
		if _, err := time.Parse(DateLayout, strings.TrimSpace(p.Date.Value)); err != nil {
			return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
		}
	}
	if p.Price.Op == Set && p.Price.Value < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if p.ImageURL.Op == Set {
		if err := checkURL(p.ImageURL.Value); err != nil {
			return fmt.Errorf("%w: image_url is not a valid URL", ErrValidation)
		}
	}
	if p.EventURL.Op == Set {
		if err := checkURL(p.EventURL.Value); err != nil {
			return fmt.Errorf("%w: event_url is not a valid URL", ErrValidation)
		}
	}
	return nil
}

func checkURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return nil
}
