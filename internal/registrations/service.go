package registrations

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eventconnect-app/go-events-backend/internal/users"
)

// Store is the registration document gateway.
type Store interface {
	Create(ctx context.Context, reg Registration) error
	Get(ctx context.Context, userID, eventID string) (*Registration, error)
	Remove(ctx context.Context, userID, eventID string) error
	ListByUser(ctx context.Context, userID string) ([]Registration, error)
}

// Service owns the per-(user, event) registration workflow. The two
// states are "registered" and "unregistered"; Register and Cancel are the
// transitions between them.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates the registration, snapshotting the user's display name
// and the event title. The store's conditional create is the uniqueness
// guard, so a duplicate attempt fails with ErrAlreadyExists no matter how
// closely it races another.
func (s *Service) Register(ctx context.Context, user *users.Profile, eventID, eventTitle string) (*Registration, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	if strings.TrimSpace(eventID) == "" {
		return nil, ErrEventRequired
	}

	name := strings.TrimSpace(user.DisplayName)
	if name == "" {
		name = "Anonymous User"
	}

	reg := Registration{
		ID:           DocID(user.UID, eventID),
		UserID:       user.UID,
		EventID:      eventID,
		UserName:     name,
		EventTitle:   eventTitle,
		RegisteredAt: time.Now().UTC(),
		Status:       StatusActive,
	}

	if err := s.store.Create(ctx, reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Cancel deletes the user's registration for the event. A second cancel
// without an intervening register fails with ErrNotFound.
func (s *Service) Cancel(ctx context.Context, user *users.Profile, eventID string) error {
	if user == nil {
		return ErrUnauthenticated
	}
	if strings.TrimSpace(eventID) == "" {
		return ErrEventRequired
	}
	return s.store.Remove(ctx, user.UID, eventID)
}

// IsRegistered is the point lookup behind the register/cancel toggle.
func (s *Service) IsRegistered(ctx context.Context, user *users.Profile, eventID string) (bool, error) {
	if user == nil {
		return false, ErrUnauthenticated
	}

	_, err := s.store.Get(ctx, user.UID, eventID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

// ListMine returns all of the user's registrations.
func (s *Service) ListMine(ctx context.Context, user *users.Profile) ([]Registration, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return s.store.ListByUser(ctx, user.UID)
}
