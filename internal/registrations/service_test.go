package registrations

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventconnect-app/go-events-backend/internal/users"
)

var _ Store = (*Repo)(nil)

// fakeStore mimics the store's contract: conditional create where exactly
// one writer wins a composite key, and listing in registration order.
type fakeStore struct {
	mu    sync.Mutex
	docs  map[string]Registration
	order []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string]Registration)}
}

func (s *fakeStore) Create(ctx context.Context, reg Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := DocID(reg.UserID, reg.EventID)
	if _, ok := s.docs[id]; ok {
		return ErrAlreadyExists
	}
	s.docs[id] = reg
	s.order = append(s.order, id)
	return nil
}

func (s *fakeStore) Get(ctx context.Context, userID, eventID string) (*Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.docs[DocID(userID, eventID)]
	if !ok {
		return nil, ErrNotFound
	}
	return &reg, nil
}

func (s *fakeStore) Remove(ctx context.Context, userID, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := DocID(userID, eventID)
	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

func (s *fakeStore) ListByUser(ctx context.Context, userID string) ([]Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Registration
	for _, id := range s.order {
		if reg, ok := s.docs[id]; ok && reg.UserID == userID {
			out = append(out, reg)
		}
	}
	return out, nil
}

func testUser() *users.Profile {
	return &users.Profile{UID: "u1", Email: "u1@example.com", DisplayName: "Ada", Role: users.RoleUser}
}

func TestRegisterAndCancelRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore())
	user := testUser()

	reg, err := svc.Register(ctx, user, "ev1", "Demo")
	require.NoError(t, err)
	assert.Equal(t, "u1_ev1", reg.ID)
	assert.Equal(t, "Ada", reg.UserName)
	assert.Equal(t, "Demo", reg.EventTitle)
	assert.Equal(t, StatusActive, reg.Status)

	registered, err := svc.IsRegistered(ctx, user, "ev1")
	require.NoError(t, err)
	assert.True(t, registered)

	require.NoError(t, svc.Cancel(ctx, user, "ev1"))

	registered, err = svc.IsRegistered(ctx, user, "ev1")
	require.NoError(t, err)
	assert.False(t, registered, "cancel must return the pair to unregistered")
}

func TestCancelWithoutRegistration(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore())
	user := testUser()

	err := svc.Cancel(ctx, user, "ev1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Same after a register/cancel cycle: the second cancel fails too.
	_, err = svc.Register(ctx, user, "ev1", "Demo")
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, user, "ev1"))

	err = svc.Cancel(ctx, user, "ev1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateRegistrationRefused(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore())
	user := testUser()

	_, err := svc.Register(ctx, user, "ev1", "Demo")
	require.NoError(t, err)

	_, err = svc.Register(ctx, user, "ev1", "Demo")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestConcurrentRegistrationsOneWinner(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore())
	user := testUser()

	const attempts = 16
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Register(ctx, user, "ev1", "Demo")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var wins, dupes int
	for err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrAlreadyExists):
			dupes++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins, "the store's conditional create admits exactly one writer")
	assert.Equal(t, attempts-1, dupes)
}

func TestUnauthenticatedCallersRefused(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore())

	_, err := svc.Register(ctx, nil, "ev1", "Demo")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	err = svc.Cancel(ctx, nil, "ev1")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.IsRegistered(ctx, nil, "ev1")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.ListMine(ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRegisterDefaultsDisplayName(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore())

	user := testUser()
	user.DisplayName = "  "

	reg, err := svc.Register(ctx, user, "ev1", "Demo")
	require.NoError(t, err)
	assert.Equal(t, "Anonymous User", reg.UserName)
}

func TestListMine(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)
	user := testUser()

	_, err := svc.Register(ctx, user, "ev1", "One")
	require.NoError(t, err)
	_, err = svc.Register(ctx, user, "ev2", "Two")
	require.NoError(t, err)

	other := &users.Profile{UID: "u2", DisplayName: "Bob"}
	_, err = svc.Register(ctx, other, "ev1", "One")
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, user)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, reg := range mine {
		assert.Equal(t, "u1", reg.UserID)
	}
	// Oldest registration first.
	assert.Equal(t, "ev1", mine[0].EventID)
	assert.Equal(t, "ev2", mine[1].EventID)
}
