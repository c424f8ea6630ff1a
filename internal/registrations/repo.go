package registrations

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Collection is the Firestore collection of registration documents.
const Collection = "registrations"

type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

// Create inserts the registration under its composite key. The
// conditional write is the uniqueness guard: when two near-simultaneous
// attempts race, the store commits exactly one and the loser gets
// ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, reg Registration) error {
	id := DocID(reg.UserID, reg.EventID)
	_, err := r.client.Collection(Collection).Doc(id).Create(ctx, reg)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

// Get fetches the registration for a (user, event) pair, or ErrNotFound.
func (r *Repo) Get(ctx context.Context, userID, eventID string) (*Registration, error) {
	doc, err := r.client.Collection(Collection).Doc(DocID(userID, eventID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}

	var reg Registration
	if err := doc.DataTo(&reg); err != nil {
		return nil, fmt.Errorf("decode registration %s: %w", doc.Ref.ID, err)
	}
	reg.ID = doc.Ref.ID
	return &reg, nil
}

// Remove deletes the registration for a (user, event) pair. The
// read-and-delete runs in a transaction so a concurrent cancel cannot
// make both callers believe they removed it.
func (r *Repo) Remove(ctx context.Context, userID, eventID string) error {
	ref := r.client.Collection(Collection).Doc(DocID(userID, eventID))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Delete(ref)
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("remove registration: %w", err)
	}
	return nil
}

// ListByUser returns all of a user's registrations, oldest first.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Registration, error) {
	iter := r.client.Collection(Collection).
		Where("userId", "==", userID).
		OrderBy("registeredAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	out := make([]Registration, 0, 8)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list registrations: %w", err)
		}

		var reg Registration
		if err := doc.DataTo(&reg); err != nil {
			return nil, fmt.Errorf("decode registration %s: %w", doc.Ref.ID, err)
		}
		reg.ID = doc.Ref.ID
		out = append(out, reg)
	}
	return out, nil
}
