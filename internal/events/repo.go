package events

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Collection is the Firestore collection holding event documents.
const Collection = "events"

// Repo is the Firestore gateway for event documents.
type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

// List fetches the full event collection.
func (r *Repo) List(ctx context.Context) ([]Event, error) {
	iter := r.client.Collection(Collection).Documents(ctx)
	defer iter.Stop()

	out := make([]Event, 0, 32)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}

		var e Event
		if err := doc.DataTo(&e); err != nil {
			return nil, fmt.Errorf("decode event %s: %w", doc.Ref.ID, err)
		}
		e.ID = doc.Ref.ID
		out = append(out, e)
	}
	return out, nil
}

// Get fetches a single event or ErrNotFound.
func (r *Repo) Get(ctx context.Context, id string) (*Event, error) {
	doc, err := r.client.Collection(Collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	var e Event
	if err := doc.DataTo(&e); err != nil {
		return nil, fmt.Errorf("decode event %s: %w", id, err)
	}
	e.ID = doc.Ref.ID
	return &e, nil
}

// Create inserts a new event document and returns the store-assigned ID.
// CreatedAt is filled in server-side via the serverTimestamp tag.
func (r *Repo) Create(ctx context.Context, e Event) (string, error) {
	ref, _, err := r.client.Collection(Collection).Add(ctx, e)
	if err != nil {
		return "", fmt.Errorf("create event: %w", err)
	}
	return ref.ID, nil
}

// Update applies a tagged patch. Cleared fields are deleted from the
// document rather than set to an empty value.
func (r *Repo) Update(ctx context.Context, id string, p Patch) error {
	updates := buildUpdates(p)
	if len(updates) == 0 {
		return nil
	}

	_, err := r.client.Collection(Collection).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// Delete removes an event document. Deleting an ID that does not exist
// reports ErrNotFound instead of silently succeeding.
func (r *Repo) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(Collection).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		if c := status.Code(err); c == codes.NotFound || c == codes.FailedPrecondition {
			return ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func buildUpdates(p Patch) []firestore.Update {
	var updates []firestore.Update

	str := func(path string, u StringUpdate) {
		switch u.Op {
		case Set:
			updates = append(updates, firestore.Update{Path: path, Value: u.Value})
		case Clear:
			updates = append(updates, firestore.Update{Path: path, Value: firestore.Delete})
		}
	}

	str("title", p.Title)
	str("date", p.Date)
	str("description", p.Description)
	str("imageUrl", p.ImageURL)
	str("location", p.Location)
	str("eventUrl", p.EventURL)
	str("createdBy", p.CreatedBy)

	switch p.Price.Op {
	case Set:
		updates = append(updates, firestore.Update{Path: "price", Value: p.Price.Value})
	case Clear:
		updates = append(updates, firestore.Update{Path: "price", Value: firestore.Delete})
	}

	return updates
}
