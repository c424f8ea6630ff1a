package users

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Collection is the Firestore collection of user profiles, keyed by the
// identity service's UID.
const Collection = "users"

type Repo struct {
	client *firestore.Client
}

func NewRepo(client *firestore.Client) *Repo {
	return &Repo{client: client}
}

// Get fetches a profile by UID.
func (r *Repo) Get(ctx context.Context, uid string) (*Profile, error) {
	doc, err := r.client.Collection(Collection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", uid, err)
	}

	var p Profile
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", uid, err)
	}
	p.UID = doc.Ref.ID
	return &p, nil
}

// Create writes a new profile document. The conditional write makes
// first-login provisioning atomic: if the document already exists the
// store refuses and ErrAlreadyExists is returned.
func (r *Repo) Create(ctx context.Context, p Profile) error {
	_, err := r.client.Collection(Collection).Doc(p.UID).Create(ctx, p)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create user %s: %w", p.UID, err)
	}
	return nil
}

// Ensure provisions the profile on first login and returns the stored
// profile either way. Losing the create race is fine: the winner's
// document is adopted.
func (r *Repo) Ensure(ctx context.Context, seed Profile) (*Profile, error) {
	err := r.Create(ctx, seed)
	if err == nil {
		return &seed, nil
	}
	if !errors.Is(err, ErrAlreadyExists) {
		return nil, err
	}

	existing, err := r.Get(ctx, seed.UID)
	if err != nil {
		return nil, err
	}

	r.touchLogin(ctx, seed.UID)
	existing.LastLoginAt = time.Now().UTC()
	return existing, nil
}

func (r *Repo) touchLogin(ctx context.Context, uid string) {
	_, err := r.client.Collection(Collection).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "lastLoginAt", Value: time.Now().UTC()},
	})
	if err != nil {
		// Not worth failing the request over.
		log.Printf("update lastLoginAt for %s: %v", uid, err)
	}
}
