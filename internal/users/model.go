package users

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
)

// Profile is the per-user document stored alongside the identity
// service's account. The role is never elevated through the API; admins
// are promoted out-of-band.
type Profile struct {
	UID         string      `json:"uid" firestore:"uid"`
	Email       string      `json:"email" firestore:"email"`
	DisplayName string      `json:"display_name" firestore:"displayName"`
	PhotoURL    string      `json:"photo_url,omitempty" firestore:"photoUrl,omitempty"`
	Role        string      `json:"role" firestore:"role"`
	CreatedAt   time.Time   `json:"created_at" firestore:"createdAt"`
	LastLoginAt time.Time   `json:"last_login_at" firestore:"lastLoginAt"`
	Preferences Preferences `json:"preferences" firestore:"preferences"`
	SavedEvents []string    `json:"saved_events" firestore:"savedEvents"`
}

type Preferences struct {
	Notifications bool     `json:"notifications" firestore:"notifications"`
	Categories    []string `json:"categories" firestore:"categories"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// NewProfile builds a default first-login profile for an identity-service
// account.
func NewProfile(uid, email, displayName, photoURL string) Profile {
	now := time.Now().UTC()
	return Profile{
		UID:         uid,
		Email:       email,
		DisplayName: displayName,
		PhotoURL:    photoURL,
		Role:        RoleUser,
		CreatedAt:   now,
		LastLoginAt: now,
		Preferences: Preferences{Notifications: true, Categories: []string{}},
		SavedEvents: []string{},
	}
}
