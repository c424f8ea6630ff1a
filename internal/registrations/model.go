package registrations

import (
	"errors"
	"fmt"
	"time"
)

const StatusActive = "active"

var (
	ErrUnauthenticated = errors.New("you must be logged in to manage registrations")
	ErrAlreadyExists   = errors.New("already registered for this event")
	ErrNotFound        = errors.New("no registration found")
	ErrEventRequired   = errors.New("event id is required")
)

// Registration links a user to an event they intend to attend. Its
// document ID is the composite (user, event) key so the store itself
// enforces at most one active registration per pair. Cancellation deletes
// the document outright.
type Registration struct {
	ID            string    `json:"id" firestore:"-"`
	UserID        string    `json:"user_id" firestore:"userId"`
	EventID       string    `json:"event_id" firestore:"eventId"`
	UserName      string    `json:"user_name" firestore:"userName"`
	EventTitle    string    `json:"event_title" firestore:"eventTitle"`
	RegisteredAt  time.Time `json:"registered_at" firestore:"registeredAt"`
	PaymentID     string    `json:"payment_id,omitempty" firestore:"paymentId,omitempty"`
	PaymentStatus string    `json:"payment_status,omitempty" firestore:"paymentStatus,omitempty"`
	Status        string    `json:"status" firestore:"status"`
}

// DocID is the composite document key for a (user, event) pair.
func DocID(userID, eventID string) string {
	return fmt.Sprintf("%s_%s", userID, eventID)
}
