package events

import (
	"errors"
	"time"
)

// DateLayout is the calendar-date format events are stored with.
const DateLayout = "2006-01-02"

var (
	ErrNotFound   = errors.New("event not found")
	ErrValidation = errors.New("validation failed")
)

// Event is a single catalogue listing. Firestore assigns the document ID
// and the creation timestamp; everything else is author-supplied.
type Event struct {
	ID          string    `json:"id" firestore:"-"`
	Title       string    `json:"title" firestore:"title"`
	Date        string    `json:"date" firestore:"date"`
	Description string    `json:"description" firestore:"description"`
	ImageURL    string    `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	Location    string    `json:"location,omitempty" firestore:"location,omitempty"`
	Price       *float64  `json:"price,omitempty" firestore:"price,omitempty"`
	EventURL    string    `json:"event_url,omitempty" firestore:"eventUrl,omitempty"`
	CreatedBy   string    `json:"created_by" firestore:"createdBy"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}

// Free reports whether the event costs nothing (no price set, or price 0).
func (e *Event) Free() bool {
	return e.Price == nil || *e.Price == 0
}

// Draft is the payload for creating a new event.
type Draft struct {
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Location    string   `json:"location"`
	Price       *float64 `json:"price"`
	EventURL    string   `json:"event_url"`
	CreatedBy   string   `json:"created_by"`
}

// UpdateOp says what happens to one field during an edit.
type UpdateOp int

const (
	Keep UpdateOp = iota
	Set
	Clear
)

// StringUpdate is a tagged update value for one string field.
type StringUpdate struct {
	Op    UpdateOp
	Value string
}

// FloatUpdate is a tagged update value for one numeric field.
type FloatUpdate struct {
	Op    UpdateOp
	Value float64
}

// Patch is a partial event update. Required fields (title, date,
// description) may only be kept or set; the optional fields may also be
// cleared, which removes them from the stored document instead of writing
// an empty value.
type Patch struct {
	Title       StringUpdate
	Date        StringUpdate
	Description StringUpdate
	ImageURL    StringUpdate
	Location    StringUpdate
	EventURL    StringUpdate
	CreatedBy   StringUpdate
	Price       FloatUpdate
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	for _, u := range []StringUpdate{p.Title, p.Date, p.Description, p.ImageURL, p.Location, p.EventURL, p.CreatedBy} {
		if u.Op != Keep {
			return false
		}
	}
	return p.Price.Op == Keep
}
