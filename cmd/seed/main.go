// Seeding tool: populates Firestore with synthetic events and demo users
// through the same gateway types the API uses. Intended for local and
// staging projects only.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"

	"github.com/eventconnect-app/go-events-backend/config"
	"github.com/eventconnect-app/go-events-backend/internal/auth"
	"github.com/eventconnect-app/go-events-backend/internal/events"
	"github.com/eventconnect-app/go-events-backend/internal/users"
)

var (
	titles = []string{
		"Tech Meetup", "Design Workshop", "Startup Pitch Night", "Open Mic",
		"Community Hackathon", "Photography Walk", "Book Club", "Yoga in the Park",
		"Charity Run", "Board Game Evening", "Live Jazz Session", "Career Fair",
	}
	locations = []string{
		"Hall A", "Community Centre", "Riverside Park", "The Old Library",
		"Innovation Hub", "Main Auditorium", "Rooftop Terrace",
	}
)

func main() {
	eventCount := flag.Int("events", 24, "number of synthetic events to create")
	userCount := flag.Int("users", 5, "number of demo user profiles to create")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	authClient, fsClient, err := auth.InitializeFirebase(ctx, cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer fsClient.Close()

	if err := seedAdmin(ctx, authClient, fsClient); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := seedUsers(ctx, fsClient, *userCount); err != nil {
		log.Fatalf("seed users: %v", err)
	}
	if err := seedEvents(ctx, fsClient, *eventCount); err != nil {
		log.Fatalf("seed events: %v", err)
	}

	log.Printf("seeded %d events and %d demo users", *eventCount, *userCount)
}

// seedAdmin creates the admin account named by ADMIN_EMAIL/ADMIN_PASSWORD
// and writes its profile with the admin role. Roles are otherwise never
// set in-app, so this is the only supported promotion path besides the
// Firebase console.
func seedAdmin(ctx context.Context, authClient *fbauth.Client, fs *firestore.Client) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	record, err := authClient.CreateUser(ctx, (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName("EventConnect Admin"))
	if err != nil {
		// The account may exist from a previous run; reuse it.
		existing, lookupErr := authClient.GetUserByEmail(ctx, email)
		if lookupErr != nil {
			return fmt.Errorf("create admin account: %w", err)
		}
		record = existing
	}

	profile := users.NewProfile(record.UID, email, "EventConnect Admin", "")
	profile.Role = users.RoleAdmin

	_, err = fs.Collection(users.Collection).Doc(record.UID).Set(ctx, profile)
	if err != nil {
		return fmt.Errorf("write admin profile: %w", err)
	}

	log.Printf("admin account ready: %s", email)
	return nil
}

func seedUsers(ctx context.Context, fs *firestore.Client, n int) error {
	bw := fs.BulkWriter(ctx)
	for i := 0; i < n; i++ {
		uid := uuid.New().String()
		profile := users.NewProfile(
			uid,
			fmt.Sprintf("demo-user-%d@example.com", i+1),
			fmt.Sprintf("Demo User %d", i+1),
			"",
		)
		profile.Preferences.Categories = []string{"community", "tech"}

		if _, err := bw.Set(fs.Collection(users.Collection).Doc(uid), profile); err != nil {
			return fmt.Errorf("queue user %d: %w", i+1, err)
		}
	}
	bw.End()
	return nil
}

func seedEvents(ctx context.Context, fs *firestore.Client, n int) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	bw := fs.BulkWriter(ctx)
	for i := 0; i < n; i++ {
		date := time.Now().AddDate(0, 0, rng.Intn(120)-10).Format(events.DateLayout)
		title := fmt.Sprintf("%s #%d", titles[rng.Intn(len(titles))], i+1)

		e := events.Event{
			Title:       title,
			Date:        date,
			Description: fmt.Sprintf("Join us for %s. Synthetic listing for development.", title),
			Location:    locations[rng.Intn(len(locations))],
			CreatedBy:   "EventConnect Admin",
			CreatedAt:   time.Now().UTC(),
		}
		// Roughly a third of the listings are paid.
		if rng.Intn(3) == 0 {
			price := float64(rng.Intn(40) + 5)
			e.Price = &price
		}

		if _, err := bw.Create(fs.Collection(events.Collection).NewDoc(), e); err != nil {
			return fmt.Errorf("queue event %d: %w", i+1, err)
		}
	}
	bw.End()
	return nil
}
