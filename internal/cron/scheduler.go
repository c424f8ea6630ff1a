package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/eventconnect-app/go-events-backend/internal/events"
)

// Scheduler owns the nightly catalogue cache warm-up. The catalogue TTL
// keeps daytime traffic fresh; the nightly refresh just means the first
// morning visitor never pays for a cold read.
type Scheduler struct {
	c      *cron.Cron
	events *events.Service
}

func NewScheduler(svc *events.Service) *Scheduler {
	return &Scheduler{c: cron.New(), events: svc}
}

// Start registers the nightly job and launches the cron loop.
func (s *Scheduler) Start() {
	_, err := s.c.AddFunc("0 3 * * *", s.warmCatalogue)
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (catalogue warm-up nightly at 3:00AM)")
	s.c.Start()
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.c.Stop()
	<-ctx.Done()
}

func (s *Scheduler) warmCatalogue() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.events.RefreshCache(ctx); err != nil {
		log.Printf("Catalogue warm-up failed: %v", err)
		return
	}
	log.Println("Catalogue warm-up completed at:", time.Now().Format(time.RFC1123))
}
