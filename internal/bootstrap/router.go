package bootstrap

import (
	"cloud.google.com/go/firestore"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/eventconnect-app/go-events-backend/config"
	httpapi "github.com/eventconnect-app/go-events-backend/internal/api/http"
	"github.com/eventconnect-app/go-events-backend/internal/api/http/middleware"
	"github.com/eventconnect-app/go-events-backend/internal/auth"
	"github.com/eventconnect-app/go-events-backend/internal/calendar"
	"github.com/eventconnect-app/go-events-backend/internal/events"
	"github.com/eventconnect-app/go-events-backend/internal/registrations"
	"github.com/eventconnect-app/go-events-backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	AuthClient  *fbauth.Client
	Firestore   *firestore.Client
	Redis       *redis.Client // nil disables the catalogue cache
}

// BuildRouter wires repositories, services, and routes. It returns the
// engine plus the events service so the cron warmer can share it.
func BuildRouter(dep RouterDeps) (*gin.Engine, *events.Service) {
	cfg := dep.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, cfg.App.Version, dep.Redis)
	healthHandler.RegisterRoutes(r)

	var cache events.Cache
	if dep.Redis != nil {
		cache = events.NewRedisCache(dep.Redis, cfg.Redis.CacheTTL)
	}

	userRepo := users.NewRepo(dep.Firestore)
	eventSvc := events.NewService(events.NewRepo(dep.Firestore), cache)
	regSvc := registrations.NewService(registrations.NewRepo(dep.Firestore))

	requireUser := auth.RequireUser(dep.AuthClient, userRepo)
	writeLimiter := middleware.WriteLimiter(cfg.Server.WriteRPS, cfg.Server.WriteBurst)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	auth.Register(authGroup, dep.AuthClient, userRepo, requireUser)

	eventsGroup := api.Group("/events")
	events.Register(eventsGroup, eventSvc, requireUser, auth.RequireAdmin(), writeLimiter)
	registrations.Register(eventsGroup, api, regSvc, eventSvc, requireUser)

	var inserter *calendar.Inserter
	if ins, err := calendar.NewInserter(cfg.Calendar); err == nil {
		inserter = ins
	}
	calendar.Register(eventsGroup, eventSvc, inserter, requireUser)

	return r, eventSvc
}
