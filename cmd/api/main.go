package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventconnect-app/go-events-backend/config"
	"github.com/eventconnect-app/go-events-backend/internal/auth"
	"github.com/eventconnect-app/go-events-backend/internal/bootstrap"
	cronjob "github.com/eventconnect-app/go-events-backend/internal/cron"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	authClient, fsClient, err := auth.InitializeFirebase(ctx, cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}
	defer fsClient.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if rdb == nil {
		log.Println("REDIS_ADDR not set, catalogue cache disabled")
	} else {
		defer rdb.Close()
	}

	router, eventSvc := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "eventconnect-api",
		Config:      cfg,
		AuthClient:  authClient,
		Firestore:   fsClient,
		Redis:       rdb,
	})

	scheduler := cronjob.NewScheduler(eventSvc)
	if rdb != nil {
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	log.Println("server stopped")
}
