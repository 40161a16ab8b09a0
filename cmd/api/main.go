package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/court-reservations/internal/audit"
	"github.com/BruksfildServices01/court-reservations/internal/auth"
	"github.com/BruksfildServices01/court-reservations/internal/cache"
	"github.com/BruksfildServices01/court-reservations/internal/config"
	dbpkg "github.com/BruksfildServices01/court-reservations/internal/db"
	"github.com/BruksfildServices01/court-reservations/internal/notification"
	"github.com/BruksfildServices01/court-reservations/internal/obs"
	"github.com/BruksfildServices01/court-reservations/internal/routes"
	"github.com/BruksfildServices01/court-reservations/internal/timezone"
	"github.com/BruksfildServices01/court-reservations/internal/worker"
)

const serviceName = "court-reservations"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	timezone.SetDefault(cfg.DefaultTimezone)

	shutdownTracer, err := obs.InitTracer(ctx, serviceName, cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		log.Fatalf("failed to init tracing: %v", err)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	// ------------------------------
	// Availability cache
	// ------------------------------
	var availability cache.Availability = cache.Nop{}
	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("[cache] redis unavailable, caching disabled: %v", err)
		} else {
			defer rdb.Close()
			availability = cache.NewRedisAvailability(rdb, cfg.AvailabilityCacheTTL)
		}
	}

	// ------------------------------
	// Async side effects
	// ------------------------------
	auditDispatcher := audit.NewDispatcher(audit.New(db), 100)

	sink, closeSinks, err := notification.FromConfig(cfg)
	if err != nil {
		log.Fatalf("failed to configure notifications: %v", err)
	}
	notifyDispatcher := notification.NewDispatcher(sink, cfg.NotifyQueueSize)

	// ------------------------------
	// HTTP
	// ------------------------------
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	releaseExpired := routes.RegisterRoutes(r, routes.Deps{
		DB:           db,
		Config:       cfg,
		Tokens:       auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL),
		Audit:        auditDispatcher,
		Notify:       notifyDispatcher,
		Availability: availability,
	})

	reaperCtx, stopReaper := context.WithCancel(ctx)
	reaperDone := make(chan struct{})
	if cfg.HoldTTL > 0 {
		go func() {
			defer close(reaperDone)
			worker.NewHoldReaper(releaseExpired, cfg.HoldReaperInterval).Run(reaperCtx)
		}()
	} else {
		close(reaperDone)
		log.Println("[reaper] HOLD_TTL is 0, holds never expire")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}

	stopReaper()
	<-reaperDone

	// Requests are done; flush what they queued.
	if err := notifyDispatcher.Close(shutdownCtx); err != nil {
		log.Printf("notification shutdown: %v", err)
	}
	closeSinks()
	auditDispatcher.Close()

	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Printf("tracer shutdown: %v", err)
	}
}
