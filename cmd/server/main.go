package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/crypto/acme/autocert"

	"github.com/vytor/lanki/internal/api"
	"github.com/vytor/lanki/internal/config"
	"github.com/vytor/lanki/internal/db"
	"github.com/vytor/lanki/internal/jobs"
	"github.com/vytor/lanki/internal/leetcode"
	"github.com/vytor/lanki/internal/logger"
	"github.com/vytor/lanki/internal/repository/sqlstore"
	"github.com/vytor/lanki/internal/review"
	"github.com/vytor/lanki/internal/services"
	"github.com/vytor/lanki/internal/session"
	"github.com/vytor/lanki/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Lanki Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_driver=%s", cfg.DBDriver)
	log.Debug("auth_driver=%s", cfg.AuthDriver)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("leetcode_graphql_url=%s", cfg.LeetCodeGraphQLURL)
	log.Debug("difficulty_fetch_concurrency=%d", cfg.DifficultyFetchConcurrency)
	log.Debug("recommendation_limit=%d", cfg.RecommendationLimit)
	log.Debug("history_cap=%d", cfg.HistoryCap)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("worker_queue_size=%d", cfg.WorkerQueueSize)
	log.Debug("session_idle_ttl=%v", cfg.SessionIdleTTL)

	database, err := db.Open(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	auth, err := authMiddleware(cfg)
	if err != nil {
		log.Error("failed to configure auth: %v", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := sqlstore.NewUserRepository(database)
	attemptRepo := sqlstore.NewAttemptRepository(database)
	eventRepo := sqlstore.NewEventRepository(database)

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	queue := jobs.NewWorkerQueue(pool, eventRepo)

	// Services
	lc := leetcode.New(cfg.LeetCodeGraphQLURL, cfg.LeetCodeTimeout)
	prioritizer := review.NewPrioritizer(lc, cfg.RecommendationLimit, cfg.DifficultyFetchConcurrency)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(queue)
	reviewService := services.NewReviewService(userRepo, attemptRepo, prioritizer)
	ratingService := services.NewRatingService(userRepo, attemptRepo, eventService, cfg.HistoryCap)
	difficultyService := services.NewDifficultyService(lc)

	sessions := session.NewManager()
	sweeper := session.NewSweeper(sessions, cfg.SessionIdleTTL, cfg.SessionSweepInterval)

	srv := &api.Server{
		DB:           database,
		Users:        userService,
		Reviews:      reviewService,
		Ratings:      ratingService,
		Events:       eventService,
		Difficulties: difficultyService,
		Sessions: &session.Controller{
			Sessions:     sessions,
			Users:        userService,
			Reviews:      reviewService,
			Ratings:      ratingService,
			Events:       eventService,
			Difficulties: difficultyService,
			Runner:       pool,
		},
		Auth:              auth,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)
	if err := sweeper.Start(); err != nil {
		log.Error("failed to start session sweeper: %v", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := serve(httpServer, cfg.AutocertHosts); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping session sweeper")
	sweeper.Stop()

	log.Debug("draining worker pool")
	pool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("Lanki Server Stopped")
	log.Info("===========================================")
}

// serve listens on the configured address, or on :443 with Let's Encrypt
// certificates when autocert hosts are set.
func serve(httpServer *http.Server, autocertHosts []string) error {
	log := logger.Default()
	if len(autocertHosts) == 0 {
		log.Info("HTTP server listening on %s", httpServer.Addr)
		return httpServer.ListenAndServe()
	}

	log.Info("HTTPS server listening for %s", strings.Join(autocertHosts, ", "))
	return httpServer.Serve(autocert.NewListener(autocertHosts...))
}

func authMiddleware(cfg config.Config) (func(http.Handler) http.Handler, error) {
	switch cfg.AuthDriver {
	case "google":
		return api.GoogleAuth(cfg.GoogleClientID)
	default:
		logger.Default().Warn("AUTH_DRIVER=%s trusts the %s header; do not expose publicly", cfg.AuthDriver, "X-User-Email")
		return api.HeaderAuth(), nil
	}
}
