package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vytor/lanki/internal/config"
	"github.com/vytor/lanki/internal/db"
	"github.com/vytor/lanki/internal/jobs"
	"github.com/vytor/lanki/internal/leetcode"
	"github.com/vytor/lanki/internal/logger"
	"github.com/vytor/lanki/internal/repository"
	"github.com/vytor/lanki/internal/repository/sqlstore"
	"github.com/vytor/lanki/internal/review"
	"github.com/vytor/lanki/internal/services"
	"github.com/vytor/lanki/internal/worker"
)

// deps is what the store-backed commands need, built lazily so `problem` runs without a database.
type deps struct {
	db       *db.DB
	pool     *worker.Pool
	users    services.UserService
	reviews  services.ReviewService
	ratings  services.RatingService
	attempts repository.AttemptRepository
	events   repository.EventRepository
}

func openDeps(cfg config.Config) (*deps, error) {
	database, err := db.Open(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	userRepo := sqlstore.NewUserRepository(database)
	attemptRepo := sqlstore.NewAttemptRepository(database)
	eventRepo := sqlstore.NewEventRepository(database)
	lc := leetcode.New(cfg.LeetCodeGraphQLURL, cfg.LeetCodeTimeout)

	// Events from a short-lived process must not be dropped, so the queue blocks
	// and close drains it before the database goes away.
	pool := worker.NewPool(1, cfg.WorkerQueueSize)
	pool.Start(context.Background())
	events := services.NewEventService(jobs.NewBlockingWorkerQueue(pool, eventRepo))

	return &deps{
		db:       database,
		pool:     pool,
		users:    services.NewUserService(userRepo),
		reviews:  services.NewReviewService(userRepo, attemptRepo, review.NewPrioritizer(lc, cfg.RecommendationLimit, cfg.DifficultyFetchConcurrency)),
		ratings:  services.NewRatingService(userRepo, attemptRepo, events, cfg.HistoryCap),
		attempts: attemptRepo,
		events:   eventRepo,
	}, nil
}

func (d *deps) close() {
	d.pool.Stop()
	_ = d.db.Close()
}

func newRootCmd() *cobra.Command {
	var verbose bool
	cfg := config.Load()

	root := &cobra.Command{
		Use:           "lankictl",
		Short:         "Inspect and drive the Lanki review store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logger.WARN
			if verbose {
				level = logger.DEBUG
			}
			logger.SetDefault(logger.New(logger.WithLevel(level), logger.WithOutput(cmd.ErrOrStderr())))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	root.PersistentFlags().StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "database driver (sqlite3|postgres)")
	root.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "database path or connection string")

	root.AddCommand(
		newProblemCmd(),
		newNextCmd(&cfg),
		newRateCmd(&cfg),
		newHistoryCmd(&cfg),
		newEventsCmd(&cfg),
	)
	return root
}
