package services

import (
	"context"
	"time"

	"github.com/vytor/lanki/internal/errors"
	"github.com/vytor/lanki/internal/logger"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/problem"
	"github.com/vytor/lanki/internal/repository"
)

// RatingService records a user's self-rated difficulty for a problem.
type RatingService interface {
	// Submit returns an error only for caller contract breaches (no user, bad input).
	// Store failures are logged and swallowed.
	Submit(ctx context.Context, email, problemURL string, d models.Difficulty) error
	SubmitForUser(ctx context.Context, userID int64, problemURL string, d models.Difficulty) error
}

type ratingService struct {
	userRepo    repository.UserRepository
	attemptRepo repository.AttemptRepository
	events      EventService
	historyCap  int
	now         func() time.Time
}

// NewRatingService creates a new RatingService
func NewRatingService(userRepo repository.UserRepository, attemptRepo repository.AttemptRepository, events EventService, historyCap int) RatingService {
	if historyCap <= 0 {
		historyCap = models.DefaultHistoryCap
	}
	return &ratingService{
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
		events:      events,
		historyCap:  historyCap,
		now:         time.Now,
	}
}

func (s *ratingService) Submit(ctx context.Context, email, problemURL string, d models.Difficulty) error {
	log := logger.FromContext(ctx)
	email = normalizeEmail(email)
	if email == "" {
		return errors.NewUnauthorizedError("rating submitted without an authenticated user")
	}
	if err := validateRating(problemURL, d); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Warn("rating dropped, user lookup failed for %s: %v", email, err)
		return nil
	}
	return s.SubmitForUser(ctx, user.ID, problemURL, d)
}

func (s *ratingService) SubmitForUser(ctx context.Context, userID int64, problemURL string, d models.Difficulty) error {
	log := logger.FromContext(ctx).WithField("user_id", userID)
	if userID == 0 {
		return errors.NewUnauthorizedError("rating submitted without an authenticated user")
	}
	if err := validateRating(problemURL, d); err != nil {
		return err
	}

	canonical := problem.NormalizeURL(problemURL)
	s.events.DifficultyPressed(ctx, userID, d, canonical)

	rec := models.NewAccessRecord(d, s.now())
	h, err := s.attemptRepo.AppendAccess(ctx, userID, canonical, rec, s.historyCap)
	if err != nil {
		log.Error("failed to store rating for %s: %v", canonical, err)
		return nil
	}
	log.Info("rated %s as %s (%d in history)", canonical, d, len(h.RecentAccesses))
	return nil
}

func validateRating(problemURL string, d models.Difficulty) error {
	if !d.Valid() {
		return errors.NewValidationError("difficulty", "must be Easy, Medium or Hard")
	}
	if problem.Slug(problemURL) == "" {
		return errors.NewValidationError("url", "not a problem page")
	}
	return nil
}
