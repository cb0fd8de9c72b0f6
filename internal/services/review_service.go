package services

import (
	"context"

	"github.com/vytor/lanki/internal/logger"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/repository"
	"github.com/vytor/lanki/internal/review"
)

// ReviewService produces review recommendations. It never fails: any upstream
// error yields an empty list, indistinguishable from a user with no history.
type ReviewService interface {
	Recommend(ctx context.Context, email, currentURL string) []models.Problem
	RecommendForUser(ctx context.Context, userID int64, currentURL string) []models.Problem
}

type reviewService struct {
	userRepo    repository.UserRepository
	attemptRepo repository.AttemptRepository
	prioritizer *review.Prioritizer
}

// NewReviewService creates a new ReviewService
func NewReviewService(userRepo repository.UserRepository, attemptRepo repository.AttemptRepository, prioritizer *review.Prioritizer) ReviewService {
	return &reviewService{
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
		prioritizer: prioritizer,
	}
}

func (s *reviewService) Recommend(ctx context.Context, email, currentURL string) []models.Problem {
	log := logger.FromContext(ctx)
	email = normalizeEmail(email)
	if email == "" {
		log.Debug("no user, no recommendations")
		return []models.Problem{}
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Warn("user lookup failed for %s: %v", email, err)
		return []models.Problem{}
	}
	return s.RecommendForUser(ctx, user.ID, currentURL)
}

func (s *reviewService) RecommendForUser(ctx context.Context, userID int64, currentURL string) []models.Problem {
	log := logger.FromContext(ctx).WithField("user_id", userID)

	histories, err := s.attemptRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Warn("attempt fetch failed: %v", err)
		return []models.Problem{}
	}
	if len(histories) == 0 {
		return []models.Problem{}
	}

	problems, err := s.prioritizer.Prioritize(ctx, histories, currentURL)
	if err != nil {
		log.Warn("ranking failed: %v", err)
		return []models.Problem{}
	}
	log.Debug("recommending %d of %d problems", len(problems), len(histories))
	return problems
}
