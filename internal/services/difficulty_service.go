package services

import (
	"context"

	"github.com/vytor/lanki/internal/errors"
	"github.com/vytor/lanki/internal/logger"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/problem"
	"github.com/vytor/lanki/internal/review"
)

// DifficultyService resolves a problem's published difficulty for display.
type DifficultyService interface {
	Difficulty(ctx context.Context, problemURL string) (models.Difficulty, error)
}

type difficultyService struct {
	fetcher review.DifficultyFetcher
}

// NewDifficultyService creates a new DifficultyService
func NewDifficultyService(fetcher review.DifficultyFetcher) DifficultyService {
	return &difficultyService{fetcher: fetcher}
}

func (s *difficultyService) Difficulty(ctx context.Context, problemURL string) (models.Difficulty, error) {
	log := logger.FromContext(ctx)
	if problem.Slug(problemURL) == "" {
		return models.DifficultyUnknown, errors.NewValidationError("url", "not a problem page")
	}

	d, err := s.fetcher.FetchDifficulty(ctx, problem.NormalizeURL(problemURL))
	if err != nil {
		log.Warn("difficulty lookup failed for %s: %v", problemURL, err)
		return models.DifficultyUnknown, errors.NewUpstreamError("leetcode", err)
	}
	return d, nil
}
