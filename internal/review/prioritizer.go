package review

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vytor/lanki/internal/logger"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/problem"
)

// DifficultyFetcher resolves LeetCode's published difficulty for a problem URL.
type DifficultyFetcher interface {
	FetchDifficulty(ctx context.Context, problemURL string) (models.Difficulty, error)
}

// Prioritizer turns a user's attempt histories into review recommendations.
type Prioritizer struct {
	Difficulties DifficultyFetcher
	Limit        int
	// Concurrency bounds parallel difficulty lookups. Zero means unbounded.
	Concurrency int
	Now         func() time.Time
}

func NewPrioritizer(difficulties DifficultyFetcher, limit, concurrency int) *Prioritizer {
	return &Prioritizer{
		Difficulties: difficulties,
		Limit:        limit,
		Concurrency:  concurrency,
		Now:          time.Now,
	}
}

// Prioritize scores every history except the one for currentURL, looks up each scored
// problem's difficulty, normalizes to [0,1] and returns the most urgent first.
// Any failed difficulty lookup fails the whole ranking.
func (p *Prioritizer) Prioritize(ctx context.Context, histories []models.AttemptHistory, currentURL string) ([]models.Problem, error) {
	log := logger.FromContext(ctx).WithPrefix("review")
	now := p.now()

	problems := make([]models.Problem, 0, len(histories))
	var lookups []int
	for _, h := range histories {
		if IsCurrent(h.ProblemURL, currentURL) {
			log.Debug("skipping current problem: %s", h.ProblemURL)
			continue
		}
		score, ok := Score(h, now)
		if !ok {
			log.Warn("invalid last access data for %s, scoring 0", h.ProblemURL)
			problems = append(problems, models.Problem{
				Name:       models.UnknownProblemName,
				URL:        h.ProblemURL,
				Difficulty: models.Medium,
				Score:      0,
			})
			continue
		}
		lookups = append(lookups, len(problems))
		problems = append(problems, models.Problem{
			Name:  problem.Name(h.ProblemURL),
			URL:   h.ProblemURL,
			Score: score,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	if p.Concurrency > 0 {
		g.SetLimit(p.Concurrency)
	}
	for _, i := range lookups {
		i := i
		g.Go(func() error {
			d, err := p.Difficulties.FetchDifficulty(gctx, problems[i].URL)
			if err != nil {
				return fmt.Errorf("difficulty for %s: %w", problems[i].URL, err)
			}
			problems[i].Difficulty = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	Normalize(problems)
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	top := Top(problems, limit)
	log.Debug("ranked %d candidates, returning %d", len(problems), len(top))
	return top, nil
}

func (p *Prioritizer) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
