// Package review ranks previously attempted problems by how urgently they should be revisited.
package review

import (
	"math"
	"sort"
	"time"

	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/problem"
)

// DefaultLimit is how many recommendations a ranking returns.
const DefaultLimit = 5

// Score weighs the latest self-rating of h: daysSinceLastAttempt² × difficulty multiplier.
// ok is false for degenerate histories (no accesses, unparseable timestamp, unknown difficulty),
// which always score exactly 0.
func Score(h models.AttemptHistory, now time.Time) (score float64, ok bool) {
	last, ok := h.Latest()
	if !ok {
		return 0, false
	}
	attemptedAt, ok := last.AttemptedAt()
	if !ok || !last.Difficulty.Valid() {
		return 0, false
	}
	return RawScore(now.Sub(attemptedAt), last.Difficulty), true
}

// RawScore is the scoring formula on its own. Negative elapsed time (clock skew) counts as zero.
func RawScore(elapsed time.Duration, d models.Difficulty) float64 {
	days := elapsed.Hours() / 24
	if days < 0 {
		days = 0
	}
	return math.Pow(days, 2) * d.Multiplier()
}

// Normalize divides every score by the maximum. When the maximum is 0 scores are left at 0.
func Normalize(problems []models.Problem) {
	maxScore := 0.0
	for _, p := range problems {
		if p.Score > maxScore {
			maxScore = p.Score
		}
	}
	if maxScore <= 0 {
		return
	}
	for i := range problems {
		problems[i].Score /= maxScore
	}
}

// Top sorts by score descending, breaking ties by canonical URL, and keeps at most limit entries.
func Top(problems []models.Problem, limit int) []models.Problem {
	sort.SliceStable(problems, func(i, j int) bool {
		if problems[i].Score != problems[j].Score {
			return problems[i].Score > problems[j].Score
		}
		return problem.NormalizeURL(problems[i].URL) < problem.NormalizeURL(problems[j].URL)
	})
	if limit >= 0 && len(problems) > limit {
		problems = problems[:limit]
	}
	return problems
}

// IsCurrent reports whether a stored problem URL is the problem on screen.
func IsCurrent(problemURL, currentURL string) bool {
	if currentURL == "" {
		return false
	}
	return problem.NormalizeURL(problemURL) == problem.NormalizeURL(currentURL)
}
