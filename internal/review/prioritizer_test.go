package review_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/review"
	"github.com/vytor/lanki/internal/testutil/mocks"
)

const base = "https://leetcode.com/problems/"

func newPrioritizer(fetcher review.DifficultyFetcher) *review.Prioritizer {
	p := review.NewPrioritizer(fetcher, 5, 2)
	p.Now = func() time.Time { return now }
	return p
}

func TestPrioritize_RanksAndNormalizes(t *testing.T) {
	fetcher := new(mocks.MockDifficultyFetcher)
	fetcher.On("FetchDifficulty", mock.Anything, base+"two-sum").Return(models.Easy, nil)
	fetcher.On("FetchDifficulty", mock.Anything, base+"lru-cache").Return(models.Medium, nil)
	fetcher.On("FetchDifficulty", mock.Anything, base+"n-queens").Return(models.Hard, nil)

	histories := []models.AttemptHistory{
		history(base+"two-sum", daysAgo(models.Easy, 2)),   // 4
		history(base+"lru-cache", daysAgo(models.Hard, 4)), // 48
		history(base+"n-queens", daysAgo(models.Medium, 1)), // 2
	}

	got, err := newPrioritizer(fetcher).Prioritize(context.Background(), histories, "")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Lru Cache", got[0].Name)
	assert.Equal(t, models.Medium, got[0].Difficulty, "display difficulty comes from the lookup")
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
	assert.Equal(t, "Two Sum", got[1].Name)
	assert.InDelta(t, 4.0/48, got[1].Score, 1e-9)
	assert.Equal(t, "N Queens", got[2].Name)
	assert.InDelta(t, 2.0/48, got[2].Score, 1e-9)
	fetcher.AssertExpectations(t)
}

func TestPrioritize_ExcludesCurrentProblem(t *testing.T) {
	fetcher := new(mocks.MockDifficultyFetcher)
	fetcher.On("FetchDifficulty", mock.Anything, base+"two-sum").Return(models.Easy, nil)

	histories := []models.AttemptHistory{
		history(base+"two-sum", daysAgo(models.Easy, 1)),
		history(base+"lru-cache", daysAgo(models.Hard, 400)),
	}

	got, err := newPrioritizer(fetcher).Prioritize(context.Background(), histories, base+"lru-cache/description/?tab=1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, base+"two-sum", got[0].URL)
	fetcher.AssertNotCalled(t, "FetchDifficulty", mock.Anything, base+"lru-cache")
}

func TestPrioritize_DegenerateRecordsRankLastWithoutLookup(t *testing.T) {
	fetcher := new(mocks.MockDifficultyFetcher)
	fetcher.On("FetchDifficulty", mock.Anything, base+"two-sum").Return(models.Easy, nil)

	histories := []models.AttemptHistory{
		history(base+"broken", models.AccessRecord{Difficulty: models.Hard, TimeAttempted: "not a date"}),
		history(base+"empty"),
		history(base+"two-sum", daysAgo(models.Easy, 3)),
	}

	got, err := newPrioritizer(fetcher).Prioritize(context.Background(), histories, "")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, base+"two-sum", got[0].URL)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
	for _, p := range got[1:] {
		assert.Equal(t, 0.0, p.Score)
		assert.Equal(t, models.UnknownProblemName, p.Name)
		assert.Equal(t, models.Medium, p.Difficulty)
	}
	fetcher.AssertNumberOfCalls(t, "FetchDifficulty", 1)
}

func TestPrioritize_AllZeroScoresStayZero(t *testing.T) {
	fetcher := new(mocks.MockDifficultyFetcher)
	fetcher.On("FetchDifficulty", mock.Anything, mock.Anything).Return(models.Hard, nil)

	histories := []models.AttemptHistory{
		history(base+"a", models.NewAccessRecord(models.Hard, now)),
		history(base+"b", models.AccessRecord{Difficulty: models.Easy, TimeAttempted: "bad"}),
	}

	got, err := newPrioritizer(fetcher).Prioritize(context.Background(), histories, "")
	require.NoError(t, err)
	for _, p := range got {
		assert.Equal(t, 0.0, p.Score)
	}
}

func TestPrioritize_LimitsToFive(t *testing.T) {
	fetcher := new(mocks.MockDifficultyFetcher)
	fetcher.On("FetchDifficulty", mock.Anything, mock.Anything).Return(models.Medium, nil)

	var histories []models.AttemptHistory
	for i := 0; i < 8; i++ {
		histories = append(histories, history(fmt.Sprintf("%sp-%d", base, i), daysAgo(models.Easy, float64(i+1))))
	}

	got, err := newPrioritizer(fetcher).Prioritize(context.Background(), histories, "")
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, base+"p-7", got[0].URL)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestPrioritize_EmptyHistory(t *testing.T) {
	got, err := newPrioritizer(new(mocks.MockDifficultyFetcher)).Prioritize(context.Background(), nil, base+"two-sum")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPrioritize_DifficultyFailureFailsRanking(t *testing.T) {
	fetcher := new(mocks.MockDifficultyFetcher)
	fetcher.On("FetchDifficulty", mock.Anything, base+"two-sum").Return(models.Easy, nil).Maybe()
	fetcher.On("FetchDifficulty", mock.Anything, base+"gone").Return(models.DifficultyUnknown, errors.New("unknown difficulty level received: null"))

	histories := []models.AttemptHistory{
		history(base+"two-sum", daysAgo(models.Easy, 2)),
		history(base+"gone", daysAgo(models.Easy, 2)),
	}

	got, err := newPrioritizer(fetcher).Prioritize(context.Background(), histories, "")
	assert.Error(t, err)
	assert.Nil(t, got)
}
