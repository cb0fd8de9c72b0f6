package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lanki/internal/models"
)

// MockDifficultyFetcher is a mock implementation of review.DifficultyFetcher
type MockDifficultyFetcher struct {
	mock.Mock
}

func (m *MockDifficultyFetcher) FetchDifficulty(ctx context.Context, problemURL string) (models.Difficulty, error) {
	args := m.Called(ctx, problemURL)
	return args.Get(0).(models.Difficulty), args.Error(1)
}
