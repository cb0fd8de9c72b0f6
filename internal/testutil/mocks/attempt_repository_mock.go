package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lanki/internal/models"
)

// MockAttemptRepository is a mock implementation of repository.AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) ListByUser(ctx context.Context, userID int64) ([]models.AttemptHistory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttemptHistory), args.Error(1)
}

func (m *MockAttemptRepository) Get(ctx context.Context, userID int64, problemURL string) (*models.AttemptHistory, error) {
	args := m.Called(ctx, userID, problemURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttemptHistory), args.Error(1)
}

func (m *MockAttemptRepository) AppendAccess(ctx context.Context, userID int64, problemURL string, rec models.AccessRecord, limit int) (*models.AttemptHistory, error) {
	args := m.Called(ctx, userID, problemURL, rec, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttemptHistory), args.Error(1)
}
