package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/lanki/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueEvent(event models.Event) error {
	args := m.Called(event)
	return args.Error(0)
}
