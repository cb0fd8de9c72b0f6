package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lanki/internal/jobs"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/testutil/mocks"
	"github.com/vytor/lanki/internal/worker"
)

func TestWorkerQueue_EnqueueEventWritesThroughPool(t *testing.T) {
	events := new(mocks.MockEventRepository)
	event := models.Event{UserID: 3, Type: models.EventDifficultyButtonPress, Difficulty: "Easy"}

	written := make(chan struct{})
	events.On("Insert", mock.Anything, event).
		Run(func(mock.Arguments) { close(written) }).
		Return(int64(10), nil)

	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	defer pool.Stop()

	q := jobs.NewWorkerQueue(pool, events)
	require.NoError(t, q.EnqueueEvent(event))

	select {
	case <-written:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not written")
	}
	events.AssertExpectations(t)
}

func TestWorkerQueue_FullQueueDropsEvent(t *testing.T) {
	events := new(mocks.MockEventRepository)
	pool := worker.NewPool(1, 1)

	q := jobs.NewWorkerQueue(pool, events)
	require.NoError(t, q.EnqueueEvent(models.Event{UserID: 1, Type: models.EventTryAgainButtonPress}))
	assert.ErrorIs(t, q.EnqueueEvent(models.Event{UserID: 1, Type: models.EventTryAgainButtonPress}), worker.ErrQueueFull)
}

func TestBlockingWorkerQueue_WaitsForSpace(t *testing.T) {
	events := new(mocks.MockEventRepository)
	events.On("Insert", mock.Anything, mock.Anything).Return(int64(1), nil)
	pool := worker.NewPool(1, 1)

	q := jobs.NewBlockingWorkerQueue(pool, events)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 3; i++ {
			assert.NoError(t, q.EnqueueEvent(models.Event{UserID: 1, Type: models.EventTryAgainButtonPress}))
		}
	}()

	pool.Start(context.Background())
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue did not unblock")
	}
	pool.Stop()

	events.AssertNumberOfCalls(t, "Insert", 3)
}
