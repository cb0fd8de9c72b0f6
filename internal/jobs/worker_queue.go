package jobs

import (
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/repository"
	"github.com/vytor/lanki/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool   *worker.Pool
	events repository.EventRepository
	block  bool
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, events repository.EventRepository) JobQueue {
	return &WorkerQueue{pool: pool, events: events}
}

// NewBlockingWorkerQueue waits for queue space instead of dropping events.
func NewBlockingWorkerQueue(pool *worker.Pool, events repository.EventRepository) JobQueue {
	return &WorkerQueue{pool: pool, events: events, block: true}
}

// EnqueueEvent hands the event to the pool. Unless the queue blocks, a full
// queue drops the event.
func (q *WorkerQueue) EnqueueEvent(event models.Event) error {
	job := &worker.RecordEventJob{Events: q.events, Event: event}
	if q.block {
		return q.pool.Submit(job)
	}
	return q.pool.TrySubmit(job)
}
