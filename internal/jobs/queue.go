package jobs

import "github.com/vytor/lanki/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueEvent(event models.Event) error
}
