package worker

import (
	"context"

	"github.com/vytor/lanki/internal/logger"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/repository"
)

// RecordEventJob writes one widget interaction to the event log.
type RecordEventJob struct {
	Events repository.EventRepository
	Event  models.Event
}

func (j *RecordEventJob) Name() string { return "record_event" }

func (j *RecordEventJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"user_id":    j.Event.UserID,
		"event_type": j.Event.Type,
	})
	id, err := j.Events.Insert(ctx, j.Event)
	if err != nil {
		log.Error("failed to record event: %v", err)
		return err
	}
	log.Debug("recorded event %d", id)
	return nil
}

// FuncJob adapts a function to Job.
type FuncJob struct {
	JobName string
	Fn      func(context.Context) error
}

func (j FuncJob) Name() string { return j.JobName }

func (j FuncJob) Run(ctx context.Context) error { return j.Fn(ctx) }
