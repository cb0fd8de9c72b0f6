package services

import (
	"context"
	"strings"

	"github.com/vytor/lanki/internal/jobs"
	"github.com/vytor/lanki/internal/logger"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/problem"
)

// EventService records widget interactions. Every method is fire-and-forget:
// failures are logged and never returned.
type EventService interface {
	DifficultyPressed(ctx context.Context, userID int64, d models.Difficulty, problemURL string)
	TryAgainPressed(ctx context.Context, userID int64, problemURL string)
	UpcomingProblemClicked(ctx context.Context, userID int64, rank int)
}

type eventService struct {
	queue jobs.JobQueue
}

// NewEventService creates a new EventService
func NewEventService(queue jobs.JobQueue) EventService {
	return &eventService{queue: queue}
}

func (s *eventService) DifficultyPressed(ctx context.Context, userID int64, d models.Difficulty, problemURL string) {
	s.enqueue(ctx, models.Event{
		UserID:     userID,
		Type:       models.EventDifficultyButtonPress,
		Difficulty: strings.ToLower(d.String()),
		Problem:    problem.NormalizeURL(problemURL),
	})
}

func (s *eventService) TryAgainPressed(ctx context.Context, userID int64, problemURL string) {
	s.enqueue(ctx, models.Event{
		UserID:  userID,
		Type:    models.EventTryAgainButtonPress,
		Problem: problem.NormalizeURL(problemURL),
	})
}

func (s *eventService) UpcomingProblemClicked(ctx context.Context, userID int64, rank int) {
	s.enqueue(ctx, models.Event{
		UserID: userID,
		Type:   models.EventUpcomingProblemButtonPress,
		Rank:   &rank,
	})
}

func (s *eventService) enqueue(ctx context.Context, event models.Event) {
	log := logger.FromContext(ctx)
	if event.UserID == 0 {
		log.Warn("dropping %s event: no user", event.Type)
		return
	}
	if err := s.queue.EnqueueEvent(event); err != nil {
		log.Error("failed to log %s event: %v", event.Type, err)
	}
}
