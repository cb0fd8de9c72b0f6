package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/vytor/lanki/internal/errors"
	"github.com/vytor/lanki/internal/logger"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/problem"
	"github.com/vytor/lanki/internal/services"
	"github.com/vytor/lanki/internal/worker"
)

// JobRunner accepts background jobs without blocking. *worker.Pool satisfies it.
type JobRunner interface {
	TrySubmit(job worker.Job) error
}

// Controller reacts to widget events (login, navigation, rating) on behalf of a session.
type Controller struct {
	Sessions     *Manager
	Users        services.UserService
	Reviews      services.ReviewService
	Ratings      services.RatingService
	Events       services.EventService
	Difficulties services.DifficultyService
	Runner       JobRunner
}

// Login ensures the user exists, opens a session and starts the first refresh.
func (c *Controller) Login(ctx context.Context, email string) (*Session, error) {
	user, err := c.Users.Login(ctx, email)
	if err != nil {
		return nil, err
	}
	s := c.Sessions.Create(user.Email, user.ID)
	logger.FromContext(ctx).WithField("session_id", s.ID).Info("session opened for user_id=%d", user.ID)
	c.refresh(ctx, s)
	return s, nil
}

// Lookup returns the session owned by email.
func (c *Controller) Lookup(id, email string) (*Session, error) {
	s, ok := c.Sessions.Get(id)
	if !ok || (email != "" && !strings.EqualFold(s.Email, strings.TrimSpace(email))) {
		return nil, errors.NewNotFoundError("session", id)
	}
	return s, nil
}

// Navigate records a URL change and, if it changed, refreshes recommendations.
func (c *Controller) Navigate(ctx context.Context, s *Session, rawURL string) problem.Page {
	log := logger.FromContext(ctx).WithField("session_id", s.ID)
	page, changed := s.Navigate(rawURL)
	switch page.Kind {
	case problem.KindListing:
		log.Debug("listing page, keeping title")
	case problem.KindNone:
		log.Debug("no problem in %s, keeping title", rawURL)
	}
	if changed {
		c.refresh(ctx, s)
	}
	return page
}

// Rate records a self-rating for the session's current problem.
func (c *Controller) Rate(ctx context.Context, s *Session, d models.Difficulty) error {
	current := s.CurrentURL()
	if problem.Slug(current) == "" {
		return errors.NewBadRequestError("current page is not a problem")
	}
	if err := c.Ratings.SubmitForUser(ctx, s.UserID, current, d); err != nil {
		return err
	}
	s.Select(d)
	return nil
}

// TryAgain clears the session's self-rating.
func (c *Controller) TryAgain(ctx context.Context, s *Session) {
	s.Select(models.DifficultyUnknown)
	c.Events.TryAgainPressed(ctx, s.UserID, s.CurrentURL())
}

func (c *Controller) Close(id string) bool {
	return c.Sessions.Delete(id)
}

// refresh supersedes any in-flight refresh and runs a new one in the background.
func (c *Controller) refresh(ctx context.Context, s *Session) {
	log := logger.FromContext(ctx).WithField("session_id", s.ID)
	ticket := s.BeginRefresh(logger.NewContext(context.Background(), log))

	job := worker.FuncJob{
		JobName: "refresh_recommendations",
		Fn: func(context.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					s.AbandonRefresh(ticket)
					err = fmt.Errorf("refresh panicked: %v", r)
				}
			}()
			c.runRefresh(ticket, s)
			return nil
		},
	}
	if err := c.Runner.TrySubmit(job); err != nil {
		log.Warn("refresh not scheduled: %v", err)
		s.AbandonRefresh(ticket)
	}
}

func (c *Controller) runRefresh(t Ticket, s *Session) {
	ctx := t.Context
	log := logger.FromContext(ctx).WithField("generation", t.Generation)

	if problem.Slug(t.URL) != "" && c.Difficulties != nil {
		if d, err := c.Difficulties.Difficulty(ctx, t.URL); err == nil {
			s.SetDifficulty(t, d)
		}
	}

	problems := c.Reviews.RecommendForUser(ctx, s.UserID, t.URL)
	if !s.CompleteRefresh(t, problems) {
		log.Debug("discarding stale recommendations")
		return
	}
	log.Debug("published %d recommendations", len(problems))
}
