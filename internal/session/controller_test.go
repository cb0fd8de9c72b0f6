package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lanki/internal/errors"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/services"
	"github.com/vytor/lanki/internal/testutil/mocks"
	"github.com/vytor/lanki/internal/worker"
)

// inlineRunner runs jobs on the caller's goroutine, or holds them when paused.
type inlineRunner struct {
	mu     sync.Mutex
	paused bool
	held   []worker.Job
	full   bool
}

func (r *inlineRunner) TrySubmit(job worker.Job) error {
	r.mu.Lock()
	if r.full {
		r.mu.Unlock()
		return worker.ErrQueueFull
	}
	if r.paused {
		r.held = append(r.held, job)
		r.mu.Unlock()
		return nil
	}
	r.mu.Unlock()
	return job.Run(context.Background())
}

type fakeReviews struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeReviews) Recommend(ctx context.Context, email, currentURL string) []models.Problem {
	return nil
}

func (f *fakeReviews) RecommendForUser(ctx context.Context, userID int64, currentURL string) []models.Problem {
	f.mu.Lock()
	f.calls = append(f.calls, currentURL)
	f.mu.Unlock()
	return []models.Problem{{Name: "for " + currentURL, URL: currentURL}}
}

type fixture struct {
	ctrl     *Controller
	runner   *inlineRunner
	reviews  *fakeReviews
	users    *mocks.MockUserRepository
	attempts *mocks.MockAttemptRepository
	queue    *mocks.MockJobQueue
	fetcher  *mocks.MockDifficultyFetcher
}

type panickingReviews struct{ fakeReviews }

func (p *panickingReviews) RecommendForUser(context.Context, int64, string) []models.Problem {
	panic("ranking exploded")
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		runner:   &inlineRunner{},
		reviews:  &fakeReviews{},
		users:    new(mocks.MockUserRepository),
		attempts: new(mocks.MockAttemptRepository),
		queue:    new(mocks.MockJobQueue),
		fetcher:  new(mocks.MockDifficultyFetcher),
	}
	f.users.On("Upsert", mock.Anything, "ada@example.com").Return(&models.User{ID: 7, Email: "ada@example.com"}, nil)
	f.fetcher.On("FetchDifficulty", mock.Anything, mock.Anything).Return(models.Medium, nil)
	f.queue.On("EnqueueEvent", mock.Anything).Return(nil)

	events := services.NewEventService(f.queue)
	f.ctrl = &Controller{
		Sessions:     NewManager(),
		Users:        services.NewUserService(f.users),
		Reviews:      f.reviews,
		Ratings:      services.NewRatingService(f.users, f.attempts, events, 10),
		Events:       events,
		Difficulties: services.NewDifficultyService(f.fetcher),
		Runner:       f.runner,
	}
	return f
}

func TestController_LoginRefreshesOnce(t *testing.T) {
	f := newFixture(t)

	s, err := f.ctrl.Login(context.Background(), "Ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.UserID)
	assert.Len(t, f.reviews.calls, 1)
	assert.False(t, s.View().Loading)
}

func TestController_NavigateRefreshesOnChangeOnly(t *testing.T) {
	f := newFixture(t)
	s, err := f.ctrl.Login(context.Background(), "ada@example.com")
	require.NoError(t, err)

	f.ctrl.Navigate(context.Background(), s, "https://leetcode.com/problems/two-sum/")
	f.ctrl.Navigate(context.Background(), s, "https://leetcode.com/problems/two-sum/")

	assert.Equal(t, []string{"", "https://leetcode.com/problems/two-sum"}, f.reviews.calls)
	v := s.View()
	assert.Equal(t, "Two Sum", v.Title)
	assert.Equal(t, models.Medium, v.Difficulty)
	require.Len(t, v.Recommendations, 1)
}

func TestController_RapidNavigationKeepsLatest(t *testing.T) {
	f := newFixture(t)
	s, err := f.ctrl.Login(context.Background(), "ada@example.com")
	require.NoError(t, err)

	f.runner.paused = true
	f.ctrl.Navigate(context.Background(), s, "https://leetcode.com/problems/two-sum/")
	f.ctrl.Navigate(context.Background(), s, "https://leetcode.com/problems/lru-cache/")
	require.Len(t, f.runner.held, 2)

	// Newest finishes first, then the superseded one resolves late.
	require.NoError(t, f.runner.held[1].Run(context.Background()))
	require.NoError(t, f.runner.held[0].Run(context.Background()))

	v := s.View()
	require.Len(t, v.Recommendations, 1)
	assert.Equal(t, "for https://leetcode.com/problems/lru-cache", v.Recommendations[0].Name)
}

func TestController_QueueFullKeepsState(t *testing.T) {
	f := newFixture(t)
	s, err := f.ctrl.Login(context.Background(), "ada@example.com")
	require.NoError(t, err)

	f.runner.full = true
	f.ctrl.Navigate(context.Background(), s, "https://leetcode.com/problems/two-sum/")
	v := s.View()
	assert.False(t, v.Loading)
	assert.Len(t, v.Recommendations, 1)
}

func TestController_PanickedRefreshClearsLoading(t *testing.T) {
	f := newFixture(t)
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	f.ctrl.Runner = pool
	f.ctrl.Reviews = &panickingReviews{}

	s, err := f.ctrl.Login(context.Background(), "ada@example.com")
	require.NoError(t, err)
	pool.Stop()

	view := s.View()
	assert.False(t, view.Loading)
	assert.Empty(t, view.Recommendations)
}

func TestController_RateAndTryAgain(t *testing.T) {
	f := newFixture(t)
	s, err := f.ctrl.Login(context.Background(), "ada@example.com")
	require.NoError(t, err)

	err = f.ctrl.Rate(context.Background(), s, models.Easy)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeBadRequest, appErr.Code)

	f.ctrl.Navigate(context.Background(), s, "https://leetcode.com/problems/two-sum/")
	f.attempts.On("AppendAccess", mock.Anything, int64(7), "https://leetcode.com/problems/two-sum", mock.Anything, 10).
		Return(&models.AttemptHistory{ID: 1}, nil)

	require.NoError(t, f.ctrl.Rate(context.Background(), s, models.Easy))
	require.NotNil(t, s.View().SelectedRating)

	f.ctrl.TryAgain(context.Background(), s)
	assert.Nil(t, s.View().SelectedRating)

	var types []models.EventType
	for _, c := range f.queue.Calls {
		types = append(types, c.Arguments.Get(0).(models.Event).Type)
	}
	assert.Equal(t, []models.EventType{models.EventDifficultyButtonPress, models.EventTryAgainButtonPress}, types)
}

func TestController_LookupChecksOwner(t *testing.T) {
	f := newFixture(t)
	s, err := f.ctrl.Login(context.Background(), "ada@example.com")
	require.NoError(t, err)

	_, err = f.ctrl.Lookup(s.ID, "ada@example.com")
	assert.NoError(t, err)
	_, err = f.ctrl.Lookup(s.ID, "eve@example.com")
	assert.Error(t, err)
	_, err = f.ctrl.Lookup("missing", "")
	assert.Error(t, err)

	assert.True(t, f.ctrl.Close(s.ID))
}
