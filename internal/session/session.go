package session

import (
	"context"
	"sync"
	"time"

	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/problem"
)

// Session is one signed-in widget's state: who is signed in, what page they
// are on, and the recommendations last shown to them.
type Session struct {
	ID     string
	Email  string
	UserID int64

	mu              sync.Mutex
	currentURL      string
	canonicalURL    string
	title           string
	difficulty      models.Difficulty
	selected        models.Difficulty
	recommendations []models.Problem
	loading         bool
	generation      uint64
	cancel          context.CancelFunc
	lastSeen        time.Time
}

// Ticket identifies one refresh. Only the ticket from the latest BeginRefresh
// may publish results.
type Ticket struct {
	Generation uint64
	Context    context.Context
	URL        string
}

// View is a point-in-time copy of a session for rendering.
type View struct {
	ID              string            `json:"id"`
	Email           string            `json:"email"`
	CurrentURL      string            `json:"current_url"`
	Title           string            `json:"title"`
	Difficulty      models.Difficulty `json:"difficulty"`
	SelectedRating  *string           `json:"selected_rating"`
	Recommendations []models.Problem  `json:"recommendations"`
	Loading         bool              `json:"loading"`
	Generation      uint64            `json:"generation"`
}

func newSession(id, email string, userID int64, now time.Time) *Session {
	return &Session{
		ID:              id,
		Email:           email,
		UserID:          userID,
		recommendations: []models.Problem{},
		lastSeen:        now,
	}
}

// Navigate records a page change and reports whether the URL differs from the last one.
// A listing page or a non-problem page leaves the displayed title unchanged.
func (s *Session) Navigate(rawURL string) (problem.Page, bool) {
	page := problem.Current(rawURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	if rawURL == s.currentURL {
		return page, false
	}
	s.currentURL = rawURL
	s.canonicalURL = problem.NormalizeURL(rawURL)
	if page.Kind == problem.KindProblem {
		s.title = page.Title
		s.difficulty = models.DifficultyUnknown
		s.selected = models.DifficultyUnknown
	}
	return page, true
}

// CurrentURL returns the canonical URL of the page last navigated to.
func (s *Session) CurrentURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canonicalURL
}

// BeginRefresh starts a new refresh, cancelling the one in flight.
func (s *Session) BeginRefresh(parent context.Context) Ticket {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	s.cancel = cancel
	s.loading = true
	return Ticket{Generation: s.generation, Context: ctx, URL: s.canonicalURL}
}

// CompleteRefresh publishes problems if t is still the latest ticket and
// reports whether it did. Stale results are dropped.
func (s *Session) CompleteRefresh(t Ticket, problems []models.Problem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.Generation != s.generation {
		return false
	}
	if problems == nil {
		problems = []models.Problem{}
	}
	s.recommendations = problems
	s.loading = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return true
}

// AbandonRefresh ends t without publishing, keeping the previous recommendations.
func (s *Session) AbandonRefresh(t Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.Generation != s.generation {
		return
	}
	s.loading = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// SetDifficulty records the viewed problem's published difficulty if t is still current.
func (s *Session) SetDifficulty(t Ticket, d models.Difficulty) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.Generation != s.generation {
		return false
	}
	s.difficulty = d
	return true
}

// Select records the user's self-rating for the current problem.
// DifficultyUnknown clears it.
func (s *Session) Select(d models.Difficulty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = d
}

// Close cancels any in-flight refresh.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.loading = false
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// View returns a copy of the session's state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:              s.ID,
		Email:           s.Email,
		CurrentURL:      s.canonicalURL,
		Title:           s.title,
		Difficulty:      s.difficulty,
		Recommendations: append([]models.Problem(nil), s.recommendations...),
		Loading:         s.loading,
		Generation:      s.generation,
	}
	if v.Recommendations == nil {
		v.Recommendations = []models.Problem{}
	}
	if s.selected.Valid() {
		name := s.selected.String()
		v.SelectedRating = &name
	}
	return v
}
