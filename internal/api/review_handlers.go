package api

import (
	"net/http"

	"github.com/vytor/lanki/internal/errors"
	"github.com/vytor/lanki/internal/logger"
	"github.com/vytor/lanki/internal/models"
)

type ratingRequest struct {
	URL        string `json:"url"`
	Difficulty string `json:"difficulty"`
}

type tryAgainRequest struct {
	URL string `json:"url"`
}

type upcomingClickRequest struct {
	Rank int `json:"rank"`
}

// handleRecommendations always answers 200; failures yield an empty list.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	email := userEmailFromContext(r.Context())
	current := r.URL.Query().Get("url")

	problems := s.Reviews.Recommend(r.Context(), email, current)
	writeJSON(w, r, http.StatusOK, map[string][]models.Problem{"problems": problems})
}

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	var req ratingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	d, err := models.ParseDifficulty(req.Difficulty)
	if err != nil {
		handleError(w, r, errors.NewValidationError("difficulty", err.Error()))
		return
	}

	if err := s.Ratings.Submit(r.Context(), userEmailFromContext(r.Context()), req.URL, d); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTryAgainEvent(w http.ResponseWriter, r *http.Request) {
	var req tryAgainRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if userID, ok := s.eventUser(r); ok {
		s.Events.TryAgainPressed(r.Context(), userID, req.URL)
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleUpcomingClickEvent(w http.ResponseWriter, r *http.Request) {
	var req upcomingClickRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.Rank < 1 {
		handleError(w, r, errors.NewValidationError("rank", "must be at least 1"))
		return
	}
	if userID, ok := s.eventUser(r); ok {
		s.Events.UpcomingProblemClicked(r.Context(), userID, req.Rank)
	}
	w.WriteHeader(http.StatusAccepted)
}

// eventUser resolves the caller for the event log. Failures are logged only.
func (s *Server) eventUser(r *http.Request) (int64, bool) {
	userID, err := s.Users.LookupUserID(r.Context(), userEmailFromContext(r.Context()))
	if err != nil {
		logger.FromContext(r.Context()).Warn("event not logged: %v", err)
		return 0, false
	}
	return userID, true
}
