package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/lanki/internal/errors"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/session"
)

type navigateRequest struct {
	URL string `json:"url"`
}

type sessionRatingRequest struct {
	Difficulty string `json:"difficulty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Login(r.Context(), userEmailFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, sess.View())
}

func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.Sessions.Lookup(chi.URLParam(r, "id"), userEmailFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, sess.View())
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req navigateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.URL == "" {
		handleError(w, r, errors.NewValidationError("url", "cannot be empty"))
		return
	}

	s.Sessions.Navigate(r.Context(), sess, req.URL)
	writeJSON(w, r, http.StatusOK, sess.View())
}

func (s *Server) handleSessionRating(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	var req sessionRatingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	d, err := models.ParseDifficulty(req.Difficulty)
	if err != nil {
		handleError(w, r, errors.NewValidationError("difficulty", err.Error()))
		return
	}

	if err := s.Sessions.Rate(r.Context(), sess, d); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, sess.View())
}

func (s *Server) handleSessionTryAgain(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	s.Sessions.TryAgain(r.Context(), sess)
	writeJSON(w, r, http.StatusOK, sess.View())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.sessionFromRequest(w, r); !ok {
		return
	}
	s.Sessions.Close(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
