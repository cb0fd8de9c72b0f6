package api

import (
	"net/http"

	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/problem"
)

type problemResponse struct {
	Kind         problem.Kind `json:"kind"`
	Title        string       `json:"title,omitempty"`
	Slug         string       `json:"slug,omitempty"`
	CanonicalURL string       `json:"canonical_url,omitempty"`
}

// handleProblem runs the extractor on ?url=.
func (s *Server) handleProblem(w http.ResponseWriter, r *http.Request) {
	raw, err := requireQuery(r, "url")
	if err != nil {
		handleError(w, r, err)
		return
	}

	page := problem.Current(raw)
	resp := problemResponse{Kind: page.Kind, Title: page.Title, Slug: page.Slug}
	if page.Kind == problem.KindProblem {
		resp.CanonicalURL = problem.NormalizeURL(raw)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	raw, err := requireQuery(r, "url")
	if err != nil {
		handleError(w, r, err)
		return
	}

	d, err := s.Difficulties.Difficulty(r.Context(), raw)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]models.Difficulty{"difficulty": d})
}
