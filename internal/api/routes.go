package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(corsMiddleware(s.CORSAllowedOrigin))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/problem", s.handleProblem)
		r.Get("/difficulty", s.handleDifficulty)

		r.Group(func(r chi.Router) {
			if s.Auth != nil {
				r.Use(s.Auth)
			}
			r.Use(requireUser)

			r.Get("/recommendations", s.handleRecommendations)
			r.Post("/ratings", s.handleSubmitRating)
			r.Post("/events/try-again", s.handleTryAgainEvent)
			r.Post("/events/upcoming-click", s.handleUpcomingClickEvent)

			r.Post("/sessions", s.handleCreateSession)
			r.Route("/sessions/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Post("/navigate", s.handleNavigate)
				r.Post("/rating", s.handleSessionRating)
				r.Post("/try-again", s.handleSessionTryAgain)
			})
		})
	})
	return r
}
