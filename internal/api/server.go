package api

import (
	"context"
	"net/http"

	"github.com/vytor/lanki/internal/services"
	"github.com/vytor/lanki/internal/session"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	DB           Pinger
	Users        services.UserService
	Reviews      services.ReviewService
	Ratings      services.RatingService
	Events       services.EventService
	Difficulties services.DifficultyService
	Sessions     *session.Controller
	// Auth attaches the caller's verified email to the request context.
	Auth              func(http.Handler) http.Handler
	CORSAllowedOrigin string
}
