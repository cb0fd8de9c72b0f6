package repository

import (
	"context"
	"errors"

	"github.com/vytor/lanki/internal/models"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

// UserRepository handles user identity data access
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Upsert(ctx context.Context, email string) (*models.User, error)
}

// AttemptRepository handles per-problem rating history data access
type AttemptRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.AttemptHistory, error)
	Get(ctx context.Context, userID int64, problemURL string) (*models.AttemptHistory, error)
	// AppendAccess adds rec to the problem's history, creating it if needed and
	// evicting the oldest entries beyond limit.
	AppendAccess(ctx context.Context, userID int64, problemURL string, rec models.AccessRecord, limit int) (*models.AttemptHistory, error)
}

// EventRepository handles the widget interaction log
type EventRepository interface {
	Insert(ctx context.Context, event models.Event) (int64, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.Event, error)
}
