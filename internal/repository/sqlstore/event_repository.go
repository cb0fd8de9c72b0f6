package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/lanki/internal/db"
	"github.com/vytor/lanki/internal/logger"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/repository"
)

type eventRepository struct {
	db  *db.DB
	now func() time.Time
}

// NewEventRepository creates a new EventRepository implementation
func NewEventRepository(db *db.DB) repository.EventRepository {
	return &eventRepository{db: db, now: time.Now}
}

func (r *eventRepository) Insert(ctx context.Context, event models.Event) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("event_repo")
	log.Debug("inserting event: user_id=%d type=%s", event.UserID, event.Type)

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}

	query, args, err := r.db.Builder().
		Insert("events").
		Columns("user_id", "event_type", "difficulty", "problem", "rank", "created_at").
		Values(event.UserID, string(event.Type), nullString(event.Difficulty), nullString(event.Problem), nullInt(event.Rank), createdAt.UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		log.Error("failed to insert event: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *eventRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Event, error) {
	log := logger.FromContext(ctx).WithPrefix("event_repo")
	log.Debug("listing events: user_id=%d limit=%d", userID, limit)

	builder := r.db.Builder().
		Select("id", "user_id", "event_type", "difficulty", "problem", "rank", "created_at").
		From("events").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list events: %v", err)
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var (
			e          models.Event
			eventType  string
			difficulty sql.NullString
			problem    sql.NullString
			rank       sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.UserID, &eventType, &difficulty, &problem, &rank, &e.CreatedAt); err != nil {
			log.Error("failed to scan event row: %v", err)
			return nil, err
		}
		e.Type = models.EventType(eventType)
		e.Difficulty = difficulty.String
		e.Problem = problem.String
		if rank.Valid {
			n := int(rank.Int64)
			e.Rank = &n
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
