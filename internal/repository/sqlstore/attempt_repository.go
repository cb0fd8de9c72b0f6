package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/lanki/internal/db"
	"github.com/vytor/lanki/internal/logger"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/repository"
	"github.com/vytor/lanki/internal/review"
)

type attemptRepository struct {
	db  *db.DB
	now func() time.Time
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *db.DB) repository.AttemptRepository {
	return &attemptRepository{db: db, now: time.Now}
}

var attemptColumns = []string{"id", "user_id", "problem_url", "last_10_accesses", "updated_at"}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(log *logger.Logger, row rowScanner) (models.AttemptHistory, error) {
	var (
		h   models.AttemptHistory
		raw string
	)
	if err := row.Scan(&h.ID, &h.UserID, &h.ProblemURL, &raw, &h.UpdatedAt); err != nil {
		return h, err
	}
	accesses, ok := decodeAccesses(raw)
	if !ok {
		log.Warn("malformed access history for attempt %d, treating as empty", h.ID)
	}
	h.RecentAccesses = accesses
	return h, nil
}

func (r *attemptRepository) ListByUser(ctx context.Context, userID int64) ([]models.AttemptHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("listing attempts: user_id=%d", userID)

	query, args, err := r.db.Builder().
		Select(attemptColumns...).
		From("attempts").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("problem_url ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var histories []models.AttemptHistory
	for rows.Next() {
		h, err := scanAttempt(log, rows)
		if err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		histories = append(histories, h)
	}

	log.Debug("found %d attempts", len(histories))
	return histories, rows.Err()
}

func (r *attemptRepository) Get(ctx context.Context, userID int64, problemURL string) (*models.AttemptHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("getting attempt: user_id=%d problem=%s", userID, problemURL)

	query, args, err := r.db.Builder().
		Select(attemptColumns...).
		From("attempts").
		Where(squirrel.Eq{"user_id": userID, "problem_url": problemURL}).
		ToSql()
	if err != nil {
		return nil, err
	}

	h, err := scanAttempt(log, r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		log.Error("failed to get attempt: %v", err)
		return nil, err
	}
	return &h, nil
}

func (r *attemptRepository) AppendAccess(ctx context.Context, userID int64, problemURL string, rec models.AccessRecord, limit int) (*models.AttemptHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("appending access: user_id=%d problem=%s difficulty=%s", userID, problemURL, rec.Difficulty)

	var out models.AttemptHistory
	err := r.db.Tx(ctx, func(tx *sql.Tx) error {
		query, args, err := r.db.Builder().
			Select("last_10_accesses").
			From("attempts").
			Where(squirrel.Eq{"user_id": userID, "problem_url": problemURL}).
			ToSql()
		if err != nil {
			return err
		}

		var raw string
		err = tx.QueryRowContext(ctx, query, args...).Scan(&raw)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		existing, ok := decodeAccesses(raw)
		if !ok {
			log.Warn("overwriting malformed access history: user_id=%d problem=%s", userID, problemURL)
		}

		accesses := review.PushAccess(existing, rec, limit)
		encoded, err := encodeAccesses(accesses)
		if err != nil {
			return err
		}

		updatedAt := r.now().UTC()
		query, args, err = r.db.Builder().
			Insert("attempts").
			Columns("user_id", "problem_url", "last_10_accesses", "updated_at").
			Values(userID, problemURL, encoded, updatedAt).
			Suffix("ON CONFLICT (user_id, problem_url) DO UPDATE SET last_10_accesses = excluded.last_10_accesses, updated_at = excluded.updated_at RETURNING id").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&out.ID); err != nil {
			return err
		}

		out.UserID = userID
		out.ProblemURL = problemURL
		out.RecentAccesses = accesses
		out.UpdatedAt = updatedAt
		return nil
	})
	if err != nil {
		log.Error("failed to append access: %v", err)
		return nil, err
	}

	log.Debug("attempt %d now holds %d accesses", out.ID, len(out.RecentAccesses))
	return &out, nil
}
