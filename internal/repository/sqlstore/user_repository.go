package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/lanki/internal/db"
	"github.com/vytor/lanki/internal/logger"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/repository"
)

type userRepository struct {
	db *db.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *db.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user by email: %s", email)

	query, args, err := r.db.Builder().
		Select("user_id", "email", "created_at").
		From("users").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var u models.User
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: %s", email)
		return nil, repository.ErrNotFound
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Upsert(ctx context.Context, email string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("upserting user: %s", email)

	query, args, err := r.db.Builder().
		Insert("users").
		Columns("email").
		Values(email).
		Suffix("ON CONFLICT (email) DO UPDATE SET email = excluded.email RETURNING user_id, email, created_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	var u models.User
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, err
	}
	log.Debug("user upserted: user_id=%d", u.ID)
	return &u, nil
}
