package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/vytor/lanki/internal/errors"
	"github.com/vytor/lanki/internal/logger"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/repository"
)

// UserService handles user identity
type UserService interface {
	// Login ensures a user row exists for a verified email.
	Login(ctx context.Context, email string) (*models.User, error)
	LookupUserID(ctx context.Context, email string) (int64, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Login(ctx context.Context, email string) (*models.User, error) {
	log := logger.FromContext(ctx)
	email = normalizeEmail(email)
	log.Debug("login: email=%s", email)

	if email == "" {
		return nil, errors.NewUnauthorizedError("no authenticated user")
	}

	user, err := s.userRepo.Upsert(ctx, email)
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return user, nil
}

func (s *userService) LookupUserID(ctx context.Context, email string) (int64, error) {
	log := logger.FromContext(ctx)
	email = normalizeEmail(email)

	if email == "" {
		return 0, errors.NewUnauthorizedError("no authenticated user")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return 0, errors.NewNotFoundError("user", email)
		}
		log.Error("failed to look up user: %v", err)
		return 0, errors.NewInternalError(err)
	}
	return user.ID, nil
}
