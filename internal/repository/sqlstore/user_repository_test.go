package sqlstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/lanki/internal/db"
	"github.com/vytor/lanki/internal/repository"
	"github.com/vytor/lanki/internal/repository/sqlstore"
	"github.com/vytor/lanki/internal/testutil"
)

type UserRepositorySuite struct {
	suite.Suite
	db   *db.DB
	repo repository.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlstore.NewUserRepository(s.db)
}

func (s *UserRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *UserRepositorySuite) TestUpsert_CreatesThenReuses() {
	ctx := context.Background()

	first, err := s.repo.Upsert(ctx, "ada@example.com")
	s.Require().NoError(err)
	s.Assert().Greater(first.ID, int64(0))
	s.Assert().Equal("ada@example.com", first.Email)
	s.Assert().False(first.CreatedAt.IsZero())

	second, err := s.repo.Upsert(ctx, "ada@example.com")
	s.Require().NoError(err)
	s.Assert().Equal(first.ID, second.ID)
}

func (s *UserRepositorySuite) TestGetByEmail() {
	ctx := context.Background()
	created, err := s.repo.Upsert(ctx, "grace@example.com")
	s.Require().NoError(err)

	got, err := s.repo.GetByEmail(ctx, "grace@example.com")
	s.Require().NoError(err)
	s.Assert().Equal(created.ID, got.ID)
}

func (s *UserRepositorySuite) TestGetByEmail_NotFound() {
	got, err := s.repo.GetByEmail(context.Background(), "nobody@example.com")
	s.Assert().ErrorIs(err, repository.ErrNotFound)
	s.Assert().Nil(got)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
