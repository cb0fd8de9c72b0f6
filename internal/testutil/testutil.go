package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/lanki/internal/db"
)

// NewTestDB opens an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(string(db.SQLite), ":memory:")
	require.NoError(t, err)
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// MustCreateUser inserts a user row and returns its id.
func MustCreateUser(t *testing.T, database *db.DB, email string) int64 {
	t.Helper()
	query, args, err := database.Builder().
		Insert("users").
		Columns("email").
		Values(email).
		Suffix("RETURNING user_id").
		ToSql()
	require.NoError(t, err)

	var id int64
	require.NoError(t, database.QueryRow(query, args...).Scan(&id))
	return id
}
