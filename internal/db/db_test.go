package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	database, err := Open(string(SQLite), ":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"users", "attempts", "events", "schema_migrations"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	database, err := Open(string(SQLite), ":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, database.applyMigrations(context.Background()))

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "root@/lanki")
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestDialectBuilder_Placeholders(t *testing.T) {
	query, _, err := Postgres.Builder().Select("id").From("users").Where("email = ?", "a@b.c").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM users WHERE email = $1", query)

	query, _, err = SQLite.Builder().Select("id").From("users").Where("email = ?", "a@b.c").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM users WHERE email = ?", query)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "lanki.db?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL", sqliteDSN("lanki.db"))
	assert.Equal(t, "file:x.db?cache=shared&_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL", sqliteDSN("file:x.db?cache=shared"))
}

func TestTx_RollsBackOnError(t *testing.T) {
	database, err := Open(string(SQLite), ":memory:")
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	err = database.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (email) VALUES ('a@b.c')`); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count))
	assert.Equal(t, 0, count)
}
