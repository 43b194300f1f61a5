package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// The schema mirrors the key-value tables so the tests exercise the same
// two-table delete the PostgreSQL store performs.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv_entries (key TEXT PRIMARY KEY, value BLOB NOT NULL);
CREATE TABLE kv_set_members (key TEXT NOT NULL, member TEXT NOT NULL, PRIMARY KEY (key, member));
INSERT INTO kv_entries VALUES ('access:db-prod', x'00');
INSERT INTO kv_set_members VALUES ('access:db-prod', 'alice@example.com'), ('access:db-prod', 'bob@example.com');
`)
	require.NoError(t, err)
	return db
}

func countKey(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE key = 'access:db-prod'`).Scan(&n))
	return n
}

func deleteBoth(ctx context.Context, tx DBTX) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = 'access:db-prod'`); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `DELETE FROM kv_set_members WHERE key = 'access:db-prod'`)
	return err
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, WithTx(context.Background(), db, nil, deleteBoth))

	require.Equal(t, 0, countKey(t, db, "kv_entries"))
	require.Equal(t, 0, countKey(t, db, "kv_set_members"))
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, deleteBoth(ctx, tx))
		return errors.New("boom")
	})
	require.EqualError(t, err, "boom")

	require.Equal(t, 1, countKey(t, db, "kv_entries"))
	require.Equal(t, 2, countKey(t, db, "kv_set_members"))
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := setupDB(t)

	require.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, deleteBoth(ctx, tx))
			panic("kaput")
		})
	})

	require.Equal(t, 2, countKey(t, db, "kv_set_members"))
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		called = true
		return nil
	})
	require.Error(t, err)
	require.False(t, called)
}
