package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophkms/internal/common"
	"github.com/dmitrijs2005/gophkms/internal/dbx"
)

// PostgresStore keeps entries in kv_entries and set members in
// kv_set_members. Expired rows stay until PurgeExpired removes them;
// every read filters them out.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
}

func (s *PostgresStore) expiry(ttl time.Duration) sql.NullTime {
	if ttl <= 0 {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: s.now().Add(ttl), Valid: true}
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	query :=
		`SELECT value FROM kv_entries
		 WHERE key = $1 AND (expires_at IS NULL OR expires_at > $2)`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key, s.now()).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, unavailable(err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	query :=
		`INSERT INTO kv_entries (key, value, expires_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE
		 SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`

	if _, err := s.db.ExecContext(ctx, query, key, value, s.expiry(ttl)); err != nil {
		return unavailable(err)
	}
	return nil
}

// SetNX relies on the primary key: the insert either creates the row or
// replaces one that has already expired. A live row is left untouched and
// no row is reported as affected.
func (s *PostgresStore) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	query :=
		`INSERT INTO kv_entries (key, value, expires_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE
		 SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
		 WHERE kv_entries.expires_at IS NOT NULL AND kv_entries.expires_at <= $4`

	res, err := s.db.ExecContext(ctx, query, key, value, s.expiry(ttl), s.now())
	if err != nil {
		return false, unavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, unavailable(err)
	}
	return n == 1, nil
}

func (s *PostgresStore) GetDel(ctx context.Context, key string) ([]byte, error) {
	query :=
		`DELETE FROM kv_entries
		 WHERE key = $1 AND (expires_at IS NULL OR expires_at > $2)
		 RETURNING value`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key, s.now()).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, unavailable(err)
	}
	return value, nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = $1`, key); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM kv_set_members WHERE key = $1`, key)
		return err
	})
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *PostgresStore) SAdd(ctx context.Context, key, member string) error {
	query :=
		`INSERT INTO kv_set_members (key, member)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, key, member); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *PostgresStore) SIsMember(ctx context.Context, key, member string) (bool, error) {
	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM kv_set_members WHERE key = $1 AND member = $2
		 )`

	var ok bool
	if err := s.db.QueryRowContext(ctx, query, key, member).Scan(&ok); err != nil {
		return false, unavailable(err)
	}
	return ok, nil
}

func (s *PostgresStore) SMembers(ctx context.Context, key string) ([]string, error) {
	query :=
		`SELECT member FROM kv_set_members
		 WHERE key = $1
		 ORDER BY member`

	rows, err := s.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	members := []string{}
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, unavailable(err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return members, nil
}

func (s *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	query :=
		`DELETE FROM kv_entries
		 WHERE expires_at IS NOT NULL AND expires_at <= $1`

	res, err := s.db.ExecContext(ctx, query, s.now())
	if err != nil {
		return 0, unavailable(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, unavailable(err)
	}
	return n, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
