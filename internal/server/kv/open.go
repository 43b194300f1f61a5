package kv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophkms/internal/server/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Open returns the store selected by driver. For postgres it connects
// through pgx and applies the embedded migrations first.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverPostgres:
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		if err := RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations error: %w", err)
		}
		return NewPostgresStore(db), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
