package db

import (
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

const postgresDriverName = "pgx"

// NewPostgresDB connects through pgx's database/sql driver. Pragmas do not
// apply; pool options do.
func NewPostgresDB(dsn string, opts ...Option) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("connect to database: empty postgres dsn")
	}
	cfg := newConfig(opts)

	slog.Info("db", "driver", "jackc/pgx/v5")
	db, err := sqlx.Connect(postgresDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	cfg.apply(db)

	return db, nil
}
