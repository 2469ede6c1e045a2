package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	_ "github.com/lib/pq"
)

var postgresDialect = dialect{
	name:        "postgres",
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	dateColumn:  "to_char(date, 'YYYY-MM-DD')",
	lockTable:   "LOCK TABLE vouchers IN SHARE ROW EXCLUSIVE MODE",
}

// PostgresStore keeps vouchers in a hosted PostgreSQL database.
type PostgresStore struct {
	sqlStore
}

// NewPostgresStore connects using dsn and applies pending migrations.
func NewPostgresStore(ctx context.Context, dsn string, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dsn == "" {
		return nil, unavailable("open postgres", errors.New("TALLY_DATABASE_URL is not set"))
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, unavailable("open postgres", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, unavailable("ping postgres", err)
	}

	if err := runMigrations("postgres", dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	logger.Debug("postgres store opened")
	return &PostgresStore{sqlStore{db: db, dialect: postgresDialect, logger: logger}}, nil
}
