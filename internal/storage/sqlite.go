package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

var sqliteDialect = dialect{
	name:        "sqlite",
	placeholder: func(int) string { return "?" },
	dateColumn:  "date",
}

// SQLiteStore keeps vouchers in a local SQLite database file.
type SQLiteStore struct {
	sqlStore
	path string
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// applies pending migrations.
func NewSQLiteStore(ctx context.Context, dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, unavailable("create db directory", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, unavailable("open sqlite database", err)
	}
	// SQLite serialises writers; one connection avoids SQLITE_BUSY on insert.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, unavailable("ping database", err)
	}

	if err := runMigrations("sqlite", dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite %s: %w", dbPath, err)
	}

	logger.Debug("sqlite store opened", "path", dbPath)
	return &SQLiteStore{
		sqlStore: sqlStore{db: db, dialect: sqliteDialect, logger: logger},
		path:     dbPath,
	}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }
