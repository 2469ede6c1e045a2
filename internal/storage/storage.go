// Package storage persists vouchers. Every backend reports connection and I/O
// failures as ErrUnavailable so callers can tell an empty book from one that
// could not be read. Stored rows that are not valid vouchers are reported as
// *RecordError, which wraps ErrInvalidRecord and never ErrUnavailable.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/model"
)

var (
	// ErrNotFound is returned when deleting a voucher ID that does not exist.
	ErrNotFound = errors.New("voucher not found")
	// ErrUnavailable wraps any failure to reach or read the backing store.
	ErrUnavailable = errors.New("voucher store unavailable")
	// ErrInvalidRecord marks a stored row that does not hold a valid voucher.
	ErrInvalidRecord = errors.New("invalid voucher record")
)

// RecordError locates a stored row that failed to parse or validate. Err is
// a model.ValidationErrors or model.ValidationError when the row was readable,
// or the CSV syntax error otherwise.
type RecordError struct {
	Source    string // file path or table name
	Row       int    // 1-based file line; 0 for database rows
	VoucherID string
	Err       error
}

func (e *RecordError) Error() string {
	var loc strings.Builder
	loc.WriteString(e.Source)
	if e.Row > 0 {
		fmt.Fprintf(&loc, " row %d", e.Row)
	}
	if e.VoucherID != "" {
		fmt.Fprintf(&loc, " (voucher %s)", e.VoucherID)
	}
	return fmt.Sprintf("%s: %s: %v", strings.TrimSpace(loc.String()), ErrInvalidRecord, e.Err)
}

func (e *RecordError) Unwrap() []error { return []error{ErrInvalidRecord, e.Err} }

// Store is a voucher source and sink. Vouchers are never updated in place.
type Store interface {
	// Insert assigns the voucher an ID and persists it.
	Insert(ctx context.Context, v model.Voucher) (model.Voucher, error)
	// InsertAll persists vs as one unit: either every voucher is stored, in
	// order and with consecutive IDs per month, or none is.
	InsertAll(ctx context.Context, vs []model.Voucher) ([]model.Voucher, error)
	Delete(ctx context.Context, id string) error
	// List returns matching vouchers ordered by date, then ID. No matches is
	// an empty slice and a nil error.
	List(ctx context.Context, f Filter) ([]model.Voucher, error)
	Close() error
}

// Filter narrows List. Zero values match everything; date bounds are inclusive.
type Filter struct {
	Company string
	From    time.Time
	To      time.Time
}

// Match reports whether v passes the filter.
func (f Filter) Match(v model.Voucher) bool {
	if f.Company != "" && !strings.EqualFold(strings.TrimSpace(v.Company), strings.TrimSpace(f.Company)) {
		return false
	}
	if !f.From.IsZero() && v.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && v.Date.After(f.To) {
		return false
	}
	return true
}

func sortVouchers(vs []model.Voucher) {
	sort.SliceStable(vs, func(i, j int) bool {
		if !vs[i].Date.Equal(vs[j].Date) {
			return vs[i].Date.Before(vs[j].Date)
		}
		return vs[i].ID < vs[j].ID
	})
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// Open builds the configured backend. root is the books directory; relative
// sqlite paths are resolved against it.
func Open(ctx context.Context, cfg config.StorageConfig, root string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "storage", "backend", cfg.Backend)

	switch cfg.Backend {
	case "", "csv":
		return NewCSVStore(root, logger), nil
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "tally.db"
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		return NewSQLiteStore(ctx, path, logger)
	case "postgres":
		return NewPostgresStore(ctx, cfg.DSN, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
