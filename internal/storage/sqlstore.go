package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/model"
)

// dialect captures the handful of differences between the SQL backends.
type dialect struct {
	name        string
	placeholder func(n int) string
	dateColumn  string // select expression yielding YYYY-MM-DD text
	lockTable   string // optional statement run before assigning an ID
}

// sqlStore implements Store over database/sql. It backs both SQLiteStore and
// PostgresStore.
type sqlStore struct {
	db      *sql.DB
	dialect dialect
	logger  *slog.Logger
}

func (s *sqlStore) Insert(ctx context.Context, v model.Voucher) (model.Voucher, error) {
	saved, err := s.InsertAll(ctx, []model.Voucher{v})
	if err != nil {
		return model.Voucher{}, err
	}
	return saved[0], nil
}

// InsertAll assigns IDs and inserts vs inside a single transaction.
func (s *sqlStore) InsertAll(ctx context.Context, vs []model.Voucher) ([]model.Voucher, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, unavailable("begin insert", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if s.dialect.lockTable != "" {
		if _, err := tx.ExecContext(ctx, s.dialect.lockTable); err != nil {
			return nil, unavailable("lock vouchers", err)
		}
	}

	ph := make([]string, 10)
	for i := range ph {
		ph[i] = s.dialect.placeholder(i + 1)
	}
	query := "INSERT INTO vouchers (id, date, type, debit_ledger, credit_ledger, amount, item, quantity, narration, company) VALUES (" +
		strings.Join(ph, ", ") + ")"

	monthIDs := map[string][]string{}
	out := make([]model.Voucher, len(vs))
	for i, v := range vs {
		prefix := fmt.Sprintf("%04d-%02d-", v.Date.Year(), int(v.Date.Month()))
		ids, ok := monthIDs[prefix]
		if !ok {
			ids, err = s.idsWithPrefix(ctx, tx, prefix)
			if err != nil {
				return nil, err
			}
		}
		v.ID = id.Next(ids, v.Date)
		monthIDs[prefix] = append(ids, v.ID)

		_, err = tx.ExecContext(ctx, query,
			v.ID,
			v.Date.Format(dateFormat),
			string(v.Type),
			v.DebitLedger,
			v.CreditLedger,
			v.Amount.StringFixed(2),
			v.Item,
			v.Quantity.String(),
			v.Narration,
			strings.TrimSpace(v.Company),
		)
		if err != nil {
			return nil, unavailable("insert voucher", err)
		}
		out[i] = v
	}
	if err := tx.Commit(); err != nil {
		return nil, unavailable("commit insert", err)
	}

	for _, v := range out {
		s.logger.DebugContext(ctx, "voucher inserted", "id", v.ID)
	}
	return out, nil
}

func (s *sqlStore) idsWithPrefix(ctx context.Context, tx *sql.Tx, prefix string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id FROM vouchers WHERE id LIKE "+s.dialect.placeholder(1), prefix+"%")
	if err != nil {
		return nil, unavailable("query month ids", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var existing string
		if err := rows.Scan(&existing); err != nil {
			return nil, unavailable("scan id", err)
		}
		ids = append(ids, existing)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate ids", err)
	}
	return ids, nil
}

func (s *sqlStore) Delete(ctx context.Context, voucherID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM vouchers WHERE id = "+s.dialect.placeholder(1), voucherID)
	if err != nil {
		return unavailable("delete voucher", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("delete voucher", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, voucherID)
	}
	s.logger.DebugContext(ctx, "voucher deleted", "id", voucherID)
	return nil
}

func (s *sqlStore) List(ctx context.Context, f Filter) ([]model.Voucher, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		where = append(where, strings.ReplaceAll(clause, "?", s.dialect.placeholder(len(args))))
	}
	if c := strings.TrimSpace(f.Company); c != "" {
		add("lower(company) = lower(?)", c)
	}
	if !f.From.IsZero() {
		add("date >= ?", f.From.Format(dateFormat))
	}
	if !f.To.IsZero() {
		add("date <= ?", f.To.Format(dateFormat))
	}

	query := "SELECT id, " + s.dialect.dateColumn + ", type, debit_ledger, credit_ledger, amount, item, quantity, narration, company FROM vouchers"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("list vouchers", err)
	}
	defer rows.Close()

	out := []model.Voucher{}
	for rows.Next() {
		var (
			v        model.Voucher
			date     string
			typ      string
			amount   decimal.Decimal
			quantity decimal.Decimal
		)
		if err := rows.Scan(&v.ID, &date, &typ, &v.DebitLedger, &v.CreditLedger, &amount, &v.Item, &quantity, &v.Narration, &v.Company); err != nil {
			return nil, unavailable("scan voucher", err)
		}
		v.Date, err = time.Parse(dateFormat, date)
		if err != nil {
			return nil, &RecordError{Source: "vouchers", VoucherID: v.ID, Err: model.ValidationError{
				Field: "date", VoucherID: v.ID, Description: fmt.Sprintf("parsing date %q: want YYYY-MM-DD", date),
			}}
		}
		v.Type = model.VoucherType(typ)
		v.Amount = amount
		v.Quantity = quantity
		if errs := v.Validate(); len(errs) > 0 {
			return nil, &RecordError{Source: "vouchers", VoucherID: v.ID, Err: errs}
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate vouchers", err)
	}
	return out, nil
}

func (s *sqlStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
