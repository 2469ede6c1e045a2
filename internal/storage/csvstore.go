package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/model"
)

// VoucherFile is the per-month file name under <root>/YYYY/MM/.
const VoucherFile = "vouchers.csv"

// CSVStore keeps vouchers in month-partitioned CSV files under a books root.
type CSVStore struct {
	root   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewCSVStore returns a store rooted at root. The directory is created on
// first insert.
func NewCSVStore(root string, logger *slog.Logger) *CSVStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVStore{root: root, logger: logger}
}

// Insert adds v to its month's file, assigning the next ID for that month.
func (s *CSVStore) Insert(ctx context.Context, v model.Voucher) (model.Voucher, error) {
	saved, err := s.InsertAll(ctx, []model.Voucher{v})
	if err != nil {
		return model.Voucher{}, err
	}
	return saved[0], nil
}

// InsertAll stages every touched month file next to the original and only
// renames them into place once all of them are written.
func (s *CSVStore) InsertAll(ctx context.Context, vs []model.Voucher) ([]model.Voucher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	type monthKey struct{ year, month int }
	months := map[monthKey][]model.Voucher{}
	var order []monthKey

	out := make([]model.Voucher, len(vs))
	for i, v := range vs {
		k := monthKey{v.Date.Year(), int(v.Date.Month())}
		rows, ok := months[k]
		if !ok {
			existing, err := s.readMonth(k.year, k.month)
			if err != nil {
				return nil, err
			}
			rows = existing
			order = append(order, k)
		}
		ids := make([]string, len(rows))
		for j, r := range rows {
			ids[j] = r.ID
		}
		v.ID = id.Next(ids, v.Date)
		months[k] = append(rows, v)
		out[i] = v
	}

	var staged []string
	discard := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}
	for _, k := range order {
		path := s.monthPath(k.year, k.month)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			discard()
			return nil, unavailable("creating month dir", err)
		}
		var buf bytes.Buffer
		if err := WriteVouchers(&buf, months[k]); err != nil {
			discard()
			return nil, fmt.Errorf("encoding vouchers: %w", err)
		}
		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
			discard()
			return nil, unavailable("writing voucher file", err)
		}
		staged = append(staged, tmp)
	}
	for _, tmp := range staged {
		if err := os.Rename(tmp, strings.TrimSuffix(tmp, ".tmp")); err != nil {
			discard()
			return nil, unavailable("replacing voucher file", err)
		}
	}

	for _, v := range out {
		s.logger.Debug("voucher stored", "id", v.ID)
	}
	return out, nil
}

// Delete removes the voucher with the given ID by rewriting its month file.
func (s *CSVStore) Delete(ctx context.Context, voucherID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	year, month, _, err := id.ParseVoucherID(voucherID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, voucherID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.readMonth(year, month)
	if err != nil {
		return err
	}

	kept := existing[:0]
	found := false
	for _, v := range existing {
		if v.ID == voucherID {
			found = true
			continue
		}
		kept = append(kept, v)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, voucherID)
	}

	var buf bytes.Buffer
	if err := WriteVouchers(&buf, kept); err != nil {
		return fmt.Errorf("encoding vouchers: %w", err)
	}

	path := s.monthPath(year, month)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return unavailable("writing voucher file", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return unavailable("replacing voucher file", err)
	}

	s.logger.Debug("voucher deleted", "id", voucherID, "path", path)
	return nil
}

// List reads every month file under the root.
func (s *CSVStore) List(ctx context.Context, f Filter) ([]model.Voucher, error) {
	if _, err := os.Stat(s.root); err != nil {
		return nil, unavailable("opening books root", err)
	}

	files, err := filepath.Glob(filepath.Join(s.root, "[0-9][0-9][0-9][0-9]", "[0-9][0-9]", VoucherFile))
	if err != nil {
		return nil, unavailable("listing month files", err)
	}

	out := []model.Voucher{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vs, err := readFile(path)
		if err != nil {
			return nil, err
		}
		for _, v := range vs {
			if f.Match(v) {
				out = append(out, v)
			}
		}
	}
	sortVouchers(out)
	return out, nil
}

// Close is a no-op.
func (s *CSVStore) Close() error { return nil }

func (s *CSVStore) readMonth(year, month int) ([]model.Voucher, error) {
	vs, err := readFile(s.monthPath(year, month))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return vs, err
}

func readFile(path string) ([]model.Voucher, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err != nil {
		return nil, unavailable("opening "+path, err)
	}
	defer f.Close()

	vs, err := ReadVouchers(f)
	var re *RecordError
	if errors.As(err, &re) {
		re.Source = path
		return nil, re
	}
	if err != nil {
		return nil, unavailable("reading "+path, err)
	}
	return vs, nil
}

func (s *CSVStore) monthPath(year, month int) string {
	return filepath.Join(s.root, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), VoucherFile)
}
