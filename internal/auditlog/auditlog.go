// Package auditlog keeps an append-only CSV record of changes to the books.
package auditlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Actions written by tally.
const (
	ActionInit          = "init"
	ActionVoucherAdd    = "voucher_add"
	ActionVoucherDelete = "voucher_delete"
	ActionImport        = "import"
	ActionLedgerAdd     = "ledger_add"
)

// Entry is one row in the audit log.
type Entry struct {
	Timestamp time.Time
	Action    string
	VoucherID string
	Details   string
}

// Header is the CSV header for audit-log.csv.
const Header = "timestamp,action,voucher_id,details"

// FileName is the log path relative to the books root.
const FileName = "logs/audit-log.csv"

const (
	numFields    = 4
	colTimestamp = 0
	colAction    = 1
	colVoucherID = 2
	colDetails   = 3
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colAction] = e.Action
	row[colVoucherID] = e.VoucherID
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp: ts,
		Action:    record[colAction],
		VoucherID: record[colVoucherID],
		Details:   record[colDetails],
	}, nil
}

// Append writes entries to <root>/logs/audit-log.csv, creating the file and header if needed.
func Append(root string, entries []Entry) error {
	path := filepath.Join(root, FileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/audit-log.csv.
// Returns an empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, FileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Log records entries under a fixed books root. The zero Log discards.
type Log struct {
	root string
	now  func() time.Time
	mu   sync.Mutex
}

// New returns a Log writing under root.
func New(root string) *Log {
	return &Log{root: root, now: time.Now}
}

// Record appends one entry stamped with the current time.
func (l *Log) Record(action, voucherID, details string) error {
	if l == nil || l.root == "" {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return Append(l.root, []Entry{{
		Timestamp: l.now(),
		Action:    action,
		VoucherID: voucherID,
		Details:   details,
	}})
}
