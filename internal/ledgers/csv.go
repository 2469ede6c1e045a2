package ledgers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Header is the CSV header for ledgers.csv.
const Header = "name,group,opening,description"

const (
	numFields  = 4
	colName    = 0
	colGroup   = 1
	colOpening = 2
	colDesc    = 3
)

// ReadLedgers reads ledgers.csv.
func ReadLedgers(r io.Reader) ([]model.Ledger, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledgers CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var ledgers []model.Ledger
	for i, rec := range records[1:] {
		l, err := UnmarshalLedger(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		ledgers = append(ledgers, l)
	}
	return ledgers, nil
}

// WriteLedgers writes ledgers.csv including the header.
func WriteLedgers(w io.Writer, ledgers []model.Ledger) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, l := range ledgers {
		if err := cw.Write(MarshalLedger(l)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalLedger converts a Ledger to a CSV row.
func MarshalLedger(l model.Ledger) []string {
	row := make([]string, numFields)
	row[colName] = l.Name
	row[colGroup] = string(l.Group)
	if !l.Opening.IsZero() {
		row[colOpening] = l.Opening.StringFixed(2)
	}
	row[colDesc] = l.Description
	return row
}

// UnmarshalLedger converts a CSV row to a Ledger.
func UnmarshalLedger(record []string) (model.Ledger, error) {
	if len(record) != numFields {
		return model.Ledger{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	name := strings.TrimSpace(record[colName])
	if name == "" {
		return model.Ledger{}, fmt.Errorf("ledger name is empty")
	}

	var opening decimal.Decimal
	if record[colOpening] != "" {
		var err error
		opening, err = decimal.NewFromString(record[colOpening])
		if err != nil {
			return model.Ledger{}, fmt.Errorf("parsing opening %q: %w", record[colOpening], err)
		}
	}

	group, _ := model.ParseGroup(record[colGroup])
	return model.Ledger{
		Name:        name,
		Group:       group,
		Opening:     opening,
		Description: record[colDesc],
	}, nil
}
