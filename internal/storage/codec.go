package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Header is the CSV header for vouchers.csv.
const Header = "id,date,type,debit_ledger,credit_ledger,amount,item,quantity,narration,company"

const (
	numFields    = 10
	dateFormat   = "2006-01-02"
	colID        = 0
	colDate      = 1
	colType      = 2
	colDebit     = 3
	colCredit    = 4
	colAmount    = 5
	colItem      = 6
	colQuantity  = 7
	colNarration = 8
	colCompany   = 9
)

// ReadVouchers reads all vouchers from a vouchers.csv reader. Rows that do
// not parse or fail model.Voucher.Validate are returned as *RecordError.
func ReadVouchers(r io.Reader) ([]model.Voucher, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &RecordError{Row: pe.StartLine, Err: pe.Err}
		}
		return nil, fmt.Errorf("reading vouchers CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var vs []model.Voucher
	for i, rec := range records[1:] {
		row := i + 2
		v, err := UnmarshalVoucher(rec)
		if err != nil {
			return nil, &RecordError{Row: row, VoucherID: rec[colID], Err: err}
		}
		if errs := v.Validate(); len(errs) > 0 {
			return nil, &RecordError{Row: row, VoucherID: v.ID, Err: errs}
		}
		vs = append(vs, v)
	}
	return vs, nil
}

// WriteVouchers writes vouchers to w including the header.
func WriteVouchers(w io.Writer, vs []model.Voucher) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, v := range vs {
		if err := cw.Write(MarshalVoucher(v)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalVoucher converts a Voucher to a CSV row.
func MarshalVoucher(v model.Voucher) []string {
	row := make([]string, numFields)
	row[colID] = v.ID
	row[colDate] = v.Date.Format(dateFormat)
	row[colType] = string(v.Type)
	row[colDebit] = v.DebitLedger
	row[colCredit] = v.CreditLedger
	row[colAmount] = v.Amount.StringFixed(2)
	row[colItem] = v.Item
	if !v.Quantity.IsZero() {
		row[colQuantity] = v.Quantity.String()
	}
	row[colNarration] = v.Narration
	row[colCompany] = v.Company
	return row
}

// UnmarshalVoucher converts a CSV row to a Voucher. A field that does not
// parse is reported as a model.ValidationError naming it.
func UnmarshalVoucher(record []string) (model.Voucher, error) {
	if len(record) != numFields {
		return model.Voucher{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	bad := func(field, format string, args ...any) error {
		return model.ValidationError{
			Field:       field,
			VoucherID:   record[colID],
			Description: fmt.Sprintf(format, args...),
		}
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Voucher{}, bad("date", "parsing date %q: want YYYY-MM-DD", record[colDate])
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Voucher{}, bad("amount", "parsing amount %q: not a number", record[colAmount])
	}

	var qty decimal.Decimal
	if record[colQuantity] != "" {
		qty, err = decimal.NewFromString(record[colQuantity])
		if err != nil {
			return model.Voucher{}, bad("quantity", "parsing quantity %q: not a number", record[colQuantity])
		}
	}

	return model.Voucher{
		ID:           record[colID],
		Date:         date,
		Type:         model.VoucherType(record[colType]),
		DebitLedger:  record[colDebit],
		CreditLedger: record[colCredit],
		Amount:       amount,
		Item:         record[colItem],
		Quantity:     qty,
		Narration:    record[colNarration],
		Company:      record[colCompany],
	}, nil
}
