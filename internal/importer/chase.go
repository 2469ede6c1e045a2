package importer

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

// ChaseParser parses Chase CSV exports. Columns are located by header name,
// so the checking layout (Details,Posting Date,Description,Amount,Type,...),
// the card layout (Transaction Date,Post Date,Description,Category,Type,Amount,Memo)
// and plain Date,Description,Debit,Credit sheets all work.
type ChaseParser struct{}

var chaseDateLayouts = []string{"01/02/2006", "2006-01-02", "1/2/2006"}

var (
	dateHeaders       = []string{"posting date", "transaction date", "date"}
	descHeaders       = []string{"description", "payee", "narration"}
	amountHeaders     = []string{"amount"}
	typeHeaders       = []string{"type", "details"}
	withdrawalHeaders = []string{"debit", "withdrawal", "withdrawals"}
	depositHeaders    = []string{"credit", "deposit", "deposits"}
)

// chaseColumns holds column indexes; -1 means absent.
type chaseColumns struct {
	date, desc, amount, typ, debit, credit int
}

func (c chaseColumns) width() int {
	return max(c.date, c.desc, c.amount, c.typ, c.debit, c.credit) + 1
}

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV and returns BankTransactions.
func (p *ChaseParser) Parse(r io.Reader) ([]model.BankTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	cols, err := findChaseColumns(records[0])
	if err != nil {
		return nil, err
	}

	var txns []model.BankTransaction
	for i, rec := range records[1:] {
		if blankRecord(rec) {
			continue
		}
		if len(rec) < cols.width() {
			return nil, fmt.Errorf("row %d: expected at least %d fields, got %d", i+2, cols.width(), len(rec))
		}
		txn, err := parseChaseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func findChaseColumns(header []string) (chaseColumns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}
	lookup := func(names []string) int {
		for _, n := range names {
			if i, ok := index[n]; ok {
				return i
			}
		}
		return -1
	}

	cols := chaseColumns{
		date:   lookup(dateHeaders),
		desc:   lookup(descHeaders),
		amount: lookup(amountHeaders),
		typ:    lookup(typeHeaders),
		debit:  lookup(withdrawalHeaders),
		credit: lookup(depositHeaders),
	}
	switch {
	case cols.date < 0:
		return cols, errors.New("missing date column")
	case cols.desc < 0:
		return cols, errors.New("missing description column")
	case cols.amount < 0 && (cols.debit < 0 || cols.credit < 0):
		return cols, errors.New("missing amount column (or debit and credit columns)")
	}
	return cols, nil
}

func parseChaseRow(rec []string, cols chaseColumns) (model.BankTransaction, error) {
	date, err := parseChaseDate(rec[cols.date])
	if err != nil {
		return model.BankTransaction{}, err
	}

	var amount decimal.Decimal
	if cols.amount >= 0 {
		amount, err = parseChaseAmount(rec[cols.amount])
		if err != nil {
			return model.BankTransaction{}, err
		}
	} else {
		out, err := parseChaseAmount(rec[cols.debit])
		if err != nil {
			return model.BankTransaction{}, err
		}
		in, err := parseChaseAmount(rec[cols.credit])
		if err != nil {
			return model.BankTransaction{}, err
		}
		amount = in.Sub(out.Abs())
	}

	desc := strings.TrimSpace(rec[cols.desc])
	var typ string
	if cols.typ >= 0 {
		typ = strings.TrimSpace(rec[cols.typ])
	}

	return model.BankTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Reference:   makeChaseRef(date, desc),
		Type:        typ,
	}, nil
}

func parseChaseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range chaseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing date %q: want MM/DD/YYYY or YYYY-MM-DD", s)
}

// parseChaseAmount accepts "1,200.00", "$12.00" and "(12.00)". Empty is zero.
func parseChaseAmount(s string) (decimal.Decimal, error) {
	raw := s
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	s = strings.Trim(s, "()")
	s = strings.NewReplacer(",", "", "$", "", " ", "").Replace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", raw, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

func blankRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// makeChaseRef creates a reference like chase_20250103_GITHUB.
func makeChaseRef(date time.Time, desc string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("chase_%s_%s", date.Format("20060102"), prefix)
}
