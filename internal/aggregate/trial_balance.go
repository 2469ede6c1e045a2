package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// TrialBalanceRow holds the debit and credit movements of one ledger.
type TrialBalanceRow struct {
	Ledger string
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Net returns Debit - Credit.
func (r TrialBalanceRow) Net() decimal.Decimal {
	return r.Debit.Sub(r.Credit)
}

// TrialBalance lists per-ledger totals. The Opening Balance placeholder is kept
// out of Rows and reported as OpeningDifference; the totals include it, so
// TotalDebit equals TotalCredit for any set of valid vouchers.
type TrialBalance struct {
	Rows              []TrialBalanceRow
	OpeningDifference TrialBalanceRow
	TotalDebit        decimal.Decimal
	TotalCredit       decimal.Decimal
}

// Balanced reports whether total debits equal total credits.
func (tb TrialBalance) Balanced() bool {
	return tb.TotalDebit.Equal(tb.TotalCredit)
}

// Row returns the row for ledger, matched case-insensitively.
func (tb TrialBalance) Row(ledger string) (TrialBalanceRow, bool) {
	k := key(ledger)
	for _, r := range tb.Rows {
		if key(r.Ledger) == k {
			return r, true
		}
	}
	return TrialBalanceRow{}, false
}

// ComputeTrialBalance sums every voucher into per-ledger debit and credit
// totals. Rows are sorted by ledger name.
func ComputeTrialBalance(vs []model.Voucher) TrialBalance {
	totals := accumulate(vs)
	tb := TrialBalance{
		Rows:              make([]TrialBalanceRow, 0, len(totals)),
		OpeningDifference: TrialBalanceRow{Ledger: model.OpeningBalanceLedger},
	}

	for _, k := range sortedKeys(totals) {
		lt := totals[k]
		row := TrialBalanceRow{Ledger: lt.name, Debit: lt.debit, Credit: lt.credit}
		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
		if isOpeningSentinel(lt.name) {
			tb.OpeningDifference.Debit = row.Debit
			tb.OpeningDifference.Credit = row.Credit
			continue
		}
		tb.Rows = append(tb.Rows, row)
	}
	return tb
}
