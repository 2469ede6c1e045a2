package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cleared-dev/tally/internal/aggregate"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/storage"
)

// WriteVouchersCSV writes vouchers in the same layout as the books' month files.
func WriteVouchersCSV(w io.Writer, vs []model.Voucher) error {
	if err := storage.WriteVouchers(w, vs); err != nil {
		return fmt.Errorf("writing vouchers csv: %w", err)
	}
	return nil
}

// TrialBalanceHeader is the header row of WriteTrialBalanceCSV.
var TrialBalanceHeader = []string{"ledger", "debit", "credit", "net"}

// WriteTrialBalanceCSV writes one row per ledger followed by the opening
// difference (when non-zero) and a totals row.
func WriteTrialBalanceCSV(w io.Writer, tb aggregate.TrialBalance) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TrialBalanceHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range tb.Rows {
		if err := cw.Write([]string{r.Ledger, r.Debit.StringFixed(2), r.Credit.StringFixed(2), r.Net().StringFixed(2)}); err != nil {
			return fmt.Errorf("writing row %s: %w", r.Ledger, err)
		}
	}
	if d := tb.OpeningDifference; !d.Debit.IsZero() || !d.Credit.IsZero() {
		if err := cw.Write([]string{model.OpeningBalanceLedger, d.Debit.StringFixed(2), d.Credit.StringFixed(2), d.Net().StringFixed(2)}); err != nil {
			return fmt.Errorf("writing opening difference: %w", err)
		}
	}
	if err := cw.Write([]string{"Total", tb.TotalDebit.StringFixed(2), tb.TotalCredit.StringFixed(2), tb.TotalDebit.Sub(tb.TotalCredit).StringFixed(2)}); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
