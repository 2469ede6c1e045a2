package voucher

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func validVoucher() model.Voucher {
	return model.Voucher{
		Date:         date(2025, 1, 15),
		Type:         model.VoucherSales,
		DebitLedger:  "Cash",
		CreditLedger: "Sales",
		Amount:       dec("100.00"),
	}
}

func fields(errs Errors) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}
