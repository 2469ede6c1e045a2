package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/tally/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func vch(id string, day int, typ model.VoucherType, debit, credit, amount string) model.Voucher {
	return model.Voucher{
		ID:           id,
		Date:         date(2025, 1, day),
		Type:         typ,
		DebitLedger:  debit,
		CreditLedger: credit,
		Amount:       dec(amount),
	}
}

func stockVch(id string, day int, typ model.VoucherType, debit, credit, amount, item, qty string) model.Voucher {
	v := vch(id, day, typ, debit, credit, amount)
	v.Item = item
	v.Quantity = dec(qty)
	return v
}

// salesAndPurchase is the two-voucher example: a 1000 sale and a 400 purchase.
func salesAndPurchase() []model.Voucher {
	return []model.Voucher{
		vch("2025-01-001", 1, model.VoucherSales, "Cash", "Sales", "1000"),
		vch("2025-01-002", 2, model.VoucherPurchase, "Purchase", "Cash", "400"),
	}
}

// mixedBooks covers every voucher type, an opening entry and stock movement.
func mixedBooks() []model.Voucher {
	return []model.Voucher{
		vch("2025-01-001", 1, model.VoucherOpening, "Cash", model.OpeningBalanceLedger, "5000"),
		vch("2025-01-002", 1, model.VoucherOpening, model.OpeningBalanceLedger, "Capital Account", "5000"),
		stockVch("2025-01-003", 2, model.VoucherPurchase, "Purchase", "Acme Supplies", "1200", "Widget", "12"),
		stockVch("2025-01-004", 3, model.VoucherSales, "Cash", "Sales", "900", "Widget", "5"),
		vch("2025-01-005", 4, model.VoucherPayment, "Acme Supplies", "Cash", "1200"),
		vch("2025-01-006", 5, model.VoucherContra, "Bank", "Cash", "2000"),
		vch("2025-01-007", 6, model.VoucherJournal, "Rent", "Bank", "300"),
		vch("2025-01-008", 7, model.VoucherReceipt, "Bank", "Interest", "15.50"),
	}
}
