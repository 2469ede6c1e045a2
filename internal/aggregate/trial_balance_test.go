package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func TestTrialBalance_Example(t *testing.T) {
	tb := ComputeTrialBalance(salesAndPurchase())
	require.Len(t, tb.Rows, 3)

	cash, ok := tb.Row("Cash")
	require.True(t, ok)
	assertDec(t, "1000", cash.Debit)
	assertDec(t, "400", cash.Credit)

	sales, ok := tb.Row("Sales")
	require.True(t, ok)
	assertDec(t, "0", sales.Debit)
	assertDec(t, "1000", sales.Credit)

	purchase, ok := tb.Row("purchase")
	require.True(t, ok)
	assertDec(t, "400", purchase.Debit)
	assertDec(t, "0", purchase.Credit)

	assert.True(t, tb.Balanced())
	assertDec(t, "1400", tb.TotalDebit)
}

func TestTrialBalance_RowsSorted(t *testing.T) {
	tb := ComputeTrialBalance(mixedBooks())
	names := make([]string, len(tb.Rows))
	for i, r := range tb.Rows {
		names[i] = r.Ledger
	}
	assert.Equal(t, []string{"Acme Supplies", "Bank", "Capital Account", "Cash", "Interest", "Purchase", "Rent", "Sales"}, names)
}

func TestTrialBalance_OpeningSentinelExcluded(t *testing.T) {
	tb := ComputeTrialBalance(mixedBooks())

	_, ok := tb.Row(model.OpeningBalanceLedger)
	assert.False(t, ok, "opening placeholder must not be a row")
	assertDec(t, "5000", tb.OpeningDifference.Debit)
	assertDec(t, "5000", tb.OpeningDifference.Credit)
	assert.True(t, tb.Balanced())
}

func TestTrialBalance_BalanceLaw(t *testing.T) {
	sets := map[string][]model.Voucher{
		"example": salesAndPurchase(),
		"mixed":   mixedBooks(),
		"single":  {vch("2025-01-001", 1, model.VoucherJournal, "A", "B", "0.01")},
		"opening only": {
			vch("2025-01-001", 1, model.VoucherOpening, "Cash", model.OpeningBalanceLedger, "700"),
		},
	}
	for name, vs := range sets {
		tb := ComputeTrialBalance(vs)

		debit, credit := tb.OpeningDifference.Debit, tb.OpeningDifference.Credit
		for _, r := range tb.Rows {
			debit = debit.Add(r.Debit)
			credit = credit.Add(r.Credit)
		}
		assert.True(t, debit.Equal(credit), "%s: debits %s != credits %s", name, debit, credit)
		assert.True(t, tb.Balanced(), "%s: totals must balance", name)
		assert.True(t, debit.Equal(tb.TotalDebit), "%s: total debit", name)
	}
}

func TestTrialBalance_CaseInsensitiveLedgers(t *testing.T) {
	vs := []model.Voucher{
		vch("2025-01-001", 1, model.VoucherSales, "cash", "Sales", "10"),
		vch("2025-01-002", 2, model.VoucherSales, " Cash", "Sales", "5"),
	}
	tb := ComputeTrialBalance(vs)
	require.Len(t, tb.Rows, 2)
	cash, ok := tb.Row("CASH")
	require.True(t, ok)
	assert.Equal(t, "Cash", cash.Ledger)
	assertDec(t, "15", cash.Debit)
}

func TestTrialBalance_Empty(t *testing.T) {
	tb := ComputeTrialBalance(nil)
	assert.NotNil(t, tb.Rows)
	assert.Empty(t, tb.Rows)
	assert.True(t, tb.TotalDebit.IsZero())
	assert.True(t, tb.TotalCredit.IsZero())
	assert.True(t, tb.Balanced())
}

func TestNetBalance(t *testing.T) {
	vs := salesAndPurchase()
	assertDec(t, "600", NetBalance("Cash", vs))
	assertDec(t, "-1000", NetBalance("Sales", vs))
	assertDec(t, "400", NetBalance("Purchase", vs))
	assertDec(t, "0", NetBalance("Unknown", vs))

	tb := ComputeTrialBalance(vs)
	for _, r := range tb.Rows {
		assert.True(t, r.Net().Equal(NetBalance(r.Ledger, vs)), "net of %s", r.Ledger)
	}
}

func TestForCompany(t *testing.T) {
	vs := salesAndPurchase()
	vs[0].Company = "Acme"
	vs[1].Company = "Globex"

	got := ForCompany(vs, "acme")
	require.Len(t, got, 1)
	assert.Equal(t, "2025-01-001", got[0].ID)

	assert.Len(t, ForCompany(vs, ""), 2)
	assert.Empty(t, ForCompany(vs, "Initech"))
}

func TestAggregationDoesNotMutateInput(t *testing.T) {
	vs := mixedBooks()
	before := make([]model.Voucher, len(vs))
	copy(before, vs)

	_ = ComputeTrialBalance(vs)
	_ = ComputeProfitAndLoss(vs)
	_ = ComputeBalanceSheet(vs, nil)
	_ = ComputeStockSummary(vs)
	_ = Check(vs, CheckOptions{})

	require.Len(t, vs, len(before))
	for i := range vs {
		assert.Equal(t, before[i].ID, vs[i].ID)
		assert.True(t, before[i].Amount.Equal(vs[i].Amount))
		assert.Equal(t, before[i].DebitLedger, vs[i].DebitLedger)
	}
}

func TestTrialBalance_Idempotent(t *testing.T) {
	vs := mixedBooks()
	first := ComputeTrialBalance(vs)
	second := ComputeTrialBalance(vs)
	require.Len(t, second.Rows, len(first.Rows))
	for i := range first.Rows {
		assert.Equal(t, first.Rows[i].Ledger, second.Rows[i].Ledger)
		assert.True(t, first.Rows[i].Debit.Equal(second.Rows[i].Debit))
		assert.True(t, first.Rows[i].Credit.Equal(second.Rows[i].Credit))
	}
	assert.True(t, first.TotalDebit.Equal(second.TotalDebit))
	assert.True(t, decimal.Zero.Equal(first.TotalDebit.Sub(second.TotalDebit)))
}
