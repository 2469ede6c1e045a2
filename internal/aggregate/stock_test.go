package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/model"
)

func TestStockSummary(t *testing.T) {
	vs := []model.Voucher{
		stockVch("2025-01-001", 1, model.VoucherOpening, "Stock-in-Hand", model.OpeningBalanceLedger, "100", "Widget", "10"),
		stockVch("2025-01-002", 2, model.VoucherPurchase, "Purchase", "Cash", "200", "Widget", "10"),
		stockVch("2025-01-003", 3, model.VoucherSales, "Cash", "Sales", "450", "Widget", "15"),
		stockVch("2025-01-004", 4, model.VoucherPurchase, "Purchase", "Cash", "60", "Gadget", "3"),
		vch("2025-01-005", 5, model.VoucherSales, "Cash", "Sales", "999"),
	}

	lines := ComputeStockSummary(vs)
	require.Len(t, lines, 2)

	gadget := lines[0]
	assert.Equal(t, "Gadget", gadget.Item)
	assertDec(t, "3", gadget.ClosingQty)
	assertDec(t, "60", gadget.AvgRate)
	assertDec(t, "180", gadget.StockValue)
	assertDec(t, "20", gadget.WeightedRate)

	widget := lines[1]
	assert.Equal(t, "Widget", widget.Item)
	assertDec(t, "20", widget.Inward)
	assertDec(t, "15", widget.Outward)
	assertDec(t, "5", widget.ClosingQty)
	assertDec(t, "150", widget.AvgRate, "mean of inward voucher amounts")
	assertDec(t, "750", widget.StockValue)
	assertDec(t, "15", widget.WeightedRate)
}

func TestStockSummary_NegativeClosingNotClamped(t *testing.T) {
	vs := []model.Voucher{
		stockVch("2025-01-001", 1, model.VoucherSales, "Cash", "Sales", "300", "Widget", "3"),
		stockVch("2025-01-002", 2, model.VoucherPurchase, "Purchase", "Cash", "100", "Widget", "1"),
	}
	lines := ComputeStockSummary(vs)
	require.Len(t, lines, 1)
	assertDec(t, "-2", lines[0].ClosingQty)
	assertDec(t, "-200", lines[0].StockValue)
}

func TestStockSummary_SalesOnlyHasZeroRate(t *testing.T) {
	vs := []model.Voucher{
		stockVch("2025-01-001", 1, model.VoucherSales, "Cash", "Sales", "30", "Bolt", "3"),
	}
	lines := ComputeStockSummary(vs)
	require.Len(t, lines, 1)
	assertDec(t, "0", lines[0].AvgRate)
	assertDec(t, "0", lines[0].WeightedRate)
	assertDec(t, "0", lines[0].StockValue)
	assertDec(t, "-3", lines[0].ClosingQty)
}

func TestStockSummary_ItemsCaseInsensitive(t *testing.T) {
	vs := []model.Voucher{
		stockVch("2025-01-001", 1, model.VoucherPurchase, "Purchase", "Cash", "10", "widget", "1"),
		stockVch("2025-01-002", 2, model.VoucherPurchase, "Purchase", "Cash", "10", "Widget ", "1"),
	}
	lines := ComputeStockSummary(vs)
	require.Len(t, lines, 1)
	assertDec(t, "2", lines[0].Inward)
}

func TestStockSummary_Empty(t *testing.T) {
	lines := ComputeStockSummary(salesAndPurchase())
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}
