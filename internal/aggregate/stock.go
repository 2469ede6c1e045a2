package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// StockLine summarises the movements of one inventory item.
//
// AvgRate is the mean amount of the item's inward vouchers and StockValue is
// ClosingQty * AvgRate. WeightedRate is total inward amount per inward unit.
// ClosingQty goes negative when more was sold than recorded as received.
type StockLine struct {
	Item         string
	Inward       decimal.Decimal
	Outward      decimal.Decimal
	ClosingQty   decimal.Decimal
	AvgRate      decimal.Decimal
	StockValue   decimal.Decimal
	WeightedRate decimal.Decimal
}

type stockTotals struct {
	line         StockLine
	inwardAmount decimal.Decimal
	inwardCount  int64
}

// ComputeStockSummary groups item-carrying vouchers by item. Purchase and
// Opening vouchers are inward, Sales vouchers outward. Lines are sorted by item.
func ComputeStockSummary(vs []model.Voucher) []StockLine {
	items := make(map[string]*stockTotals)
	for _, v := range vs {
		if !v.HasItem() {
			continue
		}
		k := key(v.Item)
		st, ok := items[k]
		if !ok {
			st = &stockTotals{line: StockLine{Item: v.Item}}
			items[k] = st
		}
		if v.Item < st.line.Item {
			st.line.Item = v.Item
		}

		switch v.Type {
		case model.VoucherPurchase, model.VoucherOpening:
			st.line.Inward = st.line.Inward.Add(v.Quantity)
			st.inwardAmount = st.inwardAmount.Add(v.Amount)
			st.inwardCount++
		case model.VoucherSales:
			st.line.Outward = st.line.Outward.Add(v.Quantity)
		}
	}

	lines := make([]StockLine, 0, len(items))
	for _, k := range sortedKeys(items) {
		st := items[k]
		line := st.line
		line.ClosingQty = line.Inward.Sub(line.Outward)
		if st.inwardCount > 0 {
			line.AvgRate = st.inwardAmount.Div(decimal.NewFromInt(st.inwardCount))
		}
		if line.Inward.IsPositive() {
			line.WeightedRate = st.inwardAmount.Div(line.Inward)
		}
		line.StockValue = line.ClosingQty.Mul(line.AvgRate)
		lines = append(lines, line)
	}
	return lines
}
