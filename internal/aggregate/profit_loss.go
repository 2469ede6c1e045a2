package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

var (
	incomeTypes  = map[model.VoucherType]bool{model.VoucherSales: true, model.VoucherReceipt: true}
	expenseTypes = map[model.VoucherType]bool{model.VoucherPurchase: true, model.VoucherPayment: true}
)

// ProfitAndLoss is derived from voucher types alone: Sales and Receipt are
// income, Purchase and Payment are expense, everything else is ignored.
type ProfitAndLoss struct {
	Income    decimal.Decimal
	Expense   decimal.Decimal
	NetProfit decimal.Decimal
	ByType    map[model.VoucherType]decimal.Decimal
}

// ComputeProfitAndLoss totals income and expense vouchers.
func ComputeProfitAndLoss(vs []model.Voucher) ProfitAndLoss {
	pnl := ProfitAndLoss{ByType: make(map[model.VoucherType]decimal.Decimal)}
	for _, v := range vs {
		switch {
		case incomeTypes[v.Type]:
			pnl.Income = pnl.Income.Add(v.Amount)
		case expenseTypes[v.Type]:
			pnl.Expense = pnl.Expense.Add(v.Amount)
		default:
			continue
		}
		pnl.ByType[v.Type] = pnl.ByType[v.Type].Add(v.Amount)
	}
	pnl.NetProfit = pnl.Income.Sub(pnl.Expense)
	return pnl
}
