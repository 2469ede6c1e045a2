package ledgers

import "github.com/cleared-dev/tally/internal/model"

// DefaultChart returns the starter ledger master written by `tally init`.
func DefaultChart() []model.Ledger {
	return []model.Ledger{
		{Name: "Cash", Group: model.GroupCash, Description: "Cash in hand"},
		{Name: "Bank", Group: model.GroupBank, Description: "Primary bank account"},
		{Name: "Capital Account", Group: model.GroupCapital, Description: "Owner's capital"},
		{Name: "Sundry Debtors", Group: model.GroupSundryDebtors},
		{Name: "Sundry Creditors", Group: model.GroupSundryCreditors},
		{Name: "Stock-in-Hand", Group: model.GroupStock},
		{Name: "Sales", Group: model.GroupIncome},
		{Name: "Purchase", Group: model.GroupExpense},
		{Name: "Rent", Group: model.GroupExpense, Description: "Office and shop rent"},
		{Name: "Salaries", Group: model.GroupExpense},
		{Name: "Suspense", Group: model.GroupLiability, Description: "Unclassified imports"},
	}
}
