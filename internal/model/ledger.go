package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Group classifies a ledger in the ledger master.
type Group string

const (
	GroupAsset           Group = "Asset"
	GroupLiability       Group = "Liability"
	GroupCapital         Group = "Capital Account"
	GroupIncome          Group = "Income"
	GroupExpense         Group = "Expense"
	GroupCash            Group = "Cash-in-Hand"
	GroupBank            Group = "Bank Accounts"
	GroupSundryDebtors   Group = "Sundry Debtors"
	GroupSundryCreditors Group = "Sundry Creditors"
	GroupStock           Group = "Stock-in-Hand"
	GroupDuties          Group = "Duties & Taxes"
)

// Nature is the debit/credit character a group imposes on its ledgers.
type Nature string

const (
	NatureAsset     Nature = "asset"
	NatureLiability Nature = "liability"
	NatureIncome    Nature = "income"
	NatureExpense   Nature = "expense"
)

var groupNature = map[Group]Nature{
	GroupAsset:           NatureAsset,
	GroupCash:            NatureAsset,
	GroupBank:            NatureAsset,
	GroupSundryDebtors:   NatureAsset,
	GroupStock:           NatureAsset,
	GroupLiability:       NatureLiability,
	GroupCapital:         NatureLiability,
	GroupSundryCreditors: NatureLiability,
	GroupDuties:          NatureLiability,
	GroupIncome:          NatureIncome,
	GroupExpense:         NatureExpense,
}

// Groups lists the known groups.
var Groups = []Group{
	GroupAsset,
	GroupCash,
	GroupBank,
	GroupSundryDebtors,
	GroupStock,
	GroupLiability,
	GroupCapital,
	GroupSundryCreditors,
	GroupDuties,
	GroupIncome,
	GroupExpense,
}

// ParseGroup matches s against the known groups case-insensitively.
func ParseGroup(s string) (Group, bool) {
	s = strings.TrimSpace(s)
	for _, g := range Groups {
		if strings.EqualFold(s, string(g)) {
			return g, true
		}
	}
	return Group(s), false
}

// Nature returns the group's nature, or "" for groups outside the known set.
func (g Group) Nature() Nature {
	return groupNature[g]
}

// Ledger is a row in the ledger master.
type Ledger struct {
	Name        string
	Group       Group
	Opening     decimal.Decimal // signed: debit balances positive
	Description string
}
