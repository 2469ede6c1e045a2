package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// LedgerAmount is one line of a statement. On the balance sheet Amount is
// the magnitude of the balance; Net keeps the sign (debit positive), so a
// chart-forced liability with a debit balance has a positive Net.
type LedgerAmount struct {
	Ledger string
	Amount decimal.Decimal
	Net    decimal.Decimal
}

// Contra reports whether the balance runs against the side it was placed on:
// a debit balance on a liability or a credit balance on an asset.
func (la LedgerAmount) Contra(side Side) bool {
	switch side {
	case SideAsset:
		return la.Net.IsNegative()
	case SideLiability:
		return la.Net.IsPositive()
	}
	return false
}

// BalanceSheet splits non-zero ledger balances into assets and liabilities,
// each reported as its absolute magnitude whatever the sign. Nominal carries
// income and expense ledgers (signed, debit positive) when a chart is in use.
// Every ledger appears in exactly one of the four lists.
type BalanceSheet struct {
	Assets           []LedgerAmount
	Liabilities      []LedgerAmount
	Nominal          []LedgerAmount
	Omitted          []string
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	TotalNominal     decimal.Decimal
}

// ComputeBalanceSheet classifies every ledger's net balance, including any
// opening balances supplied by the classifier. A nil classifier means
// SignClassifier.
func ComputeBalanceSheet(vs []model.Voucher, cls Classifier) BalanceSheet {
	if cls == nil {
		cls = SignClassifier{}
	}

	totals := accumulate(vs)
	for _, l := range cls.Ledgers() {
		k := key(l.Name)
		lt, ok := totals[k]
		if !ok {
			lt = &ledgerTotals{}
			totals[k] = lt
		}
		lt.rename(l.Name)
		if l.Opening.IsPositive() {
			lt.debit = lt.debit.Add(l.Opening)
		} else {
			lt.credit = lt.credit.Sub(l.Opening)
		}
	}

	bs := BalanceSheet{
		Assets:      []LedgerAmount{},
		Liabilities: []LedgerAmount{},
		Nominal:     []LedgerAmount{},
		Omitted:     []string{},
	}
	for _, k := range sortedKeys(totals) {
		lt := totals[k]
		if isOpeningSentinel(lt.name) {
			continue
		}
		net := lt.debit.Sub(lt.credit)
		if net.IsZero() {
			bs.Omitted = append(bs.Omitted, lt.name)
			continue
		}
		switch cls.Classify(lt.name, net) {
		case SideAsset:
			bs.Assets = append(bs.Assets, LedgerAmount{Ledger: lt.name, Amount: net.Abs(), Net: net})
			bs.TotalAssets = bs.TotalAssets.Add(net.Abs())
		case SideLiability:
			bs.Liabilities = append(bs.Liabilities, LedgerAmount{Ledger: lt.name, Amount: net.Abs(), Net: net})
			bs.TotalLiabilities = bs.TotalLiabilities.Add(net.Abs())
		default:
			bs.Nominal = append(bs.Nominal, LedgerAmount{Ledger: lt.name, Amount: net, Net: net})
			bs.TotalNominal = bs.TotalNominal.Add(net)
		}
	}
	return bs
}

// Side reports where ledger landed, or "" and false when it was omitted or
// never seen.
func (bs BalanceSheet) Side(ledger string) (Side, bool) {
	k := key(ledger)
	for _, list := range []struct {
		side  Side
		lines []LedgerAmount
	}{
		{SideAsset, bs.Assets},
		{SideLiability, bs.Liabilities},
		{SideNominal, bs.Nominal},
	} {
		for _, la := range list.lines {
			if key(la.Ledger) == k {
				return list.side, true
			}
		}
	}
	return "", false
}
