// Package aggregate derives statements from an immutable snapshot of vouchers.
//
// Every function here is pure: inputs are never modified and no state is kept
// between calls, so one snapshot may be aggregated from many goroutines at once.
package aggregate

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// ForCompany returns the vouchers owned by company. An empty company keeps
// every voucher.
func ForCompany(vs []model.Voucher, company string) []model.Voucher {
	company = strings.TrimSpace(company)
	out := make([]model.Voucher, 0, len(vs))
	for _, v := range vs {
		if company == "" || strings.EqualFold(strings.TrimSpace(v.Company), company) {
			out = append(out, v)
		}
	}
	return out
}

// key folds a ledger or item name so that "Cash" and " cash" aggregate together.
func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type ledgerTotals struct {
	name   string
	debit  decimal.Decimal
	credit decimal.Decimal
}

func (lt *ledgerTotals) rename(name string) {
	name = strings.TrimSpace(name)
	// Keep the smallest spelling so the display name does not depend on input order.
	if lt.name == "" || name < lt.name {
		lt.name = name
	}
}

// accumulate sums both legs of every voucher per ledger.
func accumulate(vs []model.Voucher) map[string]*ledgerTotals {
	totals := make(map[string]*ledgerTotals)
	get := func(name string) *ledgerTotals {
		k := key(name)
		lt, ok := totals[k]
		if !ok {
			lt = &ledgerTotals{}
			totals[k] = lt
		}
		lt.rename(name)
		return lt
	}
	for _, v := range vs {
		dr := get(v.DebitLedger)
		dr.debit = dr.debit.Add(v.Amount)
		cr := get(v.CreditLedger)
		cr.credit = cr.credit.Add(v.Amount)
	}
	return totals
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isOpeningSentinel(name string) bool {
	return key(name) == key(model.OpeningBalanceLedger)
}

// NetBalance returns debitTotal(ledger) - creditTotal(ledger). A positive
// result is a debit balance.
func NetBalance(ledger string, vs []model.Voucher) decimal.Decimal {
	k := key(ledger)
	net := decimal.Zero
	for _, v := range vs {
		if key(v.DebitLedger) == k {
			net = net.Add(v.Amount)
		}
		if key(v.CreditLedger) == k {
			net = net.Sub(v.Amount)
		}
	}
	return net
}
