package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// WarningKind names an integrity check.
type WarningKind string

const (
	WarnDuplicate     WarningKind = "duplicate"
	WarnNegativeCash  WarningKind = "negative-cash"
	WarnNegativeStock WarningKind = "negative-stock"
)

// IntegrityWarning is advisory. It never blocks reading the books.
type IntegrityWarning struct {
	Kind       WarningKind
	Message    string
	VoucherIDs []string
}

// CheckOptions tunes Check.
type CheckOptions struct {
	// CashLedgers are checked for negative balances. Defaults to "Cash".
	CashLedgers []string
	// Chart supplies opening balances; its Cash-in-Hand ledgers are checked too.
	Chart []model.Ledger
}

// DefaultCashLedgers is used when CheckOptions.CashLedgers is empty.
var DefaultCashLedgers = []string{"Cash"}

// Check runs the integrity checks over an accepted collection. Warnings are
// ordered by kind, then by the order of their subject.
func Check(vs []model.Voucher, opts CheckOptions) []IntegrityWarning {
	warnings := []IntegrityWarning{}
	warnings = append(warnings, duplicates(vs)...)
	warnings = append(warnings, negativeCash(vs, opts)...)
	warnings = append(warnings, negativeStock(vs)...)
	return warnings
}

func duplicates(vs []model.Voucher) []IntegrityWarning {
	type group struct {
		first model.Voucher
		ids   []string
	}
	groups := make(map[string]*group)
	for _, v := range vs {
		k := strings.Join([]string{
			v.Date.Format("2006-01-02"),
			v.Amount.StringFixed(2),
			key(v.DebitLedger),
		}, "|")
		g, ok := groups[k]
		if !ok {
			g = &group{first: v}
			groups[k] = g
		}
		g.ids = append(g.ids, v.ID)
	}

	var out []IntegrityWarning
	for _, k := range sortedKeys(groups) {
		g := groups[k]
		if len(g.ids) < 2 {
			continue
		}
		ids := append([]string(nil), g.ids...)
		sort.Strings(ids)
		out = append(out, IntegrityWarning{
			Kind: WarnDuplicate,
			Message: fmt.Sprintf("%d vouchers on %s debit %s with %s",
				len(ids), g.first.Date.Format("2006-01-02"), g.first.DebitLedger, g.first.Amount.StringFixed(2)),
			VoucherIDs: ids,
		})
	}
	return out
}

func negativeCash(vs []model.Voucher, opts CheckOptions) []IntegrityWarning {
	names := opts.CashLedgers
	if len(names) == 0 {
		names = DefaultCashLedgers
	}

	opening := make(map[string]decimal.Decimal)
	cash := make(map[string]string)
	for _, n := range names {
		cash[key(n)] = strings.TrimSpace(n)
	}
	for _, l := range opts.Chart {
		opening[key(l.Name)] = l.Opening
		if l.Group == model.GroupCash {
			cash[key(l.Name)] = l.Name
		}
	}

	var out []IntegrityWarning
	for _, k := range sortedKeys(cash) {
		name := cash[k]
		net := opening[k].Add(NetBalance(name, vs))
		if !net.IsNegative() {
			continue
		}
		out = append(out, IntegrityWarning{
			Kind:    WarnNegativeCash,
			Message: fmt.Sprintf("%s has a credit balance of %s", name, net.Neg().StringFixed(2)),
		})
	}
	return out
}

func negativeStock(vs []model.Voucher) []IntegrityWarning {
	var out []IntegrityWarning
	for _, line := range ComputeStockSummary(vs) {
		if !line.ClosingQty.IsNegative() {
			continue
		}
		var ids []string
		for _, v := range vs {
			if v.HasItem() && key(v.Item) == key(line.Item) {
				ids = append(ids, v.ID)
			}
		}
		sort.Strings(ids)
		out = append(out, IntegrityWarning{
			Kind:       WarnNegativeStock,
			Message:    fmt.Sprintf("%s closes at %s units", line.Item, line.ClosingQty.String()),
			VoucherIDs: ids,
		})
	}
	return out
}
