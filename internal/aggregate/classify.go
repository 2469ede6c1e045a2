package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// Side is where a ledger lands in the balance sheet.
type Side string

const (
	SideAsset     Side = "asset"
	SideLiability Side = "liability"
	SideNominal   Side = "nominal" // income and expense ledgers of an explicit chart
)

// Classifier decides the balance-sheet side of a ledger with a non-zero net
// balance. Ledgers returns any master records whose opening balances should be
// included; it may be empty.
type Classifier interface {
	Ledgers() []model.Ledger
	Classify(ledger string, net decimal.Decimal) Side
}

// SignClassifier implements the implicit-ledger model: debit balances are
// assets and credit balances are liabilities.
type SignClassifier struct{}

// Ledgers returns nil; implicit books carry no master.
func (SignClassifier) Ledgers() []model.Ledger { return nil }

// Classify returns SideAsset for a positive net and SideLiability otherwise.
func (SignClassifier) Classify(_ string, net decimal.Decimal) Side {
	if net.IsPositive() {
		return SideAsset
	}
	return SideLiability
}

// Chart looks up ledgers in an explicit ledger master.
type Chart interface {
	All() []model.Ledger
	Get(name string) (model.Ledger, bool)
}

// ChartClassifier classifies by the declared group nature of each ledger,
// falling back to the sign rule for ledgers the chart does not know.
type ChartClassifier struct {
	Chart Chart
}

// Ledgers returns every ledger in the chart.
func (c ChartClassifier) Ledgers() []model.Ledger {
	if c.Chart == nil {
		return nil
	}
	return c.Chart.All()
}

// Classify uses the ledger's group nature when it has one.
func (c ChartClassifier) Classify(ledger string, net decimal.Decimal) Side {
	if c.Chart != nil {
		if l, ok := c.Chart.Get(ledger); ok {
			switch l.Group.Nature() {
			case model.NatureAsset:
				return SideAsset
			case model.NatureLiability:
				return SideLiability
			case model.NatureIncome, model.NatureExpense:
				return SideNominal
			}
		}
	}
	return SignClassifier{}.Classify(ledger, net)
}
