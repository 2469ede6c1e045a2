package aggregate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/tally/internal/model"
)

// Statements bundles every statement derived from one snapshot.
type Statements struct {
	TrialBalance  TrialBalance
	ProfitAndLoss ProfitAndLoss
	BalanceSheet  BalanceSheet
	Stock         []StockLine
	Warnings      []IntegrityWarning
}

// ComputeStatements derives all statements from vs concurrently. The
// goroutines only read vs, so no coordination is needed beyond the group.
func ComputeStatements(ctx context.Context, vs []model.Voucher, cls Classifier, opts CheckOptions) (Statements, error) {
	var st Statements
	g, ctx := errgroup.WithContext(ctx)

	run := func(fn func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	run(func() { st.TrialBalance = ComputeTrialBalance(vs) })
	run(func() { st.ProfitAndLoss = ComputeProfitAndLoss(vs) })
	run(func() { st.BalanceSheet = ComputeBalanceSheet(vs, cls) })
	run(func() { st.Stock = ComputeStockSummary(vs) })
	run(func() { st.Warnings = Check(vs, opts) })

	if err := g.Wait(); err != nil {
		return Statements{}, err
	}
	return st, nil
}
