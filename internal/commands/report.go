package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/aggregate"
	"github.com/cleared-dev/tally/internal/report"
)

func newReportCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute financial statements",
	}

	type statement struct {
		use, short string
		render     func(st aggregate.Statements) (string, any)
	}
	for _, s := range []statement{
		{"trial-balance", "Per-ledger debit and credit totals", func(st aggregate.Statements) (string, any) {
			return report.TrialBalanceMarkdown(st.TrialBalance), st.TrialBalance
		}},
		{"pnl", "Profit and loss by voucher type", func(st aggregate.Statements) (string, any) {
			return report.ProfitAndLossMarkdown(st.ProfitAndLoss), st.ProfitAndLoss
		}},
		{"balance-sheet", "Assets and liabilities", func(st aggregate.Statements) (string, any) {
			return report.BalanceSheetMarkdown(st.BalanceSheet), st.BalanceSheet
		}},
		{"stock", "Inventory summary", func(st aggregate.Statements) (string, any) {
			return report.StockMarkdown(st.Stock), st.Stock
		}},
		{"all", "Every statement and integrity check", nil},
	} {
		cmd.AddCommand(newStatementCommand(opts, s.use, s.short, s.render))
	}
	return cmd
}

func newStatementCommand(opts *rootOptions, use, short string, render func(aggregate.Statements) (string, any)) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			st, err := statements(cmd, a, from, to)
			if err != nil {
				return err
			}
			if render == nil {
				return a.renderer.Write(cmd.OutOrStdout(), report.StatementsMarkdown(a.company, st), st)
			}
			md, data := render(st)
			return a.renderer.Write(cmd.OutOrStdout(), md, data)
		},
	}
	addPeriodFlags(cmd, &from, &to)
	return cmd
}
