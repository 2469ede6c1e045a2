package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/aggregate"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/report"
	"github.com/cleared-dev/tally/internal/voucher"
)

func newVoucherCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voucher",
		Short: "Record, list and delete vouchers",
	}
	cmd.AddCommand(
		newVoucherAddCommand(opts),
		newVoucherListCommand(opts),
		newVoucherDeleteCommand(opts),
	)
	return cmd
}

func newVoucherAddCommand(opts *rootOptions) *cobra.Command {
	var raw voucher.Raw

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a voucher",
		Example: `  tally voucher add --type Sales --debit Cash --credit Sales --amount 1500
  tally voucher add --type Purchase --debit Purchase --credit "Sundry Creditors" \
      --amount 2400 --item Rice --qty 40 --date 2025-03-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if raw.Date == "" {
				raw.Date = time.Now().Format(voucher.DateFormat)
			}
			raw.Company = a.company

			v, err := voucher.Parse(raw)
			if err != nil {
				return err
			}
			if a.cfg.Ledgers.Mode == "chart" {
				for _, name := range []string{v.DebitLedger, v.CreditLedger} {
					if name != model.OpeningBalanceLedger && !a.ledgers.Exists(name) {
						a.logger.Warn("ledger not in ledger master", "ledger", name)
					}
				}
			}

			saved, err := a.vouchers.Add(cmd.Context(), v)
			if err != nil {
				return err
			}
			a.commit(fmt.Sprintf("voucher add %s: %s %s", saved.ID, saved.Type, saved.Amount.StringFixed(2)))

			fmt.Fprintf(cmd.OutOrStdout(), "Added voucher %s\n", saved.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&raw.Date, "date", "", "voucher date, YYYY-MM-DD (default today)")
	f.StringVar(&raw.Type, "type", "", "voucher type: Sales, Purchase, Receipt, Payment, Contra, Journal or Opening")
	f.StringVar(&raw.DebitLedger, "debit", "", "ledger debited")
	f.StringVar(&raw.CreditLedger, "credit", "", "ledger credited")
	f.StringVar(&raw.Amount, "amount", "", "amount")
	f.StringVar(&raw.Item, "item", "", "inventory item")
	f.StringVar(&raw.Quantity, "qty", "", "inventory quantity")
	f.StringVar(&raw.Narration, "narration", "", "free-text narration")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("debit")
	_ = cmd.MarkFlagRequired("credit")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newVoucherListCommand(opts *rootOptions) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List vouchers in date order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			snap, err := snapshot(cmd, a, from, to)
			if err != nil {
				return err
			}
			return a.renderer.Write(cmd.OutOrStdout(), report.VouchersMarkdown(snap.Vouchers), snap.Vouchers)
		},
	}
	addPeriodFlags(cmd, &from, &to)
	return cmd
}

func newVoucherDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a voucher by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.vouchers.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.commit("voucher delete " + args[0])

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted voucher %s\n", args[0])
			return nil
		},
	}
}

func addPeriodFlags(cmd *cobra.Command, from, to *string) {
	cmd.Flags().StringVar(from, "from", "", "first date to include, YYYY-MM-DD")
	cmd.Flags().StringVar(to, "to", "", "last date to include, YYYY-MM-DD")
}

// snapshot loads the company's vouchers for the period.
func snapshot(cmd *cobra.Command, a *app, from, to string) (voucher.Snapshot, error) {
	fromDate, err := parseDateFlag("from", from)
	if err != nil {
		return voucher.Snapshot{}, err
	}
	toDate, err := parseDateFlag("to", to)
	if err != nil {
		return voucher.Snapshot{}, err
	}
	if !fromDate.IsZero() && !toDate.IsZero() && toDate.Before(fromDate) {
		return voucher.Snapshot{}, fmt.Errorf("--to %s is before --from %s", to, from)
	}
	return a.vouchers.Snapshot(cmd.Context(), a.filter(fromDate, toDate))
}

// statements computes every statement over the period.
func statements(cmd *cobra.Command, a *app, from, to string) (aggregate.Statements, error) {
	snap, err := snapshot(cmd, a, from, to)
	if err != nil {
		return aggregate.Statements{}, err
	}
	if snap.Empty() {
		a.logger.Info("no vouchers recorded for this period", "company", a.company)
	}
	return aggregate.ComputeStatements(cmd.Context(), snap.Vouchers, a.classifier(), a.checkOptions())
}
