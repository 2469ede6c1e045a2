package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/auditlog"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/report"
	"github.com/cleared-dev/tally/internal/voucher"
)

func newLedgerCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Manage the ledger master",
	}
	cmd.AddCommand(newLedgerListCommand(opts), newLedgerAddCommand(opts))
	return cmd
}

func newLedgerListCommand(opts *rootOptions) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ledgers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ls := a.ledgers.All()
			if group != "" {
				g, ok := model.ParseGroup(group)
				if !ok {
					return fmt.Errorf("unknown group %q", group)
				}
				ls = a.ledgers.ByGroup(g)
			}
			return a.renderer.Write(cmd.OutOrStdout(), report.LedgersMarkdown(ls), ls)
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "only ledgers in this group")
	return cmd
}

func newLedgerAddCommand(opts *rootOptions) *cobra.Command {
	var group, opening, description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a ledger to the master",
		Example: `  tally ledger add "HDFC Bank" --group "Bank Accounts" --opening 25000
  tally ledger add "Office Rent" --group Expense`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			l := model.Ledger{Name: args[0], Group: model.Group(group), Description: description}
			if opening != "" {
				amt, err := voucher.ParseAmount(opening)
				if err != nil {
					return fmt.Errorf("--opening: %w", err)
				}
				l.Opening = amt
			}
			if err := a.ledgers.Add(l); err != nil {
				return err
			}
			if err := a.ledgers.Save(a.root); err != nil {
				return err
			}
			a.recordAudit(auditlog.ActionLedgerAdd, "", fmt.Sprintf("%s (%s)", l.Name, group))
			a.commit("ledger add " + l.Name)

			fmt.Fprintf(cmd.OutOrStdout(), "Added ledger %s\n", l.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "ledger group, e.g. \"Bank Accounts\" or Expense")
	cmd.Flags().StringVar(&opening, "opening", "", "opening balance, debit positive")
	cmd.Flags().StringVar(&description, "description", "", "description")
	_ = cmd.MarkFlagRequired("group")
	return cmd
}
