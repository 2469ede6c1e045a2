package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/report"
)

func newCheckCommand(opts *rootOptions) *cobra.Command {
	var from, to string
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Look for duplicates, negative cash and negative stock",
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
			if err := a.renderer.Write(cmd.OutOrStdout(), report.WarningsMarkdown(st.Warnings), st.Warnings); err != nil {
				return err
			}
			if !st.TrialBalance.Balanced() {
				return fmt.Errorf("trial balance is out of balance: debit %s, credit %s",
					st.TrialBalance.TotalDebit.StringFixed(2), st.TrialBalance.TotalCredit.StringFixed(2))
			}
			if strict && len(st.Warnings) > 0 {
				return fmt.Errorf("%d integrity warning(s)", len(st.Warnings))
			}
			return nil
		},
	}
	addPeriodFlags(cmd, &from, &to)
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any warning is found")
	return cmd
}
