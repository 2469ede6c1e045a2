package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/aggregate"
	"github.com/cleared-dev/tally/internal/export"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export vouchers for other accounting software",
	}
	cmd.AddCommand(newExportTallyCommand(opts), newExportCSVCommand(opts))
	return cmd
}

func newExportTallyCommand(opts *rootOptions) *cobra.Command {
	var from, to, output string

	cmd := &cobra.Command{
		Use:   "tally",
		Short: "Write vouchers as Tally import XML",
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
			w, closeFn, err := outputFile(cmd, output)
			if err != nil {
				return err
			}
			if err := export.WriteTallyXML(w, a.company, snap.Vouchers); err != nil {
				closeFn()
				return err
			}
			if err := closeFn(); err != nil {
				return fmt.Errorf("closing %s: %w", output, err)
			}
			a.logger.Info("exported vouchers", "count", len(snap.Vouchers), "format", "tally-xml")
			return nil
		},
	}
	addPeriodFlags(cmd, &from, &to)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func newExportCSVCommand(opts *rootOptions) *cobra.Command {
	var from, to, output string
	var trialBalance bool

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Write vouchers, or the trial balance, as CSV",
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
			w, closeFn, err := outputFile(cmd, output)
			if err != nil {
				return err
			}
			if trialBalance {
				err = export.WriteTrialBalanceCSV(w, aggregate.ComputeTrialBalance(snap.Vouchers))
			} else {
				err = export.WriteVouchersCSV(w, snap.Vouchers)
			}
			if err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}
	addPeriodFlags(cmd, &from, &to)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&trialBalance, "trial-balance", false, "export the trial balance instead of vouchers")
	return cmd
}
