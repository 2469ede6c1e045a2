package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCategorizeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categorize <text...>",
		Short: "Show which ledger a narration would be filed under",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			rules, err := a.rules()
			if err != nil {
				return err
			}
			ledger, ok := rules.Categorize(strings.Join(args, " "))
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (no rule matched)\n", ledger)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ledger)
			return nil
		},
	}
}
