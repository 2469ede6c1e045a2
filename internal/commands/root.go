package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/buildinfo"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	books    string
	company  string
	format   string
	logLevel string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Double-entry voucher books with trial balance, P&L and balance sheet",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.books, "books", ".", "books directory")
	pf.StringVar(&opts.company, "company", "", "company to report on (default from tally.yaml)")
	pf.StringVar(&opts.format, "format", "markdown", "output format: markdown, pretty or json")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newVoucherCommand(opts),
		newLedgerCommand(opts),
		newReportCommand(opts),
		newCheckCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
		newCategorizeCommand(opts),
	)

	return rootCmd
}
