package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/auditlog"
	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/model"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var parser, bankLedger string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import bank statements as Payment and Receipt vouchers",
		Long: `Import bank statements as Payment and Receipt vouchers.

With no files, every statement in <books>/import/ is imported and then moved
to import/processed/. Contra ledgers are guessed from categories.yaml.`,
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
			if bankLedger == "" {
				bankLedger = a.cfg.Import.BankLedger
			}

			type job struct {
				path    string
				inQueue bool
			}
			var jobs []job
			for _, p := range args {
				jobs = append(jobs, job{path: p})
			}
			if len(args) == 0 {
				files, err := importer.Scan(a.root)
				if err != nil {
					return err
				}
				for _, f := range files {
					jobs = append(jobs, job{path: f.Path, inQueue: true})
				}
				if len(jobs) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Nothing to import in %s\n", filepath.Join(a.root, "import"))
					return nil
				}
			}

			registry := importer.DefaultRegistry()
			total := 0
			// Files imported before a failing one stay imported; commit them.
			defer func() {
				if total > 0 {
					a.commit(fmt.Sprintf("import: %d vouchers", total))
				}
			}()
			for _, j := range jobs {
				format := parser
				if format == "" {
					format = importer.DetectFormat(j.path)
				}
				p := registry.Get(format)
				if p == nil {
					return fmt.Errorf("%s: no parser for format %q", j.path, format)
				}

				txns, err := parseStatement(p, j.path)
				if err != nil {
					return err
				}
				vs := importer.ToVouchers(txns, bankLedger, rules, a.company)

				name := filepath.Base(j.path)
				if dryRun {
					for _, v := range vs {
						fmt.Fprintf(cmd.OutOrStdout(), "%s %-8s %-20s %-20s %12s  %s\n",
							v.Date.Format("2006-01-02"), v.Type, v.DebitLedger, v.CreditLedger, v.Amount.StringFixed(2), v.Narration)
					}
					continue
				}

				saved, err := a.vouchers.AddAll(cmd.Context(), vs)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				total += len(saved)
				a.recordAudit(auditlog.ActionImport, "", fmt.Sprintf("%s: %d vouchers", name, len(saved)))

				if j.inQueue {
					if err := importer.MarkProcessed(a.root, name); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d vouchers from %s%s\n", len(saved), name, unmatchedNote(vs, rules.FallbackLedger()))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&parser, "parser", "", "statement format: chase or ofx (default from file extension)")
	cmd.Flags().StringVar(&bankLedger, "bank-ledger", "", "ledger the statement belongs to (default from tally.yaml)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the vouchers without saving them")
	return cmd
}

func parseStatement(p importer.Parser, path string) ([]model.BankTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	txns, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return txns, nil
}

// unmatchedNote counts vouchers filed under the fallback ledger.
func unmatchedNote(vs []model.Voucher, fallback string) string {
	n := 0
	for _, v := range vs {
		if model.SameLedger(v.DebitLedger, fallback) || model.SameLedger(v.CreditLedger, fallback) {
			n++
		}
	}
	if n == 0 {
		return ""
	}
	return fmt.Sprintf(" (%d left in the fallback ledger for review)", n)
}
