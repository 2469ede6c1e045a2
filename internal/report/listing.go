package report

import (
	"strings"

	"github.com/cleared-dev/tally/internal/model"
)

// VouchersMarkdown renders vouchers as a table in the order given.
func VouchersMarkdown(vs []model.Voucher) string {
	var b strings.Builder
	heading(&b, 2, "Vouchers")
	if len(vs) == 0 {
		b.WriteString("No vouchers recorded.\n")
		return b.String()
	}

	rows := make([][]string, 0, len(vs))
	for _, v := range vs {
		item := ""
		if v.HasItem() {
			item = v.Item + " x " + v.Quantity.String()
		}
		rows = append(rows, []string{
			v.ID,
			v.Date.Format("2006-01-02"),
			string(v.Type),
			v.DebitLedger,
			v.CreditLedger,
			money(v.Amount),
			item,
			v.Narration,
		})
	}
	table(&b, []string{"ID", "Date", "Type", "Debit", "Credit", "Amount", "Item", "Narration"}, rows, 5)
	return b.String()
}

// LedgersMarkdown renders the ledger master.
func LedgersMarkdown(ls []model.Ledger) string {
	var b strings.Builder
	heading(&b, 2, "Ledgers")
	if len(ls) == 0 {
		b.WriteString("No ledgers defined.\n")
		return b.String()
	}

	rows := make([][]string, 0, len(ls))
	for _, l := range ls {
		opening := ""
		if !l.Opening.IsZero() {
			opening = money(l.Opening)
		}
		rows = append(rows, []string{l.Name, string(l.Group), string(l.Group.Nature()), opening, l.Description})
	}
	table(&b, []string{"Name", "Group", "Nature", "Opening", "Description"}, rows, 3)
	return b.String()
}
