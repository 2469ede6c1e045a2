// Package report renders computed statements for people and programs.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/aggregate"
	"github.com/cleared-dev/tally/internal/model"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// table writes a GitHub-flavoured markdown table. Columns listed in numeric
// are right-aligned.
func table(b *strings.Builder, headers []string, rows [][]string, numeric ...int) {
	right := make(map[int]bool, len(numeric))
	for _, n := range numeric {
		right[n] = true
	}

	b.WriteString("| " + strings.Join(headers, " | ") + " |\n|")
	for i := range headers {
		if right[i] {
			b.WriteString(" ---: |")
		} else {
			b.WriteString(" --- |")
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = strings.ReplaceAll(c, "|", `\|`)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
}

func heading(b *strings.Builder, level int, title string) {
	b.WriteString(strings.Repeat("#", level) + " " + title + "\n\n")
}

// TrialBalanceMarkdown renders per-ledger debits and credits with totals.
func TrialBalanceMarkdown(tb aggregate.TrialBalance) string {
	var b strings.Builder
	heading(&b, 2, "Trial Balance")

	rows := make([][]string, 0, len(tb.Rows)+2)
	for _, r := range tb.Rows {
		rows = append(rows, []string{r.Ledger, money(r.Debit), money(r.Credit)})
	}
	if d := tb.OpeningDifference; !d.Debit.IsZero() || !d.Credit.IsZero() {
		rows = append(rows, []string{"_" + model.OpeningBalanceLedger + "_", money(d.Debit), money(d.Credit)})
	}
	rows = append(rows, []string{"**Total**", "**" + money(tb.TotalDebit) + "**", "**" + money(tb.TotalCredit) + "**"})
	table(&b, []string{"Ledger", "Debit", "Credit"}, rows, 1, 2)

	if !tb.Balanced() {
		fmt.Fprintf(&b, "\n> Out of balance by %s.\n", money(tb.TotalDebit.Sub(tb.TotalCredit).Abs()))
	}
	return b.String()
}

// ProfitAndLossMarkdown renders income, expense and net profit by voucher type.
func ProfitAndLossMarkdown(pnl aggregate.ProfitAndLoss) string {
	var b strings.Builder
	heading(&b, 2, "Profit & Loss")

	types := make([]string, 0, len(pnl.ByType))
	for t := range pnl.ByType {
		types = append(types, string(t))
	}
	sort.Strings(types)

	rows := make([][]string, 0, len(types)+3)
	for _, t := range types {
		rows = append(rows, []string{t, money(pnl.ByType[model.VoucherType(t)])})
	}
	rows = append(rows,
		[]string{"**Income**", money(pnl.Income)},
		[]string{"**Expense**", money(pnl.Expense)},
	)
	label := "**Net Profit**"
	if pnl.NetProfit.IsNegative() {
		label = "**Net Loss**"
	}
	rows = append(rows, []string{label, "**" + money(pnl.NetProfit) + "**"})
	table(&b, []string{"", "Amount"}, rows, 1)
	return b.String()
}

// BalanceSheetMarkdown renders the asset and liability sides, and the nominal
// ledgers when a chart classified any.
func BalanceSheetMarkdown(bs aggregate.BalanceSheet) string {
	var b strings.Builder
	heading(&b, 2, "Balance Sheet")

	section := func(title string, side aggregate.Side, lines []aggregate.LedgerAmount, total decimal.Decimal) {
		heading(&b, 3, title)
		rows := make([][]string, 0, len(lines)+1)
		for _, la := range lines {
			amount := money(la.Amount)
			if la.Contra(side) {
				amount += contraMark(la.Net)
			}
			rows = append(rows, []string{la.Ledger, amount})
		}
		rows = append(rows, []string{"**Total**", "**" + money(total) + "**"})
		table(&b, []string{"Ledger", "Amount"}, rows, 1)
		b.WriteString("\n")
	}
	section("Assets", aggregate.SideAsset, bs.Assets, bs.TotalAssets)
	section("Liabilities", aggregate.SideLiability, bs.Liabilities, bs.TotalLiabilities)
	if len(bs.Nominal) > 0 {
		section("Income & Expense", aggregate.SideNominal, bs.Nominal, bs.TotalNominal)
	}
	if len(bs.Omitted) > 0 {
		fmt.Fprintf(&b, "Settled ledgers: %s.\n", strings.Join(bs.Omitted, ", "))
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// contraMark labels a balance that runs against its side.
func contraMark(net decimal.Decimal) string {
	if net.IsNegative() {
		return " Cr"
	}
	return " Dr"
}

// StockMarkdown renders the inventory summary.
func StockMarkdown(lines []aggregate.StockLine) string {
	var b strings.Builder
	heading(&b, 2, "Stock Summary")
	if len(lines) == 0 {
		b.WriteString("No inventory movements.\n")
		return b.String()
	}

	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []string{
			l.Item,
			l.Inward.String(),
			l.Outward.String(),
			l.ClosingQty.String(),
			money(l.AvgRate),
			money(l.StockValue),
		})
	}
	table(&b, []string{"Item", "Inward", "Outward", "Closing", "Avg Rate", "Value"}, rows, 1, 2, 3, 4, 5)
	return b.String()
}

// WarningsMarkdown renders integrity warnings as a list.
func WarningsMarkdown(ws []aggregate.IntegrityWarning) string {
	var b strings.Builder
	heading(&b, 2, "Checks")
	if len(ws) == 0 {
		b.WriteString("No problems found.\n")
		return b.String()
	}
	for _, w := range ws {
		fmt.Fprintf(&b, "- **%s**: %s", w.Kind, w.Message)
		if len(w.VoucherIDs) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(w.VoucherIDs, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// StatementsMarkdown renders every statement under one title.
func StatementsMarkdown(title string, st aggregate.Statements) string {
	var b strings.Builder
	if title != "" {
		heading(&b, 1, title)
	}
	parts := []string{
		TrialBalanceMarkdown(st.TrialBalance),
		ProfitAndLossMarkdown(st.ProfitAndLoss),
		BalanceSheetMarkdown(st.BalanceSheet),
		StockMarkdown(st.Stock),
		WarningsMarkdown(st.Warnings),
	}
	b.WriteString(strings.Join(parts, "\n"))
	return b.String()
}
