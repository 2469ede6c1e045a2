package importer

import (
	"strings"

	"github.com/cleared-dev/tally/internal/categorize"
	"github.com/cleared-dev/tally/internal/model"
)

// Categorizer guesses the contra ledger for a transaction description.
type Categorizer interface {
	Categorize(text string) (string, bool)
}

// ToVouchers turns bank lines into vouchers against bankLedger. Money out
// becomes a Payment debiting the guessed ledger; money in becomes a Receipt
// crediting it. Lines that round to zero cents are dropped.
func ToVouchers(txns []model.BankTransaction, bankLedger string, cat Categorizer, company string) []model.Voucher {
	vs := make([]model.Voucher, 0, len(txns))
	for _, t := range txns {
		amount := t.Amount.Abs().Round(2)
		if amount.IsZero() {
			continue
		}
		ledger, _ := cat.Categorize(t.Description)
		if model.SameLedger(ledger, bankLedger) {
			// The bank cannot be its own contra; leave it for review.
			ledger = categorize.DefaultFallback
		}

		v := model.Voucher{
			Date:      t.Date,
			Amount:    amount,
			Narration: narration(t),
			Company:   company,
		}
		if t.MoneyOut() {
			v.Type = model.VoucherPayment
			v.DebitLedger = ledger
			v.CreditLedger = bankLedger
		} else {
			v.Type = model.VoucherReceipt
			v.DebitLedger = bankLedger
			v.CreditLedger = ledger
		}
		vs = append(vs, v)
	}
	return vs
}

func narration(t model.BankTransaction) string {
	desc := strings.TrimSpace(t.Description)
	if t.Reference == "" {
		return desc
	}
	return desc + " [" + t.Reference + "]"
}
