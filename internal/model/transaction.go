package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction is one line of an imported bank statement. Amount is signed
// from the account holder's side: negative is money out, positive money in.
type BankTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Reference   string
	Type        string // bank's own code (ACH_DEBIT, Sale, ...) when the statement has one
}

// MoneyOut reports whether the line is a withdrawal.
func (t BankTransaction) MoneyOut() bool { return t.Amount.IsNegative() }
