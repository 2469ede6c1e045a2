package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType classifies a voucher and decides which statements it feeds.
// The set is open; only the constants below carry statement semantics.
type VoucherType string

const (
	VoucherSales    VoucherType = "Sales"
	VoucherPurchase VoucherType = "Purchase"
	VoucherReceipt  VoucherType = "Receipt"
	VoucherPayment  VoucherType = "Payment"
	VoucherContra   VoucherType = "Contra"
	VoucherJournal  VoucherType = "Journal"
	VoucherOpening  VoucherType = "Opening"
)

// KnownVoucherTypes lists the built-in voucher types in display order.
var KnownVoucherTypes = []VoucherType{
	VoucherSales,
	VoucherPurchase,
	VoucherReceipt,
	VoucherPayment,
	VoucherContra,
	VoucherJournal,
	VoucherOpening,
}

// ParseVoucherType matches s against the built-in types case-insensitively.
// Unknown names are returned trimmed but otherwise unchanged.
func ParseVoucherType(s string) VoucherType {
	s = strings.TrimSpace(s)
	for _, t := range KnownVoucherTypes {
		if strings.EqualFold(s, string(t)) {
			return t
		}
	}
	return VoucherType(s)
}

// OpeningBalanceLedger is the placeholder contra ledger used by opening vouchers.
const OpeningBalanceLedger = "Opening Balance"

// Voucher is one double-entry transaction: DebitLedger is increased and
// CreditLedger decreased by Amount.
type Voucher struct {
	ID           string // "YYYY-MM-NNN", assigned by the store
	Date         time.Time
	Type         VoucherType
	DebitLedger  string
	CreditLedger string
	Amount       decimal.Decimal
	Item         string          // inventory vouchers only
	Quantity     decimal.Decimal // inventory vouchers only
	Narration    string
	Company      string // owning business; empty in single-company books
}

// HasItem reports whether the voucher moves inventory.
func (v Voucher) HasItem() bool {
	return strings.TrimSpace(v.Item) != ""
}

// SameLedger compares ledger names the way the books do: trimmed and case-insensitive.
func SameLedger(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
