package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError describes why a voucher was rejected.
type ValidationError struct {
	Field       string
	VoucherID   string
	Description string
}

func (e ValidationError) Error() string {
	if e.VoucherID == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Description)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Field, e.VoucherID, e.Description)
}

// ValidationErrors is a non-empty set of failures for one voucher.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Err returns es as an error, or nil when there are no failures.
func (es ValidationErrors) Err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}

// MaxQuantityPlaces is the quantity precision every backend stores exactly.
const MaxQuantityPlaces = 4

var hundred = decimal.NewFromInt(100)

// Validate checks the voucher's shape: a date, a type, two distinct ledgers,
// a positive amount in whole cents, and an item and quantity that come
// together.
func (v Voucher) Validate() ValidationErrors {
	var errs ValidationErrors
	fail := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{
			Field:       field,
			VoucherID:   v.ID,
			Description: fmt.Sprintf(format, args...),
		})
	}

	if v.Date.IsZero() {
		fail("date", "date is required")
	}
	if strings.TrimSpace(string(v.Type)) == "" {
		fail("type", "voucher type is required")
	}

	debit := strings.TrimSpace(v.DebitLedger)
	credit := strings.TrimSpace(v.CreditLedger)
	if debit == "" {
		fail("debit_ledger", "debit ledger is required")
	}
	if credit == "" {
		fail("credit_ledger", "credit ledger is required")
	}
	if debit != "" && SameLedger(debit, credit) {
		fail("credit_ledger", "debit and credit ledger are both %q", debit)
	}

	if !v.Amount.IsPositive() {
		fail("amount", "amount %s must be greater than zero", v.Amount)
	} else if !v.Amount.Mul(hundred).Equal(v.Amount.Mul(hundred).Floor()) {
		fail("amount", "amount %s has more than 2 decimal places", v.Amount)
	}

	switch {
	case v.HasItem() && !v.Quantity.IsPositive():
		fail("quantity", "item %q needs a quantity greater than zero", v.Item)
	case !v.HasItem() && !v.Quantity.IsZero():
		fail("item", "quantity %s given without an item", v.Quantity)
	case !v.Quantity.Equal(v.Quantity.Truncate(MaxQuantityPlaces)):
		fail("quantity", "quantity %s has more than %d decimal places", v.Quantity, MaxQuantityPlaces)
	}

	return errs
}
