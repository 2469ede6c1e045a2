package voucher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

// DateFormat is the layout for voucher dates in files and on the command line.
const DateFormat = "2006-01-02"

// Raw holds unparsed voucher fields as they arrive from a form, flag set or file.
type Raw struct {
	ID           string
	Date         string
	Type         string
	DebitLedger  string
	CreditLedger string
	Amount       string
	Item         string
	Quantity     string
	Narration    string
	Company      string
}

// ParseAmount parses a monetary amount. Thousands separators are accepted.
func ParseAmount(raw string) (decimal.Decimal, error) {
	return parseNumber("amount", raw)
}

// ParseQuantity parses an inventory quantity. Empty input is zero.
func ParseQuantity(raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	return parseNumber("quantity", raw)
}

func parseNumber(field, raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ValidationError{
			Field:       field,
			Description: fmt.Sprintf("%q is not a number", raw),
		}
	}
	return d, nil
}

// Parse converts raw fields into a voucher and validates it. Every problem
// is reported, not just the first.
func Parse(r Raw) (model.Voucher, error) {
	var errs Errors
	record := func(field string, err error) {
		var ve ValidationError
		if !errors.As(err, &ve) {
			ve = ValidationError{Field: field, Description: err.Error()}
		}
		ve.VoucherID = r.ID
		errs = append(errs, ve)
	}

	v := model.Voucher{
		ID:           strings.TrimSpace(r.ID),
		Type:         model.ParseVoucherType(r.Type),
		DebitLedger:  strings.TrimSpace(r.DebitLedger),
		CreditLedger: strings.TrimSpace(r.CreditLedger),
		Item:         strings.TrimSpace(r.Item),
		Narration:    strings.TrimSpace(r.Narration),
		Company:      strings.TrimSpace(r.Company),
	}

	dateOK := true
	if strings.TrimSpace(r.Date) != "" {
		d, err := time.Parse(DateFormat, strings.TrimSpace(r.Date))
		if err != nil {
			record("date", fmt.Errorf("%q is not a YYYY-MM-DD date", r.Date))
			dateOK = false
		}
		v.Date = d
	}

	amountOK := true
	amount, err := ParseAmount(r.Amount)
	if err != nil {
		record("amount", err)
		amountOK = false
	}
	v.Amount = amount

	qtyOK := true
	qty, err := ParseQuantity(r.Quantity)
	if err != nil {
		record("quantity", err)
		qtyOK = false
	}
	v.Quantity = qty

	// Skip checks that would only repeat a parse failure.
	for _, ve := range Validate(v) {
		if (ve.Field == "date" && !dateOK) || (ve.Field == "amount" && !amountOK) || (ve.Field == "quantity" && !qtyOK) {
			continue
		}
		errs = append(errs, ve)
	}

	if len(errs) > 0 {
		return model.Voucher{}, errs
	}
	return v, nil
}
