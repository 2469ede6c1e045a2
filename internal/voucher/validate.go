package voucher

import (
	"github.com/cleared-dev/tally/internal/model"
)

// ValidationError describes why a voucher was rejected at the boundary.
type ValidationError = model.ValidationError

// Errors is a non-empty set of validation failures for one voucher.
type Errors = model.ValidationErrors

// Validate checks a voucher before it is accepted into the books. Stores run
// the same checks on every row they read back.
func Validate(v model.Voucher) Errors {
	return v.Validate()
}
