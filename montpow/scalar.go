// Package montpow implements 2^k-ary modular exponentiation over values
// held by a montgomery.Form: scalar and windowed square-and-multiply, the
// multi-segment table variant for wide exponents, the squaring-value chain
// for Full-range windows, and the array/partial-array variants that run
// several lanes of the same loop structure side by side.
//
// Exponents are carried as int64 rather than an unsigned width so that a
// negative exponent — a precondition violation reported as an
// ExponentViolation — is representable and checkable instead of wrapping
// silently the way an unsigned type would.
package montpow

import (
	"github.com/fastmod/monty/montgomery"
	"golang.org/x/exp/constraints"
)

func requireNonNegative(e int64) {
	if e < 0 {
		panic(&montgomery.ContractViolation{
			Kind:    montgomery.ExponentViolation,
			Message: "exponent must be non-negative",
		})
	}
}

// ScalarPow computes base^e via branchless left-to-right binary
// square-and-multiply: every iteration squares unconditionally and uses
// conditional_select (here, Form.Select) rather than an `if` to decide
// whether the multiply's result replaces the running square.
func ScalarPow[T constraints.Unsigned, V montgomery.Variant[T]](f *montgomery.Form[T, V], base montgomery.Value[T], e int64) montgomery.Value[T] {
	requireNonNegative(e)
	ue := uint64(e)

	result := f.Unity().ToValue()
	started := false
	for bit := 63; bit >= 0; bit-- {
		if !started {
			if (ue>>uint(bit))&1 == 0 {
				continue
			}
			started = true
			result = base
			continue
		}
		squared := f.Square(result)
		multiplied := f.Multiply(squared, base)
		result = f.Select((ue>>uint(bit))&1 == 1, multiplied, squared)
	}
	if !started {
		return f.Unity().ToValue()
	}
	return result
}
