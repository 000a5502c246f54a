package montpow

import (
	"math/bits"

	"github.com/fastmod/monty/montgomery"
	"golang.org/x/exp/constraints"
)

// SquaringValue holds an unfinalized REDC result: a chain of repeated
// squarings stays in the biased
// [0, 2n) range instead of paying Form's conditional-subtraction finalize
// step after each one, paying it once at the end of the chain via ToValue.
//
// Precondition: the owning Form's modulus n < R/4, so squaring a biased
// value x < 2n keeps x*x < n*R and lands back in [0, 2n) without
// overflowing T — this holds regardless of which variant the Form was built
// with, since the chain bypasses the variant's FinalizeREDC entirely until
// ToValue.
type SquaringValue[T constraints.Unsigned] struct {
	biased T
}

// NewSquaringValue starts a chain from an ordinary Value.
func NewSquaringValue[T constraints.Unsigned, V montgomery.Variant[T]](f *montgomery.Form[T, V], x montgomery.Value[T]) SquaringValue[T] {
	requireQuarterRange(f)
	return SquaringValue[T]{biased: f.Unwrap(x)}
}

// SquareSV advances the chain by one squaring, staying in the biased range.
func (sv SquaringValue[T]) SquareSV(f *montgomery.Form[T, montgomery.Full[T]]) SquaringValue[T] {
	return SquaringValue[T]{biased: f.SquareBiased(f.Wrap(sv.biased))}
}

// ToValue finalizes the chain via the Form's normal finalize policy.
func (sv SquaringValue[T]) ToValue(f *montgomery.Form[T, montgomery.Full[T]]) montgomery.Value[T] {
	return f.FinalizeBiased(sv.biased)
}

func requireQuarterRange[T constraints.Unsigned, V montgomery.Variant[T]](f *montgomery.Form[T, V]) {
	maxT := ^T(0)
	quarterBound := maxT / 4
	if f.Modulus() > quarterBound {
		panic(&montgomery.ContractViolation{
			Kind:    montgomery.ConstructionViolation,
			Message: "squaring-value chain requires modulus < R/4",
		})
	}
}

// KaryPowSquaringValue is KaryPow specialized for the Full variant, using a
// SquaringValue chain for each window's P consecutive squarings instead of
// Form.Square, finalizing once per window before the window's multiply.
func KaryPowSquaringValue[T constraints.Unsigned](f *montgomery.Form[T, montgomery.Full[T]], base montgomery.Value[T], e int64, p int) montgomery.Value[T] {
	requireNonNegative(e)
	requireQuarterRange[T, montgomery.Full[T]](f)

	table := buildWindowTable[T, montgomery.Full[T]](f, base, p)
	ue := uint64(e)
	mask := uint64(len(table) - 1)

	if ue <= mask {
		return table[ue]
	}

	numbits := 64 - bits.LeadingZeros64(ue)
	shift := numbits - p
	idx := (ue >> uint(shift)) & mask
	result := table[idx]

	for shift >= p {
		sv := NewSquaringValue(f, result)
		for i := 0; i < p; i++ {
			sv = sv.SquareSV(f)
		}
		result = sv.ToValue(f)

		shift -= p
		idx = (ue >> uint(shift)) & mask
		result = f.Multiply(result, table[idx])
	}

	if shift > 0 {
		sv := NewSquaringValue(f, result)
		for i := 0; i < shift; i++ {
			sv = sv.SquareSV(f)
		}
		result = sv.ToValue(f)
		finalIdx := ue & ((1 << uint(shift)) - 1)
		result = f.Multiply(result, table[finalIdx])
	}

	return result
}
