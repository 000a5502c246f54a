package montgomery

import "golang.org/x/exp/constraints"

// Variant is the per-modulus-range strategy hook set: it
// replaces a curiously-recurring-template base/derived
// hierarchy with a stateless strategy type, selected as a compile-time type
// parameter on Form so dispatch is resolved by monomorphization rather than
// virtual calls.
type Variant[T constraints.Unsigned] interface {
	// Name identifies the variant for diagnostics.
	Name() string

	// MaxModulus returns the largest n permitted for this variant at the
	// given host's width.
	MaxModulus(h Host[T]) T

	// FinalizeREDC turns a biased REDC result in [0, 2n) into this
	// variant's internal representative range: [0, n) for Full/Half,
	// [0, 2n) unchanged for Quarter/Sixth.
	FinalizeREDC(biased, n T) T

	// Bound returns the upper bound of the internal representative range
	// (n for Full/Half, 2n for Quarter/Sixth), used by Quarter/Sixth's
	// Add/Subtract and by property tests.
	Bound(n T) T

	// Canonical reduces a value in this variant's internal range down to
	// the unique representative in [0, n).
	Canonical(v, n T) T

	// Add computes x+y within the internal representative range.
	Add(x, y, n T) T

	// Subtract computes x-y within the internal representative range.
	Subtract(x, y, n T) T

	// UnorderedSubtract computes |x-y| without committing to a sign.
	UnorderedSubtract(x, y, n T) T

	// FamulSum computes the (x+y) term of famul(x, y, z) = (x+y)*z, where y
	// is canonical. Half and Sixth have enough headroom in their internal
	// range to add without a modular reduction first (see DESIGN.md's
	// "famul's fast-path inequality" resolution); Full and Quarter fall
	// back to a modular Add.
	FamulSum(x, y, n T) T
}
