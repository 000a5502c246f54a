package montpow

import (
	"math/bits"

	"github.com/fastmod/monty/montgomery"
	"golang.org/x/exp/constraints"
)

// MultiTableKaryPow computes base^e using K tables of width P, amortizing
// the squaring phase across a K*P-bit super-window.
//
// Table 0 holds base^i for i in [0, 2^P); table k holds y_k^i where
// y_k = y_{k-1}^(2^P) (y_0 = base), so table k's index-1 entry squared P
// times produces y_{k+1}, the generator for the next table. A super-window
// of K*P bits is split into K contiguous P-bit digits, one per table; the
// identity x^(d_0 + d_1*2^P + ... + d_{K-1}*2^{(K-1)P}) = prod_k table_k[d_k]
// lets all K lookups for one super-window be combined by multiplication
// before the outer loop squares K*P times to advance to the next
// super-window, matching the stated correctness identity above.
func MultiTableKaryPow[T constraints.Unsigned, V montgomery.Variant[T]](f *montgomery.Form[T, V], base montgomery.Value[T], e int64, p, k int) montgomery.Value[T] {
	requireNonNegative(e)
	if k < 1 {
		k = 1
	}
	if p*k > 64 {
		panic(&montgomery.ContractViolation{
			Kind:    montgomery.ConstructionViolation,
			Message: "P*K super-window width must not exceed 64 bits",
		})
	}

	tables := make([][]montgomery.Value[T], k)
	tables[0] = buildWindowTable(f, base, p)
	gen := base
	for seg := 1; seg < k; seg++ {
		for i := 0; i < p; i++ {
			gen = f.Square(gen)
		}
		tables[seg] = buildWindowTable(f, gen, p)
	}

	ue := uint64(e)
	digitMask := uint64(1<<uint(p)) - 1
	superWidth := p * k
	superMask := uint64(1<<uint(superWidth)) - 1

	lookup := func(superVal uint64) montgomery.Value[T] {
		result := tables[0][superVal&digitMask]
		for seg := 1; seg < k; seg++ {
			chunk := (superVal >> uint(seg*p)) & digitMask
			result = f.Multiply(result, tables[seg][chunk])
		}
		return result
	}

	if ue <= superMask {
		return lookup(ue)
	}

	numbits := 64 - bits.LeadingZeros64(ue)
	shift := numbits - superWidth
	result := lookup((ue >> uint(shift)) & superMask)

	for shift >= superWidth {
		for i := 0; i < superWidth; i++ {
			result = f.Square(result)
		}
		shift -= superWidth
		result = f.Multiply(result, lookup((ue>>uint(shift))&superMask))
	}

	if shift > 0 {
		for i := 0; i < shift; i++ {
			result = f.Square(result)
		}
		finalVal := ue & (uint64(1<<uint(shift)) - 1)
		result = f.Multiply(result, lookup(finalVal))
	}

	return result
}
