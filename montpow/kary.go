package montpow

import (
	"math/bits"

	"github.com/fastmod/monty/montgomery"
	"golang.org/x/exp/constraints"
)

// KaryPow computes base^e using a P-bit window table, optionally with
// sliding-window skipping of all-zero gaps between set bits, via an
// even/odd table recurrence and window-extraction loop that generalizes
// ScalarPow's 1-bit window to a P-bit one. Precondition: 0 < P < 10.
func KaryPow[T constraints.Unsigned, V montgomery.Variant[T]](f *montgomery.Form[T, V], base montgomery.Value[T], e int64, p int, sliding bool) montgomery.Value[T] {
	requireNonNegative(e)
	table := buildWindowTable(f, base, p)
	return karyPowWithTable(f, table, e, p, sliding)
}

// buildWindowTable fills T[0..2^P) via the recurrence:
// T[0]=unity, T[1]=x, and for even i, T[i]=square(T[i/2]),
// T[i+1]=multiply(T[i/2+1], T[i/2]) — avoiding a branch on i's parity.
func buildWindowTable[T constraints.Unsigned, V montgomery.Variant[T]](f *montgomery.Form[T, V], base montgomery.Value[T], p int) []montgomery.Value[T] {
	size := 1 << uint(p)
	table := make([]montgomery.Value[T], size)
	table[0] = f.Unity().ToValue()
	if size > 1 {
		table[1] = base
	}
	for i := 2; i < size; i += 2 {
		table[i] = f.Square(table[i/2])
		if i+1 < size {
			table[i+1] = f.Multiply(table[i/2+1], table[i/2])
		}
	}
	return table
}

// karyPowWithTable runs KaryPow's window-extraction main loop against a
// precomputed table. The squaring-value chain and the array variants carry
// their own copies of this loop structure.
func karyPowWithTable[T constraints.Unsigned, V montgomery.Variant[T]](f *montgomery.Form[T, V], table []montgomery.Value[T], e int64, p int, sliding bool) montgomery.Value[T] {
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
		if sliding {
			for shift > p && (ue>>uint(shift-1))&1 == 0 {
				result = f.Square(result)
				shift--
			}
		}
		for i := 0; i < p; i++ {
			result = f.Square(result)
		}
		shift -= p
		idx = (ue >> uint(shift)) & mask
		result = f.Multiply(result, table[idx])
	}

	if shift > 0 {
		for i := 0; i < shift; i++ {
			result = f.Square(result)
		}
		finalIdx := ue & ((1 << uint(shift)) - 1)
		result = f.Multiply(result, table[finalIdx])
	}

	return result
}
