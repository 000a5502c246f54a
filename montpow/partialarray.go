package montpow

import (
	"math/bits"

	"github.com/fastmod/monty/montgomery"
	"golang.org/x/exp/constraints"
)

// PartialArrayKaryPow computes N values base_i^e for a single shared
// modulus and a single shared exponent e: window extraction
// happens once per iteration (not once per lane, as ArrayKaryPow does) and
// is broadcast to every lane's table lookup. Because every lane advances
// through the same window positions, the sliding-window skip decision is
// valid for all lanes at once, unlike ArrayKaryPow.
func PartialArrayKaryPow[T constraints.Unsigned, V montgomery.Variant[T]](f *montgomery.Form[T, V], bases []montgomery.Value[T], e int64, p int, sliding bool) []montgomery.Value[T] {
	requireNonNegative(e)
	n := len(bases)
	size := 1 << uint(p)

	tables := make([][]montgomery.Value[T], size)
	tables[0] = make([]montgomery.Value[T], n)
	for lane := 0; lane < n; lane++ {
		tables[0][lane] = f.Unity().ToValue()
	}
	if size > 1 {
		tables[1] = append([]montgomery.Value[T](nil), bases...)
	}
	for i := 2; i < size; i += 2 {
		tables[i] = make([]montgomery.Value[T], n)
		for lane := 0; lane < n; lane++ {
			tables[i][lane] = f.Square(tables[i/2][lane])
		}
		if i+1 < size {
			tables[i+1] = make([]montgomery.Value[T], n)
			for lane := 0; lane < n; lane++ {
				tables[i+1][lane] = f.Multiply(tables[i/2+1][lane], tables[i/2][lane])
			}
		}
	}

	return partialArrayMainLoop(f, func(idx uint64) []montgomery.Value[T] {
		return tables[idx]
	}, n, uint64(e), p, sliding)
}

// partialArrayMainLoop runs the shared window-extraction loop used by both
// the plain and half-table partial-array variants, parameterized by a
// lookup function so the two only differ in how a window index is turned
// into N values.
func partialArrayMainLoop[T constraints.Unsigned, V montgomery.Variant[T]](f *montgomery.Form[T, V], lookup func(idx uint64) []montgomery.Value[T], n int, ue uint64, p int, sliding bool) []montgomery.Value[T] {
	mask := uint64(1<<uint(p)) - 1

	if ue <= mask {
		return append([]montgomery.Value[T](nil), lookup(ue)...)
	}

	numbits := 64 - bits.LeadingZeros64(ue)
	shift := numbits - p
	results := append([]montgomery.Value[T](nil), lookup((ue>>uint(shift))&mask)...)

	squareAll := func() {
		for lane := 0; lane < n; lane++ {
			results[lane] = f.Square(results[lane])
		}
	}

	for shift >= p {
		if sliding {
			for shift > p && (ue>>uint(shift-1))&1 == 0 {
				squareAll()
				shift--
			}
		}
		for i := 0; i < p; i++ {
			squareAll()
		}
		shift -= p
		window := lookup((ue >> uint(shift)) & mask)
		for lane := 0; lane < n; lane++ {
			results[lane] = f.Multiply(results[lane], window[lane])
		}
	}

	if shift > 0 {
		for i := 0; i < shift; i++ {
			squareAll()
		}
		window := lookup(ue & (uint64(1<<uint(shift)) - 1))
		for lane := 0; lane < n; lane++ {
			results[lane] = f.Multiply(results[lane], window[lane])
		}
	}

	return results
}

// PartialArrayKaryPowHalfTable is PartialArrayKaryPow's advanced memory
// variant: only indices [0, 2^P/2) are stored explicitly. Every table entry
// is a power of the same base (T[i] = base^i), so a high-even index
// idx >= 2^P/2 is reconstructed as square(T[idx/2]) (idx/2 always falls in
// the stored half), and a high-odd index as square(T[idx/2]) further
// multiplied by T[1] — since base^(2h+1) = (base^h)^2 * base^1. Which of
// the two applies is chosen with a branchless conditional select rather
// than an if.
func PartialArrayKaryPowHalfTable[T constraints.Unsigned, V montgomery.Variant[T]](f *montgomery.Form[T, V], bases []montgomery.Value[T], e int64, p int, sliding bool) []montgomery.Value[T] {
	requireNonNegative(e)
	n := len(bases)
	size := 1 << uint(p)
	half := size / 2

	halfTable := make([][]montgomery.Value[T], half)
	halfTable[0] = make([]montgomery.Value[T], n)
	for lane := 0; lane < n; lane++ {
		halfTable[0][lane] = f.Unity().ToValue()
	}
	if half > 1 {
		halfTable[1] = append([]montgomery.Value[T](nil), bases...)
	}
	for i := 2; i < half; i += 2 {
		halfTable[i] = make([]montgomery.Value[T], n)
		for lane := 0; lane < n; lane++ {
			halfTable[i][lane] = f.Square(halfTable[i/2][lane])
		}
		if i+1 < half {
			halfTable[i+1] = make([]montgomery.Value[T], n)
			for lane := 0; lane < n; lane++ {
				halfTable[i+1][lane] = f.Multiply(halfTable[i/2+1][lane], halfTable[i/2][lane])
			}
		}
	}

	lookup := func(idx uint64) []montgomery.Value[T] {
		if idx < uint64(half) {
			return halfTable[idx]
		}
		h := idx / 2
		isOdd := idx&1 == 1
		result := make([]montgomery.Value[T], n)
		for lane := 0; lane < n; lane++ {
			sq := f.Square(halfTable[h][lane])
			withBase := f.Multiply(sq, bases[lane])
			result[lane] = f.Select(isOdd, withBase, sq)
		}
		return result
	}

	return partialArrayMainLoop(f, lookup, n, uint64(e), p, sliding)
}
