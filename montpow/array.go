package montpow

import (
	"math/bits"

	"github.com/fastmod/monty/montgomery"
	"golang.org/x/exp/constraints"
)

// ArrayKaryPow computes N independent base_i^e_i values, one per
// (modulus, base, exponent) triple, running all N lanes' squarings and
// multiplies interleaved per iteration so a CPU can pipeline them.
// Iteration count is governed by max(e_i); a lane whose exponent has
// a 0 bit at the current window position naturally reads table index 0
// (unity), correctly contributing no-op multiplies for that iteration.
//
// No sliding-window variant is offered here: the skip decision would have
// to be taken per-lane (each lane's own exponent bits), which destroys the
// "operate across all lanes in lockstep" property this function exists
// for. Sliding-window is reserved for the shared-exponent
// PartialArrayKaryPow, where a single skip decision is valid for every lane
// at once.
//
// Table storage is lane-major ([2^P][N]Value), mirroring the convention of
// applying one butterfly step across an entire coefficient slice before
// advancing, rather than finishing one lane's full table before starting
// the next.
func ArrayKaryPow[T constraints.Unsigned, V montgomery.Variant[T]](forms []*montgomery.Form[T, V], bases []montgomery.Value[T], exponents []int64, p int) []montgomery.Value[T] {
	n := len(forms)
	for _, e := range exponents {
		requireNonNegative(e)
	}

	size := 1 << uint(p)
	tables := make([][]montgomery.Value[T], size)
	tables[0] = make([]montgomery.Value[T], n)
	for lane := 0; lane < n; lane++ {
		tables[0][lane] = forms[lane].Unity().ToValue()
	}
	if size > 1 {
		tables[1] = append([]montgomery.Value[T](nil), bases...)
	}
	for i := 2; i < size; i += 2 {
		tables[i] = make([]montgomery.Value[T], n)
		for lane := 0; lane < n; lane++ {
			tables[i][lane] = forms[lane].Square(tables[i/2][lane])
		}
		if i+1 < size {
			tables[i+1] = make([]montgomery.Value[T], n)
			for lane := 0; lane < n; lane++ {
				tables[i+1][lane] = forms[lane].Multiply(tables[i/2+1][lane], tables[i/2][lane])
			}
		}
	}

	mask := uint64(size - 1)
	ue := make([]uint64, n)
	maxE := uint64(0)
	for lane, e := range exponents {
		ue[lane] = uint64(e)
		if ue[lane] > maxE {
			maxE = ue[lane]
		}
	}

	results := make([]montgomery.Value[T], n)
	if maxE <= mask {
		for lane := 0; lane < n; lane++ {
			results[lane] = tables[ue[lane]][lane]
		}
		return results
	}

	numbits := 64 - bits.LeadingZeros64(maxE)
	shift := numbits - p
	for lane := 0; lane < n; lane++ {
		idx := (ue[lane] >> uint(shift)) & mask
		results[lane] = tables[idx][lane]
	}

	for shift >= p {
		for i := 0; i < p; i++ {
			for lane := 0; lane < n; lane++ {
				results[lane] = forms[lane].Square(results[lane])
			}
		}
		shift -= p
		for lane := 0; lane < n; lane++ {
			idx := (ue[lane] >> uint(shift)) & mask
			results[lane] = forms[lane].Multiply(results[lane], tables[idx][lane])
		}
	}

	if shift > 0 {
		for i := 0; i < shift; i++ {
			for lane := 0; lane < n; lane++ {
				results[lane] = forms[lane].Square(results[lane])
			}
		}
		for lane := 0; lane < n; lane++ {
			finalIdx := ue[lane] & (uint64(1<<uint(shift)) - 1)
			results[lane] = forms[lane].Multiply(results[lane], tables[finalIdx][lane])
		}
	}

	return results
}
