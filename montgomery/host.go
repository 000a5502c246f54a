// Package montgomery implements Montgomery-form modular arithmetic over
// unsigned integer moduli: the REDC reduction core, four modulus-range
// variants (Full, Half, Quarter, Sixth) that trade permitted modulus size
// for fewer conditional reductions, and the public Form facade that ties a
// modulus, a variant, and the arithmetic primitives together.
package montgomery

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Host is the host integer-width abstraction this package is built against:
// a double-width multiply returning (hi, lo), and a leading-zero count.
// Native Go operators already give branchless add/sub/shift/select for any
// constraints.Unsigned type, so Host only needs to cover the two operations
// that are genuinely width-specific.
type Host[T constraints.Unsigned] interface {
	// Width returns the bit width W of T, so that R = 2^W.
	Width() int
	// Mul returns the full double-width product a*b as (hi, lo).
	Mul(a, b T) (hi, lo T)
	// LeadingZeros returns the number of leading zero bits in x.
	// Undefined for x == 0, matching the usual count_leading_zeros contract.
	LeadingZeros(x T) int
}

// Host64 implements Host[uint64] using math/bits.
type Host64 struct{}

func (Host64) Width() int { return 64 }

func (Host64) Mul(a, b uint64) (hi, lo uint64) { return bits.Mul64(a, b) }

func (Host64) LeadingZeros(x uint64) int { return bits.LeadingZeros64(x) }

// Host32 implements Host[uint32] using math/bits.
type Host32 struct{}

func (Host32) Width() int { return 32 }

func (Host32) Mul(a, b uint32) (hi, lo uint32) { return bits.Mul32(a, b) }

func (Host32) LeadingZeros(x uint32) int { return bits.LeadingZeros32(x) }

// hostFor resolves the Host implementation for a concrete instantiation of
// T. Only uint32 and uint64 are supported; other widths report an error at
// construction time rather than silently picking a host that doesn't match.
func hostFor[T constraints.Unsigned]() (Host[T], error) {
	var zero T
	switch any(zero).(type) {
	case uint64:
		h := any(Host64{}).(Host[T])
		return h, nil
	case uint32:
		h := any(Host32{}).(Host[T])
		return h, nil
	default:
		return nil, &ContractViolation{
			Kind:    ConstructionViolation,
			Message: "montgomery: unsupported integer width (only uint32 and uint64 hosts are implemented)",
		}
	}
}
