package montgomery

import (
	"math/big"

	"golang.org/x/exp/constraints"
)

// Sixth permits odd modulus n < R/6, the tightest of the four variants.
// Internal representative range [0, 2n), identical structure to Quarter
// but with a smaller bound, used when a caller needs extra multiplicative
// headroom (e.g. famul's fast path, see DESIGN.md).
type Sixth[T constraints.Unsigned] struct{}

func (Sixth[T]) Name() string { return "Sixth" }

// MaxModulus is floor(R/6) - 1. R/6 does not land on a power-of-two shift,
// so this one-time computation uses math/big rather than bit tricks.
func (Sixth[T]) MaxModulus(h Host[T]) T {
	r := new(big.Int).Lsh(big.NewInt(1), uint(h.Width()))
	r.Quo(r, big.NewInt(6))
	r.Sub(r, big.NewInt(1))
	return T(r.Uint64())
}

func (Sixth[T]) FinalizeREDC(biased, _ T) T { return biased }

func (Sixth[T]) Bound(n T) T { return 2 * n }

func (Sixth[T]) Canonical(v, n T) T {
	c := v - n
	return Select(v < n, v, c)
}

func (s Sixth[T]) Add(x, y, n T) T {
	bound := s.Bound(n)
	sum := x + y
	if sum >= bound {
		sum -= bound
	}
	return sum
}

func (s Sixth[T]) Subtract(x, y, n T) T {
	bound := s.Bound(n)
	if x < y {
		return x - y + bound
	}
	return x - y
}

func (Sixth[T]) UnorderedSubtract(x, y, _ T) T {
	if x >= y {
		return x - y
	}
	return y - x
}

// FamulSum skips the modular reduction: x < 2n (internal range), y < n
// (canonical), and n < R/6 together bound the subsequent product against
// the other multiplicand z (internal range, < 2n): (x+y)*z < 3n*2n = 6n^2
// < n*R, satisfying the REDC precondition without reducing the sum first.
func (Sixth[T]) FamulSum(x, y, _ T) T { return x + y }
