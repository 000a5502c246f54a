package montgomery

import "golang.org/x/exp/constraints"

// Half permits odd modulus n < R/2. Internal representative range [0, n).
// Because n < R/2, x+y for x,y in [0,n) always fits in T without overflow,
// so Add needs no overflow detection (unlike Full).
type Half[T constraints.Unsigned] struct{}

func (Half[T]) Name() string { return "Half" }

func (Half[T]) MaxModulus(h Host[T]) T { return (T(1) << uint(h.Width()-1)) - 1 }

func (Half[T]) FinalizeREDC(biased, n T) T { return finalizeFull(biased, n) }

func (Half[T]) Bound(n T) T { return n }

func (Half[T]) Canonical(v, _ T) T { return v }

func (Half[T]) Add(x, y, n T) T {
	sum := x + y
	if sum >= n {
		sum -= n
	}
	return sum
}

func (Half[T]) Subtract(x, y, n T) T {
	if x < y {
		return x - y + n
	}
	return x - y
}

func (Half[T]) UnorderedSubtract(x, y, _ T) T {
	if x >= y {
		return x - y
	}
	return y - x
}

// FamulSum skips the modular reduction: x < n, y < n (canonical), and
// n < R/2 together guarantee x+y < R, so the raw sum can be fed directly
// into multiply without wrapping or violating the REDC precondition.
func (Half[T]) FamulSum(x, y, _ T) T { return x + y }
