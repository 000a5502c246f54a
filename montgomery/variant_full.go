package montgomery

import "golang.org/x/exp/constraints"

// Full permits any odd modulus n < R. Internal representative range [0, n).
type Full[T constraints.Unsigned] struct{}

func (Full[T]) Name() string { return "Full" }

// MaxModulus is R-1 (all bits set), which is always odd, so an "R-2 if
// even" fallback would be unreachable here; see DESIGN.md.
func (Full[T]) MaxModulus(Host[T]) T { return maxUnsigned[T]() }

func (Full[T]) FinalizeREDC(biased, n T) T { return finalizeFull(biased, n) }

func (Full[T]) Bound(n T) T { return n }

func (Full[T]) Canonical(v, _ T) T { return v }

func (Full[T]) Add(x, y, n T) T {
	sum := x + y
	if sum < x || sum >= n {
		sum -= n
	}
	return sum
}

func (Full[T]) Subtract(x, y, n T) T {
	if x < y {
		return x - y + n
	}
	return x - y
}

func (Full[T]) UnorderedSubtract(x, y, _ T) T {
	if x >= y {
		return x - y
	}
	return y - x
}

// FamulSum must reduce: Full's bound alone gives no guaranteed headroom for
// an unreduced sum to stay within the REDC precondition.
func (f Full[T]) FamulSum(x, y, n T) T { return f.Add(x, y, n) }
