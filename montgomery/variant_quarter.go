package montgomery

import "golang.org/x/exp/constraints"

// Quarter permits odd modulus n < R/4. Internal representative range
// [0, 2n): REDC's final conditional subtraction is skipped, trading a
// slightly looser range for one fewer branch per reduction. Since n < R/4,
// values x,y in [0,2n) satisfy x+y < R, so modular add/subtract never
// overflows T.
type Quarter[T constraints.Unsigned] struct{}

func (Quarter[T]) Name() string { return "Quarter" }

func (Quarter[T]) MaxModulus(h Host[T]) T { return (T(1) << uint(h.Width()-2)) - 1 }

// FinalizeREDC is the identity: Quarter keeps the biased [0,2n) result.
func (Quarter[T]) FinalizeREDC(biased, _ T) T { return biased }

func (Quarter[T]) Bound(n T) T { return 2 * n }

func (Quarter[T]) Canonical(v, n T) T {
	c := v - n
	return Select(v < n, v, c)
}

func (q Quarter[T]) Add(x, y, n T) T {
	bound := q.Bound(n)
	sum := x + y
	if sum >= bound {
		sum -= bound
	}
	return sum
}

func (q Quarter[T]) Subtract(x, y, n T) T {
	bound := q.Bound(n)
	if x < y {
		return x - y + bound
	}
	return x - y
}

func (Quarter[T]) UnorderedSubtract(x, y, _ T) T {
	if x >= y {
		return x - y
	}
	return y - x
}

// FamulSum must reduce: x < 2n, y < n (canonical), and n < R/4 only bound
// the unreduced sum's subsequent product by 6n^2, which needs n < R/6 to
// stay under n*R — not guaranteed at Quarter's looser bound.
func (q Quarter[T]) FamulSum(x, y, n T) T { return q.Add(x, y, n) }
