package montgomery

import "golang.org/x/exp/constraints"

// SelectMasked performs a branchless choice between a and b using a bitwise
// mask: mask must be all-ones (true) or all-zero (false) in T's width,
// typically produced by widenBool. It is the "masked" flavor of
// branchless_select.
func SelectMasked[T constraints.Unsigned](mask, a, b T) T {
	return b ^ (mask & (a ^ b))
}

// Select is the "cmov" flavored branchless_select primitive: cond is an
// ordinary boolean and the compiler is expected (not guaranteed) to lower
// this to a conditional-move instruction rather than a branch. Semantically
// identical to SelectMasked; the two exist as distinct named primitives.
// Form.Select always uses this one, whatever the Form's Performance Tag.
func Select[T constraints.Unsigned](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

// widenBool turns a boolean into an all-ones/all-zero mask of type T, for
// use with SelectMasked.
func widenBool[T constraints.Unsigned](cond bool) T {
	if cond {
		return ^T(0)
	}
	return T(0)
}

// ShiftRight performs a branchless right shift valid for 0 <= k < W.
func ShiftRight[T constraints.Unsigned](x T, k int) T {
	return x >> uint(k)
}

// ShiftLeft performs a branchless left shift valid for 0 <= k < W.
func ShiftLeft[T constraints.Unsigned](x T, k int) T {
	return x << uint(k)
}
