package montgomery

import (
	"math/big"

	"golang.org/x/exp/constraints"
)

// redcBiased computes the core Montgomery reduction of a double-width
// product (hi, lo), returning a value in [0, 2n): the final conditional
// subtraction that would bring the result into [0, n) is left to the
// caller (Full/Half finalize it, Quarter/Sixth keep the bias).
//
// Grounded directly on MRedConstant in modular_reduction.go: the same
// unsigned-wraparound trick (r = hi - mn_hi + n, relying on T's modular
// arithmetic to absorb the borrow) replaces an explicit
// borrow/conditional-select dance.
func redcBiased[T constraints.Unsigned](h Host[T], hi, lo, n, invN T) T {
	m := lo * invN
	mnHi, _ := h.Mul(m, n)
	return hi - mnHi + n
}

// finalizeFull brings a biased REDC result in [0, 2n) down to [0, n) with
// one conditional subtraction. Grounded on MRed's final `if r >= q { r -= q }`.
func finalizeFull[T constraints.Unsigned](biased, n T) T {
	if biased >= n {
		return biased - n
	}
	return biased
}

// newtonInverse computes inv_n such that n*inv_n == 1 (mod 2^W) for odd n,
// via Hensel lifting / Newton-Raphson doubling, directly grounded on
// MRedParams. Each iteration doubles the number of correct low bits,
// starting from 1 correct bit (x=1 is trivially correct mod 2) and reaching
// W bits in ceil(log2(W)) iterations.
func newtonInverse[T constraints.Unsigned](h Host[T], n T) T {
	x := T(1)
	for bits := 1; bits < h.Width(); bits *= 2 {
		x = x * (2 - n*x)
	}
	return x
}

// rModN computes R mod n = (2^W) mod n using a one-time big.Int division,
// grounded on BRedParams's own use of math/big for setup-only work (never a
// hot-path operation, so there is no benefit to hand-rolling schoolbook
// division here).
func rModN[T constraints.Unsigned](width int, n T) T {
	r := new(big.Int).Lsh(big.NewInt(1), uint(width))
	nBig := new(big.Int).SetUint64(uint64(n))
	r.Mod(r, nBig)
	return T(r.Uint64())
}

// rSquaredModN computes R^2 mod n from a precomputed R mod n, by squaring
// into a big.Int and reducing once. Also grounded on BRedParams's big.Int
// precomputation pattern.
func rSquaredModN[T constraints.Unsigned](rModNVal T, n T) T {
	r := new(big.Int).SetUint64(uint64(rModNVal))
	r.Mul(r, r)
	nBig := new(big.Int).SetUint64(uint64(n))
	r.Mod(r, nBig)
	return T(r.Uint64())
}

// maxUnsigned returns the all-ones value for T: 2^W - 1.
func maxUnsigned[T constraints.Unsigned]() T {
	return ^T(0)
}
