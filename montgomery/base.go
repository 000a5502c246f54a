package montgomery

import "golang.org/x/exp/constraints"

// base holds the per-modulus Montgomery constants shared by every variant,
// and the variant-independent REDC core (redc, multiplyBiased) that Form's
// multiply and square build on: it needs only the REDC precondition
// x*y < n*R, which every variant guarantees by construction, so it lives
// here rather than being duplicated per variant.
type base[T constraints.Unsigned] struct {
	host Host[T]
	tag  Tag

	n            T
	invN         T
	rModN        T
	rSquaredModN T
}

// newBase validates the variant-independent preconditions (n > 1, n odd)
// and precomputes the Montgomery constants. Variant-range checking (n <=
// MaxModulus) is the caller's (Form's) responsibility, since it depends on
// which variant is being constructed.
func newBase[T constraints.Unsigned](h Host[T], tag Tag, n T) (base[T], error) {
	if n <= 1 {
		return base[T]{}, &ContractViolation{
			Kind:    ConstructionViolation,
			Message: "modulus must be greater than 1",
		}
	}
	if n&1 == 0 {
		return base[T]{}, &ContractViolation{
			Kind:    ConstructionViolation,
			Message: "modulus must be odd",
		}
	}

	invN := newtonInverse(h, n)
	r := rModN(h.Width(), n)
	rr := rSquaredModN(r, n)

	return base[T]{
		host:         h,
		tag:          tag,
		n:            n,
		invN:         invN,
		rModN:        r,
		rSquaredModN: rr,
	}, nil
}

// redc runs the biased REDC core on a double-width product, returning a
// value in [0, 2n). Callers finalize per their variant's policy.
func (b *base[T]) redc(hi, lo T) T {
	return redcBiased(b.host, hi, lo, b.n, b.invN)
}

// multiplyBiased computes x*y reduced through REDC without the final
// variant-specific finalization, i.e. the value is in [0, 2n).
// Precondition: x*y < n*R (guaranteed by every variant's invariant).
func (b *base[T]) multiplyBiased(x, y T) T {
	hi, lo := b.host.Mul(x, y)
	return b.redc(hi, lo)
}
