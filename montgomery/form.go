package montgomery

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// valuer is implemented by every value wrapper (Value, Canonical, Fusing)
// so Form's arithmetic methods can accept any of them, standing in for the
// "CanonicalValue implicitly usable wherever MontgomeryValue is accepted"
// relationship a value representation ought to have; Go has no implicit
// struct conversions, so this is modeled as a one-method interface instead.
type valuer[T constraints.Unsigned] interface {
	raw() T
}

// Value is a residue in Montgomery form. Its underlying representation
// satisfies the owning Form's variant range, but two distinct Values may
// represent the same residue class, so Value deliberately has no Equal
// method; use GetCanonicalValue first.
type Value[T constraints.Unsigned] struct{ v T }

func (x Value[T]) raw() T { return x.v }

// Canonical is a Value whose representation is the unique member of
// [0, n). Unlike Value, it supports equality.
type Canonical[T constraints.Unsigned] struct{ v T }

func (x Canonical[T]) raw() T { return x.v }

// ToValue widens a Canonical back to a plain Value.
func (x Canonical[T]) ToValue() Value[T] { return Value[T]{v: x.v} }

// Equal reports whether two canonical values represent the same residue.
func (x Canonical[T]) Equal(y Canonical[T]) bool { return x.v == y.v }

// Fusing is the hint type accepted as the addend/subtrahend of fused
// operations. For every variant implemented here it has the same layout as
// Canonical; it is kept as a distinct type so a future variant with a
// different fusing representation doesn't have to break this one.
type Fusing[T constraints.Unsigned] struct{ v T }

func (x Fusing[T]) raw() T { return x.v }

// Form is the public facade: a modulus, a variant strategy, and the
// arithmetic primitives built from REDC. V is a stateless strategy type
// (Full[T], Half[T], Quarter[T], or Sixth[T]) selected at compile time, so
// which finalize/canonicalize/add/subtract code path runs is resolved by
// monomorphization rather than a vtable.
type Form[T constraints.Unsigned, V Variant[T]] struct {
	base    base[T]
	variant V
}

// NewForm constructs a Form for modulus n, picking the default Performance
// Tag for the running host. Precondition: 1 < n <= V's MaxModulus, n odd.
func NewForm[T constraints.Unsigned, V Variant[T]](n T) (*Form[T, V], error) {
	return NewFormWithTag[T, V](n, DefaultTag())
}

// NewFormWithTag is NewForm with an explicit Performance Tag override.
func NewFormWithTag[T constraints.Unsigned, V Variant[T]](n T, tag Tag) (*Form[T, V], error) {
	h, err := hostFor[T]()
	if err != nil {
		return nil, err
	}

	var v V
	if maxMod := v.MaxModulus(h); n > maxMod {
		return nil, &ContractViolation{
			Kind:    ConstructionViolation,
			Message: fmt.Sprintf("modulus %d exceeds max modulus %d for variant %s", n, maxMod, v.Name()),
		}
	}

	b, err := newBase(h, tag, n)
	if err != nil {
		return nil, err
	}

	return &Form[T, V]{base: b, variant: v}, nil
}

// Modulus returns n.
func (f *Form[T, V]) Modulus() T { return f.base.n }

// MaxModulus returns the largest modulus this Form's variant permits at T's
// width.
func (f *Form[T, V]) MaxModulus() T { return f.variant.MaxModulus(f.base.host) }

// Tag returns the Performance Tag this Form was constructed with.
func (f *Form[T, V]) Tag() Tag { return f.base.tag }

// ConvertIn converts a into Montgomery form. Precondition: 0 <= a < modulus.
func (f *Form[T, V]) ConvertIn(a T) Value[T] {
	assertf(DomainViolation, a < f.base.n, "convert_in: a=%d must be < modulus %d", a, f.base.n)
	biased := f.base.multiplyBiased(a, f.base.rSquaredModN)
	return Value[T]{v: f.variant.FinalizeREDC(biased, f.base.n)}
}

// ConvertInReduced is the relaxed form of ConvertIn: it reduces a mod n
// first, accepting any a of type T. See DESIGN.md's "convert_in's
// precondition strictness" resolution.
func (f *Form[T, V]) ConvertInReduced(a T) Value[T] {
	return f.ConvertIn(a % f.base.n)
}

// ConvertOut converts v back to the standard domain. Postcondition: result
// in [0, modulus).
func (f *Form[T, V]) ConvertOut(v valuer[T]) T {
	biased := f.base.redc(0, v.raw())
	return finalizeFull(biased, f.base.n)
}

// Zero returns the canonical representation of 0.
func (f *Form[T, V]) Zero() Canonical[T] {
	return f.GetCanonicalValue(f.ConvertIn(0))
}

// Unity returns the canonical representation of 1.
func (f *Form[T, V]) Unity() Canonical[T] {
	return f.GetCanonicalValue(f.ConvertIn(1))
}

// NegativeOne returns the canonical representation of n-1.
func (f *Form[T, V]) NegativeOne() Canonical[T] {
	return f.GetCanonicalValue(f.ConvertIn(f.base.n - 1))
}

// GetCanonicalValue reduces v down to the unique representative in [0, n).
func (f *Form[T, V]) GetCanonicalValue(v valuer[T]) Canonical[T] {
	return Canonical[T]{v: f.variant.Canonical(v.raw(), f.base.n)}
}

// GetFusingValue produces the hint type used by fused operations.
func (f *Form[T, V]) GetFusingValue(v valuer[T]) Fusing[T] {
	c := f.GetCanonicalValue(v)
	return Fusing[T]{v: c.v}
}

// Add computes x+y.
func (f *Form[T, V]) Add(x, y valuer[T]) Value[T] {
	return Value[T]{v: f.variant.Add(x.raw(), y.raw(), f.base.n)}
}

// Subtract computes x-y.
func (f *Form[T, V]) Subtract(x, y valuer[T]) Value[T] {
	return Value[T]{v: f.variant.Subtract(x.raw(), y.raw(), f.base.n)}
}

// UnorderedSubtract computes |x-y| without committing to a sign.
func (f *Form[T, V]) UnorderedSubtract(x, y valuer[T]) Value[T] {
	return Value[T]{v: f.variant.UnorderedSubtract(x.raw(), y.raw(), f.base.n)}
}

// Negate computes -x.
func (f *Form[T, V]) Negate(x valuer[T]) Value[T] {
	zero := f.Zero()
	return f.Subtract(zero, x)
}

// Multiply computes x*y reduced through REDC.
// Precondition: x*y < n*R, guaranteed by every variant's invariant.
func (f *Form[T, V]) Multiply(x, y valuer[T]) Value[T] {
	biased := f.base.multiplyBiased(x.raw(), y.raw())
	return Value[T]{v: f.variant.FinalizeREDC(biased, f.base.n)}
}

// Square computes x*x. Implemented via Multiply(x, x): Host has no
// dedicated wide-square primitive distinct from Mul (math/bits offers no
// Square32/64), so there is no uop count to save by special-casing it here.
func (f *Form[T, V]) Square(x valuer[T]) Value[T] {
	return f.Multiply(x, x)
}

// Fmadd computes x*y + z, where z is canonical.
func (f *Form[T, V]) Fmadd(x, y valuer[T], z Canonical[T]) Value[T] {
	return f.Add(f.Multiply(x, y), z)
}

// Fmsub computes x*y - z, where z is canonical.
func (f *Form[T, V]) Fmsub(x, y valuer[T], z Canonical[T]) Value[T] {
	return f.Subtract(f.Multiply(x, y), z)
}

// FusedSquareAdd computes x*x + z, where z is canonical.
func (f *Form[T, V]) FusedSquareAdd(x valuer[T], z Canonical[T]) Value[T] {
	return f.Add(f.Square(x), z)
}

// FusedSquareSub computes x*x - z, where z is canonical.
func (f *Form[T, V]) FusedSquareSub(x valuer[T], z Canonical[T]) Value[T] {
	return f.Subtract(f.Square(x), z)
}

// Famul computes (x+y)*z, where y is canonical. Half and Sixth skip the
// modular reduction of x+y when their bounds guarantee it is unnecessary;
// see Variant.FamulSum and DESIGN.md.
func (f *Form[T, V]) Famul(x valuer[T], y Canonical[T], z valuer[T]) Value[T] {
	sum := f.variant.FamulSum(x.raw(), y.raw(), f.base.n)
	biased := f.base.multiplyBiased(sum, z.raw())
	return Value[T]{v: f.variant.FinalizeREDC(biased, f.base.n)}
}

// GCDWithModulus returns gcd(convert_out(v), modulus) using a caller
// supplied GCD functor, avoiding a redundant ConvertOut call a caller would
// otherwise have to perform before computing the gcd itself.
func (f *Form[T, V]) GCDWithModulus(v valuer[T], gcd func(a, b T) T) T {
	return gcd(f.ConvertOut(v), f.base.n)
}

// Select is the conditional_select host facility applied to two Values
// rather than raw integers, so exponentiation code (montpow) never needs
// to see a Value's underlying representation to branchlessly choose
// between a squared-only and a squared-and-multiplied result.
func (f *Form[T, V]) Select(cond bool, a, b Value[T]) Value[T] {
	return Value[T]{v: Select(cond, a.v, b.v)}
}

// Unwrap exposes a Value's underlying representation for callers (montpow's
// squaring-value chain) that need to carry the raw bits but must not
// interpret them themselves. Paired with Wrap.
func (f *Form[T, V]) Unwrap(v valuer[T]) T { return v.raw() }

// Wrap reconstructs a Value from a representation previously obtained via
// Unwrap from the same Form. Precondition: raw was produced by this Form
// (not checked; this is an internal plumbing escape hatch, not part of the
// ordinary arithmetic surface).
func (f *Form[T, V]) Wrap(raw T) Value[T] { return Value[T]{v: raw} }

// SquareBiased computes x*x through REDC without the variant's finalize
// step, returning the raw [0, 2n) result. Exposed for the squaring-value
// optimization (montpow.SquaringValue), which chains several such biased
// squarings and finalizes once instead of paying a conditional subtraction
// every step. Precondition: x < 2n and n < R/4, so x*x < n*R and the biased
// result stays in [0, 2n) regardless of which variant this Form uses.
func (f *Form[T, V]) SquareBiased(x valuer[T]) T {
	return f.base.multiplyBiased(x.raw(), x.raw())
}

// FinalizeBiased turns an unfinalized REDC result (e.g. the output of
// SquareBiased, or of chaining several of them) into a Value via this
// Form's variant's normal finalize policy.
func (f *Form[T, V]) FinalizeBiased(biased T) Value[T] {
	return Value[T]{v: f.variant.FinalizeREDC(biased, f.base.n)}
}
