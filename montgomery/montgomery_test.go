package montgomery

import (
	"fmt"
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/constraints"
)

// randT draws a pseudo-random value of type T. For T=uint32 this truncates
// the 64-bit draw, which is uniform enough for property testing.
func randT[T constraints.Unsigned](r *rand.Rand) T {
	return T(r.Uint64())
}

// randOdd draws an odd value strictly between 1 and bound.
func randOdd[T constraints.Unsigned](r *rand.Rand, bound T) T {
	for {
		n := randT[T](r) % bound
		if n > 1 && n&1 == 1 {
			return n
		}
	}
}

func moduliFor[T constraints.Unsigned, V Variant[T]](r *rand.Rand, h Host[T]) []T {
	var v V
	maxMod := v.MaxModulus(h)
	moduli := []T{}
	for _, small := range []uint64{123, 97, 101, 3, 5} {
		if T(small) < maxMod {
			moduli = append(moduli, T(small))
		}
	}
	for i := 0; i < 4; i++ {
		moduli = append(moduli, randOdd[T](r, maxMod))
	}
	return moduli
}

func TestVariantSuites(t *testing.T) {
	t.Run("uint64", func(t *testing.T) {
		runVariantSuite[uint64, Full[uint64]](t, "Full")
		runVariantSuite[uint64, Half[uint64]](t, "Half")
		runVariantSuite[uint64, Quarter[uint64]](t, "Quarter")
		runVariantSuite[uint64, Sixth[uint64]](t, "Sixth")
	})
	t.Run("uint32", func(t *testing.T) {
		runVariantSuite[uint32, Full[uint32]](t, "Full")
		runVariantSuite[uint32, Half[uint32]](t, "Half")
		runVariantSuite[uint32, Quarter[uint32]](t, "Quarter")
		runVariantSuite[uint32, Sixth[uint32]](t, "Sixth")
	})
}

func runVariantSuite[T constraints.Unsigned, V Variant[T]](t *testing.T, label string) {
	t.Run(label, func(t *testing.T) {
		r := seededRand(t.Name())
		h, err := hostFor[T]()
		require.NoError(t, err)

		for _, n := range moduliFor[T, V](r, h) {
			n := n
			t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
				form, err := NewForm[T, V](n)
				require.NoError(t, err)
				testRoundTrip(t, r, form)
				testConstants(t, form)
				testRingLaws(t, r, form)
				testFusedEquivalences(t, r, form)
				testRangeInvariants(t, r, form)
			})
		}
	})
}

func testRoundTrip[T constraints.Unsigned, V Variant[T]](t *testing.T, r *rand.Rand, f *Form[T, V]) {
	t.Helper()
	n := f.Modulus()
	for i := 0; i < 50; i++ {
		a := randT[T](r) % n
		got := f.ConvertOut(f.ConvertIn(a))
		require.Equal(t, a, got, "round trip for a=%d", a)
	}
}

func testConstants[T constraints.Unsigned, V Variant[T]](t *testing.T, f *Form[T, V]) {
	t.Helper()
	n := f.Modulus()
	require.Equal(t, T(1)%n, f.ConvertOut(f.Unity()))
	require.Equal(t, T(0), f.ConvertOut(f.Zero()))
	require.Equal(t, n-1, f.ConvertOut(f.NegativeOne()))
}

func testRingLaws[T constraints.Unsigned, V Variant[T]](t *testing.T, r *rand.Rand, f *Form[T, V]) {
	t.Helper()
	n := f.Modulus()
	for i := 0; i < 30; i++ {
		x := f.ConvertIn(randT[T](r) % n)
		y := f.ConvertIn(randT[T](r) % n)
		z := f.ConvertIn(randT[T](r) % n)

		require.True(t, f.GetCanonicalValue(f.Add(x, y)).Equal(f.GetCanonicalValue(f.Add(y, x))), "commutativity of add")
		require.True(t, f.GetCanonicalValue(f.Multiply(x, y)).Equal(f.GetCanonicalValue(f.Multiply(y, x))), "commutativity of multiply")

		lhsAdd := f.GetCanonicalValue(f.Add(f.Add(x, y), z))
		rhsAdd := f.GetCanonicalValue(f.Add(x, f.Add(y, z)))
		require.True(t, lhsAdd.Equal(rhsAdd), "associativity of add")

		lhsMul := f.GetCanonicalValue(f.Multiply(f.Multiply(x, y), z))
		rhsMul := f.GetCanonicalValue(f.Multiply(x, f.Multiply(y, z)))
		require.True(t, lhsMul.Equal(rhsMul), "associativity of multiply")

		lhsDist := f.GetCanonicalValue(f.Multiply(f.Add(x, y), z))
		rhsDist := f.GetCanonicalValue(f.Add(f.Multiply(x, z), f.Multiply(y, z)))
		require.True(t, lhsDist.Equal(rhsDist), "distributivity")

		require.True(t, f.GetCanonicalValue(f.Add(x, f.Zero())).Equal(f.GetCanonicalValue(x)), "additive identity")
		require.True(t, f.GetCanonicalValue(f.Multiply(x, f.Unity())).Equal(f.GetCanonicalValue(x)), "multiplicative identity")
		require.True(t, f.GetCanonicalValue(f.Add(x, f.Negate(x))).Equal(f.Zero()), "negation")

		require.True(t, f.GetCanonicalValue(f.Square(x)).Equal(f.GetCanonicalValue(f.Multiply(x, x))), "square == multiply(x,x)")
	}
}

func testFusedEquivalences[T constraints.Unsigned, V Variant[T]](t *testing.T, r *rand.Rand, f *Form[T, V]) {
	t.Helper()
	n := f.Modulus()
	for i := 0; i < 30; i++ {
		x := f.ConvertIn(randT[T](r) % n)
		y := f.ConvertIn(randT[T](r) % n)
		z := f.GetCanonicalValue(f.ConvertIn(randT[T](r) % n))

		require.True(t,
			f.GetCanonicalValue(f.Fmadd(x, y, z)).Equal(f.GetCanonicalValue(f.Add(f.Multiply(x, y), z))),
			"fmadd equivalence")
		require.True(t,
			f.GetCanonicalValue(f.Fmsub(x, y, z)).Equal(f.GetCanonicalValue(f.Subtract(f.Multiply(x, y), z))),
			"fmsub equivalence")
		require.True(t,
			f.GetCanonicalValue(f.Famul(x, z, y)).Equal(f.GetCanonicalValue(f.Multiply(f.Add(x, z), y))),
			"famul equivalence")
		require.True(t,
			f.GetCanonicalValue(f.FusedSquareAdd(x, z)).Equal(f.GetCanonicalValue(f.Add(f.Square(x), z))),
			"fused_square_add equivalence")
		require.True(t,
			f.GetCanonicalValue(f.FusedSquareSub(x, z)).Equal(f.GetCanonicalValue(f.Subtract(f.Square(x), z))),
			"fused_square_sub equivalence")
	}
}

func testRangeInvariants[T constraints.Unsigned, V Variant[T]](t *testing.T, r *rand.Rand, f *Form[T, V]) {
	t.Helper()
	n := f.Modulus()
	bound := f.variant.Bound(n)
	for i := 0; i < 30; i++ {
		x := f.ConvertIn(randT[T](r) % n)
		y := f.ConvertIn(randT[T](r) % n)

		for _, v := range []Value[T]{f.Add(x, y), f.Subtract(x, y), f.Multiply(x, y), f.Square(x)} {
			require.Less(t, v.raw(), bound, "%s internal range", f.variant.Name())
		}
		require.Less(t, f.GetCanonicalValue(x).raw(), n, "canonical < n")
	}
}

func TestConcreteScenarios(t *testing.T) {
	// A handful of hand-picked scenarios run against Full[uint64].
	form, err := NewForm[uint64, Full[uint64]](123)
	require.NoError(t, err)

	x0 := form.ConvertIn(0)
	require.Equal(t, uint64(1), form.ConvertOut(pow(form, x0, 0)))
	require.Equal(t, uint64(0), form.ConvertOut(pow(form, x0, 137)))

	x1 := form.ConvertIn(1)
	require.Equal(t, uint64(1), form.ConvertOut(pow(form, x1, 137)))

	xNeg1 := form.ConvertIn(122)
	require.Equal(t, uint64(122), form.ConvertOut(pow(form, xNeg1, 137)))
	require.Equal(t, uint64(1), form.ConvertOut(pow(form, xNeg1, 138)))

	form101, err := NewForm[uint64, Full[uint64]](101)
	require.NoError(t, err)
	a := form101.ConvertIn(2)
	b := form101.ConvertIn(3)
	four := form101.GetCanonicalValue(form101.ConvertIn(4))
	require.Equal(t, uint64(10), form101.ConvertOut(form101.Fmadd(a, b, four)))
}

// pow is a minimal local square-and-multiply used only so this test file
// doesn't need to import montpow (which itself depends on montgomery);
// montpow's own tests exercise ScalarPow/KaryPow directly against this
// same Form type.
func pow[T constraints.Unsigned, V Variant[T]](f *Form[T, V], base Value[T], e uint64) Value[T] {
	result := f.Unity().ToValue()
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			result = f.Multiply(result, base)
		}
		base = f.Square(base)
	}
	return result
}

func TestConstructionPreconditions(t *testing.T) {
	_, err := NewForm[uint64, Full[uint64]](1)
	require.Error(t, err)

	_, err = NewForm[uint64, Full[uint64]](4)
	require.Error(t, err, "even modulus must be rejected")

	_, err = NewForm[uint64, Half[uint64]](1<<63 + 1)
	require.Error(t, err, "modulus above Half's bound must be rejected")

	_, err = NewForm[uint64, Half[uint64]]((1 << 62) - 1)
	require.NoError(t, err)
}

// TestRoundTripQuick and TestMultiplyCommutesQuick use testing/quick rather
// than a hand-rolled loop, matching
// blck-snwmn-arithmetic-vault/montgomery_test.go's quick.Check usage for the
// same class of round-trip/commutativity property.
func TestRoundTripQuick(t *testing.T) {
	form, err := NewForm[uint64, Full[uint64]](0xabcdef0123456789 | 1)
	require.NoError(t, err)
	n := form.Modulus()

	prop := func(a uint64) bool {
		a %= n
		return form.ConvertOut(form.ConvertIn(a)) == a
	}
	if err := quick.Check(prop, &quick.Config{MaxCount: 200}); err != nil {
		t.Error(err)
	}
}

func TestMultiplyCommutesQuick(t *testing.T) {
	form, err := NewForm[uint64, Full[uint64]](0xabcdef0123456789 | 1)
	require.NoError(t, err)
	n := form.Modulus()

	prop := func(a, b uint64) bool {
		x := form.ConvertIn(a % n)
		y := form.ConvertIn(b % n)
		return form.GetCanonicalValue(form.Multiply(x, y)).Equal(form.GetCanonicalValue(form.Multiply(y, x)))
	}
	if err := quick.Check(prop, &quick.Config{MaxCount: 200}); err != nil {
		t.Error(err)
	}
}

func TestConvertInDomainViolation(t *testing.T) {
	form, err := NewForm[uint64, Full[uint64]](101)
	require.NoError(t, err)

	require.Panics(t, func() {
		form.ConvertIn(101)
	})

	require.NotPanics(t, func() {
		form.ConvertInReduced(202) // 202 mod 101 == 0
	})
}
