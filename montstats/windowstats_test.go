package montstats

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCountKaryPowOpsFastPath(t *testing.T) {
	// e fits entirely within one P-bit window: only table-build cost.
	c := CountKaryPowOps(3, 3, false)
	require.Equal(t, 3, c.Squarings, "table build for P=3 squares at indices 2,4,6")
	require.Equal(t, 3, c.Multiplies, "table build for P=3 multiplies at indices 3,5,7")
}

func TestCountKaryPowOpsSlidingNeverExceedsNonSliding(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		e := r.Uint64()
		for _, p := range []int{2, 3, 4, 5} {
			plain := CountKaryPowOps(e, p, false)
			slide := CountKaryPowOps(e, p, true)
			require.LessOrEqual(t, slide.Multiplies, plain.Multiplies,
				"sliding window should never require more multiplies: e=%d p=%d", e, p)
		}
	}
}

func TestAnalyzeWindowSizesShape(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	reports, err := AnalyzeWindowSizes(r, 64, 200, []int{2, 3, 4, 5})
	require.NoError(t, err)
	require.Len(t, reports, 8) // 4 window sizes x {sliding off, on}

	for _, rep := range reports {
		require.Greater(t, rep.MeanTotal, 0.0)
		require.GreaterOrEqual(t, rep.StdDevTotal, 0.0)
		require.Equal(t, 200, rep.SampleCount)
	}
}

func TestCountKaryPowOpsDeterministic(t *testing.T) {
	// Same (e, P, sliding) must produce byte-identical counts across calls;
	// cmp.Diff pinpoints which field would differ if it didn't.
	a := CountKaryPowOps(123456789, 4, true)
	b := CountKaryPowOps(123456789, 4, true)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("CountKaryPowOps not deterministic (-first +second):\n%s", diff)
	}
}

func TestAnalyzeWindowSizesRejectsBadInput(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	_, err := AnalyzeWindowSizes(r, 0, 10, []int{3})
	require.Error(t, err)

	_, err = AnalyzeWindowSizes(r, 64, 0, []int{3})
	require.Error(t, err)
}
