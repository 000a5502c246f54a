// Package montstats answers a purely static question about montpow's
// windowed exponentiation: for exponents of a given bit length, which
// window size P minimizes the expected number of multiplies? It samples
// random exponents, counts operations by walking the same table-build and
// window-extraction structure montpow.KaryPow uses (without touching any
// actual modulus or Value — the operation count depends only on P, the
// sliding-window flag, and the exponent's bit pattern), and reduces the
// per-exponent counts with github.com/montanaflynn/stats.
//
// This is deliberately not a timing benchmark: it reports a static
// property of the algorithm (multiply count), not wall-clock duration.
package montstats

import (
	"fmt"
	"math/bits"
	"math/rand"

	"github.com/montanaflynn/stats"
)

// OpCount is the squaring/multiply count montpow.KaryPow would perform for
// one base^e call at window size P, including table construction.
type OpCount struct {
	Squarings  int
	Multiplies int
}

// Total is the combined squaring+multiply count, the usual cost metric
// since both are single REDC-bounded multiplies in montgomery.Form.
func (c OpCount) Total() int { return c.Squarings + c.Multiplies }

// CountKaryPowOps mirrors montpow.KaryPow's structure (table build, fast
// path, window loop, sliding-window skip, final partial window) but counts
// operations instead of performing them, so it needs no montgomery.Form.
func CountKaryPowOps(e uint64, p int, sliding bool) OpCount {
	var c OpCount
	size := 1 << uint(p)
	for i := 2; i < size; i += 2 {
		c.Squarings++
		if i+1 < size {
			c.Multiplies++
		}
	}

	mask := uint64(size - 1)
	if e <= mask {
		return c
	}

	numbits := 64 - bits.LeadingZeros64(e)
	shift := numbits - p

	for shift >= p {
		if sliding {
			for shift > p && (e>>uint(shift-1))&1 == 0 {
				c.Squarings++
				shift--
			}
		}
		c.Squarings += p
		shift -= p
		c.Multiplies++
	}

	if shift > 0 {
		c.Squarings += shift
		c.Multiplies++
	}

	return c
}

// WindowReport summarizes sampled operation counts for one (P, sliding)
// configuration.
type WindowReport struct {
	P            int
	Sliding      bool
	MeanTotal    float64
	StdDevTotal  float64
	MeanMultiply float64
	SampleCount  int
}

// AnalyzeWindowSizes samples sampleCount random exponents of bitLength bits
// (the top bit always set, so every sample has exactly bitLength
// significant bits) and reports mean/stddev operation counts for each P in
// windowSizes, with sliding window both off and on.
func AnalyzeWindowSizes(rng *rand.Rand, bitLength int, sampleCount int, windowSizes []int) ([]WindowReport, error) {
	if bitLength <= 0 || bitLength > 64 {
		return nil, fmt.Errorf("montstats: bitLength must be in (0, 64], got %d", bitLength)
	}
	if sampleCount <= 0 {
		return nil, fmt.Errorf("montstats: sampleCount must be positive, got %d", sampleCount)
	}

	exponents := make([]uint64, sampleCount)
	for i := range exponents {
		e := rng.Uint64()
		if bitLength < 64 {
			e &= (uint64(1) << uint(bitLength)) - 1
		}
		e |= uint64(1) << uint(bitLength-1)
		exponents[i] = e
	}

	var reports []WindowReport
	for _, p := range windowSizes {
		for _, sliding := range []bool{false, true} {
			totals := make([]float64, sampleCount)
			multiplies := make([]float64, sampleCount)
			for i, e := range exponents {
				oc := CountKaryPowOps(e, p, sliding)
				totals[i] = float64(oc.Total())
				multiplies[i] = float64(oc.Multiplies)
			}
			mean, err := stats.Mean(totals)
			if err != nil {
				return nil, fmt.Errorf("montstats: mean: %w", err)
			}
			stddev, err := stats.StdDevS(totals)
			if err != nil {
				return nil, fmt.Errorf("montstats: stddev: %w", err)
			}
			meanMul, err := stats.Mean(multiplies)
			if err != nil {
				return nil, fmt.Errorf("montstats: mean multiplies: %w", err)
			}
			reports = append(reports, WindowReport{
				P:            p,
				Sliding:      sliding,
				MeanTotal:    mean,
				StdDevTotal:  stddev,
				MeanMultiply: meanMul,
				SampleCount:  sampleCount,
			})
		}
	}
	return reports, nil
}
