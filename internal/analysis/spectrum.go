package analysis

import (
	"math/cmplx"
	"time"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the one-sided amplitude spectrum of data with its
// mean removed, so bin 0 is always zero. Any length works.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return []float64{}
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	bins := fft.FFTReal(centered)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// DominantPeriod is the period of the strongest non-zero frequency in data
// sampled every step. It reports false for flat or too-short series.
func DominantPeriod(data []float64, step time.Duration) (time.Duration, bool) {
	ps := PowerSpectrum(data)
	best, bestIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best, bestIdx = ps[i], i
		}
	}
	if bestIdx == 0 || best < 1e-9 {
		return 0, false
	}
	return time.Duration(float64(len(data)) * float64(step) / float64(bestIdx)), true
}
