// Package analysis extracts spectral quantities from recorded time
// series. The free-stream case reads its vortex-shedding frequency off
// the lift history.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitudes of the positive-frequency half of
// the series' discrete transform. The mean is removed first so bin zero
// does not swamp the physical peaks. Bin k holds frequency k/(n*dt).
func PowerSpectrum(values []float64) []float64 {
	n := len(values)
	if n < 2 {
		return nil
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	x := make([]float64, n)
	for i, v := range values {
		x[i] = v - mean
	}
	spec := fft.FFTReal(x)

	ps := make([]float64, n/2)
	for k := range ps {
		ps[k] = cmplx.Abs(spec[k])
	}
	return ps
}

// DominantFrequency returns the frequency of the strongest spectral
// component of a series sampled at interval dt. Series too short to
// carry a nonzero bin read as zero.
func DominantFrequency(values []float64, dt float64) float64 {
	if dt <= 0 || len(values) < 4 {
		return 0
	}
	ps := PowerSpectrum(values)
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	return float64(peak) / (float64(len(values)) * dt)
}
