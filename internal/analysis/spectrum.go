// Package analysis provides frequency-domain inspection of recorded engine
// traces. The displacement of any cylinder is 360°-periodic, so a healthy
// trace at constant speed shows a dominant line at RPM/60 Hz.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude spectrum of the signal, one bin per
// frequency up to Nyquist. Input is zero-padded to a power of two.
func PowerSpectrum(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency locates the strongest non-DC line in hertz. dt is the
// sample spacing in seconds. Returns 0 for traces too short to analyze.
func DominantFrequency(data []float64, dt float64) float64 {
	if len(data) < 4 || dt <= 0 {
		return 0
	}

	n := 1
	for n < len(data) {
		n *= 2
	}
	ps := PowerSpectrum(data)

	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}

	// Bin width is 1/(n·dt) Hz over the padded length.
	return float64(maxIdx) / (float64(n) * dt)
}
