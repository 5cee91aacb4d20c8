// SPDX-License-Identifier: MIT
/*
Package analysis converts captured sample blocks into the logarithmic
magnitude spectrum that drives the visualization. The per-frame path is
allocation-free: windowing, transform and magnitude extraction all run
over buffers pre-allocated at construction time.
*/
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/window"

	"github.com/saskaZs/fft-visualization/internal/fft"
)

// Pre-allocated buffers for one frame of spectral analysis.
type workspace struct {
	input     []float64    // windowed samples
	spectrum  []complex128 // complex FFT output
	magnitude []float64    // log-scale magnitudes, size/2 bins
	window    []float64    // Hann coefficients
}

// Analyzer turns one block of raw int16 samples into a magnitude
// spectrum. It owns an fft.Engine sized to the block length and is not
// safe for concurrent use; the frame loop owns it.
type Analyzer struct {
	engine    *fft.Engine
	size      int
	workspace workspace
}

// NewAnalyzer creates an Analyzer for blocks of the given length.
// The length must be a power of two (enforced by the FFT engine); a
// violation here is a configuration error that must keep the frame
// loop from starting.
func NewAnalyzer(size int) (*Analyzer, error) {
	engine, err := fft.New(size)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}

	coeffs := make([]float64, size)
	for i := range coeffs {
		coeffs[i] = 1.0
	}
	if size > 1 {
		window.Hann(coeffs)
	} else {
		// Hann of a single sample is zero-weighted.
		coeffs[0] = 0
	}

	return &Analyzer{
		engine: engine,
		size:   size,
		workspace: workspace{
			input:     make([]float64, size),
			spectrum:  make([]complex128, size),
			magnitude: make([]float64, size/2),
			window:    coeffs,
		},
	}, nil
}

// Analyze windows the block, transforms it and fills the magnitude
// buffer with 20·log10(|spectrum[k]|+1) for the lower half of the
// spectrum. The +1 offset keeps silence at exactly 0 rather than -Inf.
// Samples stay in raw int16 scale: the reactive thresholds downstream
// are calibrated against it, so no normalization happens here.
//
// The returned slice is the internal buffer, valid until the next call
// to Analyze or Silence.
func (a *Analyzer) Analyze(block []int16) []float64 {
	in := a.workspace.input
	for i := range in {
		if i < len(block) {
			in[i] = float64(block[i]) * a.workspace.window[i]
		} else {
			in[i] = 0 // zero-pad short reads
		}
	}

	a.engine.Transform(a.workspace.spectrum, in)

	for k := range a.workspace.magnitude {
		a.workspace.magnitude[k] = 20 * math.Log10(cmplx.Abs(a.workspace.spectrum[k])+1)
	}
	return a.workspace.magnitude
}

// Silence fills the magnitude buffer with zeros and returns it. The
// frame loop calls this when block acquisition fails, so the renderer
// always receives a valid, if silent, frame.
func (a *Analyzer) Silence() []float64 {
	for k := range a.workspace.magnitude {
		a.workspace.magnitude[k] = 0
	}
	return a.workspace.magnitude
}

// BinCount returns the number of magnitude bins (half the block size).
func (a *Analyzer) BinCount() int {
	return a.size / 2
}

// Size returns the expected block length.
func (a *Analyzer) Size() int {
	return a.size
}

// FrequencyForBin returns the center frequency in Hz of a magnitude bin
// at the given sample rate, or 0 for an out-of-range index.
func (a *Analyzer) FrequencyForBin(bin int, sampleRate float64) float64 {
	if bin < 0 || bin >= a.BinCount() {
		return 0
	}
	return float64(bin) * sampleRate / float64(a.size)
}
