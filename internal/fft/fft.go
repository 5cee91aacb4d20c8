// SPDX-License-Identifier: MIT
/*
Package fft implements a radix-2 discrete Fourier transform for the
spectral pipeline. The transform is the textbook Cooley-Tukey
divide-and-conquer recurrence

	X[k]     = E[k] + exp(-2πik/N)·O[k]
	X[k+N/2] = E[k] - exp(-2πik/N)·O[k]

evaluated iteratively: a bit-reversal permutation followed by in-place
butterfly passes. This produces the same natural-order output as the
recursive formulation while needing no per-call allocation, which keeps
the per-frame hot path GC-free.
*/
package fft

import (
	"fmt"
	"math"

	"github.com/saskaZs/fft-visualization/pkg/bitint"
)

// Engine computes fixed-size DFTs over pre-allocated state.
// It is not safe for concurrent use; the frame loop owns it.
type Engine struct {
	size     int
	rev      []int        // bit-reversal permutation indices
	twiddles []complex128 // exp(-2πik/size) for k in [0, size/2)
}

// New creates an Engine for transforms of the given size.
// The size must be a power of two; anything else is a configuration
// error and is rejected here, before the frame loop can start.
// Callers that cannot guarantee a power of two must zero-pad with
// bitint.NextPowerOfTwo themselves.
func New(size int) (*Engine, error) {
	if !bitint.IsPowerOfTwo(size) {
		return nil, fmt.Errorf("fft: size must be a power of two, got %d", size)
	}

	e := &Engine{
		size:     size,
		rev:      make([]int, size),
		twiddles: make([]complex128, size/2),
	}

	// Bit-reversal permutation: rev[i] is i with its log2(size) low
	// bits reversed.
	bits := 0
	for s := size; s > 1; s >>= 1 {
		bits++
	}
	for i := range e.rev {
		r := 0
		for b := 0; b < bits; b++ {
			r = (r << 1) | ((i >> b) & 1)
		}
		e.rev[i] = r
	}

	for k := range e.twiddles {
		angle := -2 * math.Pi * float64(k) / float64(size)
		e.twiddles[k] = complex(math.Cos(angle), math.Sin(angle))
	}

	return e, nil
}

// Size returns the transform length.
func (e *Engine) Size() int {
	return e.size
}

// Transform computes the DFT of the real-valued src into dst and returns
// dst. Both slices must have length Size; src is zero-extended if it is
// shorter. Bin 0 is DC and the output is in natural frequency order.
func (e *Engine) Transform(dst []complex128, src []float64) []complex128 {
	for i := 0; i < e.size; i++ {
		if i < len(src) {
			dst[i] = complex(src[i], 0)
		} else {
			dst[i] = 0
		}
	}
	e.TransformComplex(dst)
	return dst
}

// TransformComplex computes the DFT of x in place.
// len(x) must equal Size.
func (e *Engine) TransformComplex(x []complex128) {
	if len(x) != e.size {
		panic(fmt.Sprintf("fft: input length %d does not match engine size %d", len(x), e.size))
	}
	if e.size <= 1 {
		return
	}

	for i, r := range e.rev {
		if i < r {
			x[i], x[r] = x[r], x[i]
		}
	}

	// Butterfly passes. span doubles each pass; the twiddle stride
	// halves so twiddles[k*step] is exp(-2πik/span).
	for span := 2; span <= e.size; span <<= 1 {
		half := span >> 1
		step := e.size / span
		for start := 0; start < e.size; start += span {
			for k := 0; k < half; k++ {
				t := e.twiddles[k*step] * x[start+k+half]
				a := x[start+k]
				x[start+k] = a + t
				x[start+k+half] = a - t
			}
		}
	}
}
