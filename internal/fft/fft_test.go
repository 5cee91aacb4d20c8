// SPDX-License-Identifier: MIT
package fft

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/dsp/fourier"
)

const tolerance = 1e-9

func TestNewRejectsNonPowerOfTwo(t *testing.T) {
	for _, size := range []int{0, -1, 3, 5, 6, 7, 100, 511, 513} {
		if _, err := New(size); err == nil {
			t.Errorf("New(%d): expected error for non-power-of-two size", size)
		}
	}
	for _, size := range []int{1, 2, 4, 256, 512, 1024} {
		if _, err := New(size); err != nil {
			t.Errorf("New(%d): unexpected error: %v", size, err)
		}
	}
}

func TestTransformLength(t *testing.T) {
	for _, size := range []int{1, 2, 4, 8, 64, 512} {
		e, err := New(size)
		if err != nil {
			t.Fatalf("New(%d): %v", size, err)
		}
		src := make([]float64, size)
		for i := range src {
			src[i] = float64(i)
		}
		out := e.Transform(make([]complex128, size), src)
		if len(out) != size {
			t.Errorf("size %d: output length %d", size, len(out))
		}
	}
}

func TestTransformImpulse(t *testing.T) {
	const size = 64
	e, _ := New(size)

	src := make([]float64, size)
	src[0] = 1
	out := e.Transform(make([]complex128, size), src)

	// The spectrum of a unit impulse is flat: every bin is exactly 1.
	for k, c := range out {
		if cmplx.Abs(c-1) > tolerance {
			t.Errorf("bin %d: got %v, want 1", k, c)
		}
	}
}

func TestTransformLinearity(t *testing.T) {
	const size = 128
	const a, b = 2.5, -0.75
	e, _ := New(size)
	rng := rand.New(rand.NewSource(1))

	x := make([]float64, size)
	y := make([]float64, size)
	sum := make([]float64, size)
	for i := range x {
		x[i] = rng.Float64()*2 - 1
		y[i] = rng.Float64()*2 - 1
		sum[i] = a*x[i] + b*y[i]
	}

	fx := e.Transform(make([]complex128, size), x)
	fy := e.Transform(make([]complex128, size), y)
	fsum := e.Transform(make([]complex128, size), sum)

	for k := range fsum {
		want := complex(a, 0)*fx[k] + complex(b, 0)*fy[k]
		if cmplx.Abs(fsum[k]-want) > 1e-8 {
			t.Errorf("bin %d: transform(a·x+b·y)=%v, a·X+b·Y=%v", k, fsum[k], want)
		}
	}
}

func TestTransformParseval(t *testing.T) {
	const size = 256
	e, _ := New(size)
	rng := rand.New(rand.NewSource(2))

	src := make([]float64, size)
	var timeEnergy float64
	for i := range src {
		src[i] = rng.Float64()*2 - 1
		timeEnergy += src[i] * src[i]
	}

	out := e.Transform(make([]complex128, size), src)
	var freqEnergy float64
	for _, c := range out {
		freqEnergy += real(c)*real(c) + imag(c)*imag(c)
	}

	want := float64(size) * timeEnergy
	if math.Abs(freqEnergy-want) > 1e-6*want {
		t.Errorf("Parseval violated: sum|X[k]|^2=%g, N·sum|x[n]|^2=%g", freqEnergy, want)
	}
}

func TestTransformHermitianSymmetry(t *testing.T) {
	const size = 64
	e, _ := New(size)
	rng := rand.New(rand.NewSource(3))

	src := make([]float64, size)
	for i := range src {
		src[i] = rng.Float64()*2 - 1
	}
	out := e.Transform(make([]complex128, size), src)

	// Real input: the upper half mirrors the conjugate of the lower half.
	for k := 1; k < size/2; k++ {
		want := cmplx.Conj(out[size-k])
		if cmplx.Abs(out[k]-want) > tolerance {
			t.Errorf("bin %d: conjugate symmetry violated", k)
		}
	}
}

// TestTransformMatchesReference checks the engine bin-for-bin against
// gonum's FFT on random input.
func TestTransformMatchesReference(t *testing.T) {
	const size = 512
	e, _ := New(size)
	rng := rand.New(rand.NewSource(4))

	src := make([]float64, size)
	for i := range src {
		src[i] = rng.Float64()*2 - 1
	}
	got := e.Transform(make([]complex128, size), src)

	ref := fourier.NewFFT(size)
	// gonum returns size/2+1 coefficients for real input; that covers
	// the bins the pipeline consumes.
	want := ref.Coefficients(nil, src)

	for k := range want {
		if cmplx.Abs(got[k]-want[k]) > 1e-8 {
			t.Errorf("bin %d: got %v, reference %v", k, got[k], want[k])
		}
	}
}

func TestTransformZeroPadsShortInput(t *testing.T) {
	const size = 16
	e, _ := New(size)

	short := []float64{1, 2, 3}
	padded := make([]float64, size)
	copy(padded, short)

	got := e.Transform(make([]complex128, size), short)
	want := e.Transform(make([]complex128, size), padded)

	for k := range got {
		if cmplx.Abs(got[k]-want[k]) > tolerance {
			t.Errorf("bin %d: short input %v, zero-padded %v", k, got[k], want[k])
		}
	}
}

func TestTransformHotPath(t *testing.T) {
	const size = 512
	e, _ := New(size)

	src := make([]float64, size)
	for i := range src {
		src[i] = math.Sin(2 * math.Pi * float64(i) / size)
	}
	dst := make([]complex128, size)

	// Warm-up call so one-time costs do not count.
	e.Transform(dst, src)
	allocs := testing.AllocsPerRun(100, func() {
		e.Transform(dst, src)
	})

	if allocs > 0 {
		t.Errorf("Expected zero allocations in Transform hot path, got %.1f", allocs)
	}
}

func BenchmarkTransform(b *testing.B) {
	const size = 512
	e, _ := New(size)

	src := make([]float64, size)
	for i := range src {
		tm := float64(i) / 44100
		src[i] = math.Sin(2*math.Pi*440*tm)*0.5 + math.Sin(2*math.Pi*880*tm)*0.3
	}
	dst := make([]complex128, size)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e.Transform(dst, src)
	}
}
