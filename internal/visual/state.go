// SPDX-License-Identifier: MIT
/*
Package visual holds the longitudinal visualization state and the
projection from magnitude spectra to drawable primitives. Everything in
this package is pure computation; drawing lives in the display package.
*/
package visual

import (
	"math"

	applog "github.com/saskaZs/fft-visualization/internal/log"
)

// Reactive constants. These are deliberately literal: the beat response
// is a single-threshold step with geometric decay, tuned as a set.
const (
	BeatThreshold = 45.0 // average magnitude above which a frame counts as a beat

	beatHueStep = 0.05
	idleHueStep = 0.002

	beatRotationSpeed = 0.02
	minRotationSpeed  = 0.002
	rotationDamping   = 0.95

	initialRotationSpeed = 0.005
)

// State is the per-process visualization state: created once at
// startup, mutated every frame by the StateController, never reset.
// Hue wraps modulo 1.0; RotationSpeed never drops below its floor.
type State struct {
	Hue           float64
	RotationSpeed float64
}

// NewState returns the startup state.
func NewState() State {
	return State{Hue: 0, RotationSpeed: initialRotationSpeed}
}

// StateController updates the State from the average spectral energy of
// a frame. Loud frames step the hue and rotation speed instantly; quiet
// frames drift the hue slowly while the rotation decays toward the floor.
type StateController struct {
	threshold float64
}

// NewStateController creates a controller with the standard beat
// threshold.
func NewStateController() *StateController {
	applog.Debugf("Visual: Initializing StateController (Threshold: %.1f)", BeatThreshold)
	return &StateController{threshold: BeatThreshold}
}

// Update applies one frame's magnitudes to s. An empty spectrum leaves
// the state untouched.
func (c *StateController) Update(magnitudes []float64, s *State) {
	if len(magnitudes) == 0 {
		return
	}

	var sum float64
	for _, m := range magnitudes {
		sum += m
	}
	avgAmp := sum / float64(len(magnitudes))

	if avgAmp > c.threshold {
		s.Hue += beatHueStep
		s.RotationSpeed = beatRotationSpeed
	} else {
		s.Hue += idleHueStep
		s.RotationSpeed = math.Max(minRotationSpeed, s.RotationSpeed*rotationDamping)
	}

	s.Hue = math.Mod(s.Hue, 1.0)
}
