// SPDX-License-Identifier: MIT
package visual

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Geometry constants for the radial projection.
const (
	Symmetry = 12 // angular copies of each projected point

	minBin      = 2  // skip DC and the first bin
	maxBin      = 80 // bass/low-mid only, higher bins add visual noise
	noiseGate   = 10.0
	lineGate    = 50.0 // magnitude above which connecting lines appear
	valueCeil   = 60.0 // magnitude mapped to full HSV value
	hueSpread   = 0.02 // hue advance per bin index
	radiusCurve = 1.8  // nonlinear growth emphasizes loud bins
	radiusGain  = 0.1
	angleStep   = 0.1 // per-bin spiral offset
	lineRecoil  = 0.2 // angular offset of the inner line endpoint
	pointGain   = 0.15

	saturation = 0.9

	// Wide displays get more room per bin.
	wideWidth       = 1500
	wideRadiusScale = 5.0
	radiusScale     = 3.0
)

// RenderPoint is one filled circle to draw. Produced fresh each frame
// and consumed immediately; never stored across frames.
type RenderPoint struct {
	X, Y  float64
	Size  float64
	Color color.RGBA
}

// RenderLine is one line segment to draw.
type RenderLine struct {
	X1, Y1 float64
	X2, Y2 float64
	Width  float64
	Color  color.RGBA
}

// Projector maps a magnitude spectrum to radial draw primitives. It
// retains no frame-to-frame state; the point and line slices are merely
// reused to keep the per-frame path allocation-free once warm.
type Projector struct {
	centerX, centerY float64
	binRadius        float64

	points []RenderPoint
	lines  []RenderLine
}

// NewProjector creates a projector for a display of the given pixel
// dimensions.
func NewProjector(width, height int) *Projector {
	p := &Projector{}
	p.Resize(width, height)
	return p
}

// Resize re-centers the projection for new display dimensions.
func (p *Projector) Resize(width, height int) {
	p.centerX = float64(width) / 2
	p.centerY = float64(height) / 2
	p.binRadius = radiusScale
	if width > wideWidth {
		p.binRadius = wideRadiusScale
	}
}

// Project maps one frame's magnitudes to points and lines. Bins below
// the noise gate and bins outside [2, 80) emit nothing. The returned
// slices are valid until the next call.
func (p *Projector) Project(magnitudes []float64, s State, rotation float64) ([]RenderPoint, []RenderLine) {
	p.points = p.points[:0]
	p.lines = p.lines[:0]

	maxIdx := len(magnitudes)
	if maxIdx > maxBin {
		maxIdx = maxBin
	}

	for i := minBin; i < maxIdx; i++ {
		val := magnitudes[i]
		if val < noiseGate {
			continue
		}

		hue := math.Mod(float64(i)*hueSpread+s.Hue, 1.0)
		col := colorful.Hsv(hue*360, saturation, math.Min(1.0, val/valueCeil))
		r, g, b := col.RGB255()
		rgba := color.RGBA{R: r, G: g, B: b, A: 0xff}

		radius := float64(i)*p.binRadius + math.Pow(val, radiusCurve)*radiusGain
		angleOffset := float64(i) * angleStep
		size := val * pointGain

		for j := 0; j < Symmetry; j++ {
			angle := 2*math.Pi*float64(j)/Symmetry + rotation + angleOffset

			x := p.centerX + math.Cos(angle)*radius
			y := p.centerY + math.Sin(angle)*radius

			p.points = append(p.points, RenderPoint{X: x, Y: y, Size: size, Color: rgba})

			if val > lineGate {
				p.lines = append(p.lines, RenderLine{
					X1:    x,
					Y1:    y,
					X2:    p.centerX + math.Cos(angle-lineRecoil)*(radius*0.5),
					Y2:    p.centerY + math.Sin(angle-lineRecoil)*(radius*0.5),
					Width: 1,
					Color: rgba,
				})
			}
		}
	}

	return p.points, p.lines
}
