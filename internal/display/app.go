// SPDX-License-Identifier: MIT
package display

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/saskaZs/fft-visualization/internal/analysis"
	applog "github.com/saskaZs/fft-visualization/internal/log"
	"github.com/saskaZs/fft-visualization/internal/transport"
	"github.com/saskaZs/fft-visualization/internal/visual"
)

// trailAlpha is the opacity of the black rectangle painted over the
// previous frame. Low alpha makes bright primitives persist for many
// frames before fading out.
const trailAlpha = 15

// BlockSource supplies one block of captured samples per frame.
type BlockSource interface {
	ReadBlock() ([]int16, error)
}

// BlockSink receives each successfully captured block, e.g. a WAV
// recorder.
type BlockSink interface {
	Write(block []int16) error
}

// App is the ebiten game driving the visualization: each tick it pulls
// one audio block, analyzes it, advances the reactive state and
// projects the spectrum to draw primitives; each draw it paints the
// primitives over a slowly fading copy of the previous frame.
type App struct {
	source     BlockSource
	analyzer   *analysis.Analyzer
	controller *visual.StateController
	projector  *visual.Projector
	transport  transport.Transport
	sink       BlockSink

	state    visual.State
	rotation float64

	points []visual.RenderPoint
	lines  []visual.RenderLine

	width, height int
	cleared       bool
}

// NewApp wires the frame pipeline together for a display of the given
// dimensions.
func NewApp(source BlockSource, analyzer *analysis.Analyzer, width, height int) *App {
	return &App{
		source:     source,
		analyzer:   analyzer,
		controller: visual.NewStateController(),
		projector:  visual.NewProjector(width, height),
		state:      visual.NewState(),
		width:      width,
		height:     height,
	}
}

// SetTransport streams each frame's magnitude spectrum to the given
// transport.
func (a *App) SetTransport(t transport.Transport) { a.transport = t }

// SetSink forwards each captured block to the given sink.
func (a *App) SetSink(s BlockSink) { a.sink = s }

// step advances the pipeline by one frame: acquire, analyze, react,
// project. A failed acquisition is rendered as silence rather than
// aborting the run loop.
func (a *App) step() {
	block, err := a.source.ReadBlock()

	var magnitudes []float64
	if err != nil {
		applog.Warnf("Display: block acquisition failed, rendering silence: %v", err)
		magnitudes = a.analyzer.Silence()
	} else {
		if a.sink != nil {
			if err := a.sink.Write(block); err != nil {
				applog.Errorf("Display: recording write failed: %v", err)
				a.sink = nil
			}
		}
		magnitudes = a.analyzer.Analyze(block)
	}

	a.controller.Update(magnitudes, &a.state)
	a.points, a.lines = a.projector.Project(magnitudes, a.state, a.rotation)

	if a.transport != nil {
		if err := a.transport.Send(magnitudes); err != nil {
			applog.Errorf("Display: transport send failed: %v", err)
		}
	}

	a.rotation += a.state.RotationSpeed
}

// Update implements ebiten.Game. Escape ends the run loop.
func (a *App) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	a.step()
	return nil
}

// Draw implements ebiten.Game. The screen is never cleared between
// frames; a translucent black wash over the previous frame produces the
// fading trails.
func (a *App) Draw(screen *ebiten.Image) {
	if !a.cleared {
		screen.Fill(color.Black)
		a.cleared = true
	}

	vector.DrawFilledRect(screen, 0, 0, float32(a.width), float32(a.height),
		color.RGBA{A: trailAlpha}, false)

	for i := range a.points {
		p := &a.points[i]
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Size), p.Color, true)
	}
	for i := range a.lines {
		l := &a.lines[i]
		vector.StrokeLine(screen, float32(l.X1), float32(l.Y1), float32(l.X2), float32(l.Y2),
			float32(l.Width), l.Color, true)
	}
}

// Layout implements ebiten.Game, re-centering the projection when the
// window size changes.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.projector.Resize(outsideWidth, outsideHeight)
		a.cleared = false
	}
	return outsideWidth, outsideHeight
}
