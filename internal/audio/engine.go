// SPDX-License-Identifier: MIT
/*
Package audio implements live sample capture with PortAudio:
- Blocking block-at-a-time reads sized to the analysis window
- Mono int16 input, the format the spectral pipeline is calibrated for
- Optional WAV recording of the captured stream

The capture engine is owned by the frame loop; one ReadBlock call per
frame, bounded by the buffer duration, so the loop can never stall
indefinitely on the device.
*/
package audio

import (
	"fmt"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/saskaZs/fft-visualization/internal/config"
	applog "github.com/saskaZs/fft-visualization/internal/log"
)

// Engine captures mono int16 sample blocks from a PortAudio input
// stream. Not safe for concurrent use.
type Engine struct {
	cfg *config.Config

	inputDevice  *portaudio.DeviceInfo
	inputLatency time.Duration
	inputStream  *portaudio.Stream

	// Stream-bound block buffer: every ReadBlock fills and returns it.
	block []int16
}

// NewEngine resolves the input device and pre-allocates the block
// buffer. The stream is not opened until Start.
func NewEngine(cfg *config.Config) (*Engine, error) {
	inputDevice, err := InputDevice(cfg.Audio.DeviceID)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:         cfg,
		inputDevice: inputDevice,
		block:       make([]int16, cfg.Audio.FramesPerBuffer),
	}

	if cfg.Audio.LowLatency {
		e.inputLatency = inputDevice.DefaultLowInputLatency
	} else {
		e.inputLatency = inputDevice.DefaultHighInputLatency
	}

	applog.Infof("Audio: Using input device [%s] (latency %s)", inputDevice.Name, e.inputLatency)
	return e, nil
}

// Start opens and starts the blocking input stream. Failure here is a
// device initialization error and is fatal to the caller.
func (e *Engine) Start() error {
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   e.inputDevice,
			Channels: config.DefaultChannels,
			Latency:  e.inputLatency,
		},
		FramesPerBuffer: e.cfg.Audio.FramesPerBuffer,
		SampleRate:      e.cfg.Audio.SampleRate,
	}

	stream, err := portaudio.OpenStream(params, e.block)
	if err != nil {
		return fmt.Errorf("failed to open input stream: %w", err)
	}
	e.inputStream = stream

	if err := e.inputStream.Start(); err != nil {
		e.inputStream.Close()
		e.inputStream = nil
		return fmt.Errorf("failed to start input stream: %w", err)
	}

	return nil
}

// ReadBlock blocks until one full sample block is available and returns
// it. The slice is the engine's internal buffer, valid until the next
// call. An input overflow means the device outran us; the stale block
// is still usable, so it is not treated as a failure.
func (e *Engine) ReadBlock() ([]int16, error) {
	if e.inputStream == nil {
		return nil, fmt.Errorf("input stream not started")
	}
	if err := e.inputStream.Read(); err != nil {
		if err == portaudio.InputOverflowed {
			applog.Debugf("Audio: input overflowed, continuing")
			return e.block, nil
		}
		return nil, fmt.Errorf("failed to read sample block: %w", err)
	}
	return e.block, nil
}

// BlockSize returns the number of samples per block.
func (e *Engine) BlockSize() int {
	return len(e.block)
}

// Close stops and closes the input stream. Safe to call more than once.
func (e *Engine) Close() error {
	if e.inputStream == nil {
		return nil
	}

	if err := e.inputStream.Stop(); err != nil {
		return fmt.Errorf("failed to stop input stream: %w", err)
	}
	if err := e.inputStream.Close(); err != nil {
		return fmt.Errorf("failed to close input stream: %w", err)
	}
	e.inputStream = nil
	return nil
}
