// Package config holds runtime configuration for the visualizer:
// built-in defaults, optional YAML overrides, environment overrides and
// validation. Flags parsed by the cmd package take final precedence.
package config

import (
	"fmt"

	"github.com/saskaZs/fft-visualization/pkg/bitint"
)

// Defaults and limits for the capture and display pipeline.
const (
	DefaultDeviceID        = MinDeviceID // system default input device
	DefaultChannels        = 1           // mono capture
	DefaultSampleRate      = 44100       // CD-quality audio
	DefaultFramesPerBuffer = 512         // one analysis block per frame
	DefaultLowLatency      = false

	DefaultFullscreen = true
	DefaultFrameRate  = 60 // frame-rate cap, Hz
	DefaultWidth      = 1280
	DefaultHeight     = 720

	MinDeviceID     = -1     // -1 selects the system default device
	MinSampleRate   = 8000   // minimum usable sample rate (Hz)
	MaxSampleRate   = 192000 // maximum supported sample rate (Hz)
	MaxBufferFrames = 8192   // maximum frames per buffer
)

// Config is the full runtime configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`         // "debug", "info", "warn", "error"
	Command  string `yaml:"command,omitempty"` // one-off command instead of the visualizer (e.g. "list")

	Audio     AudioConfig     `yaml:"audio"`
	Display   DisplayConfig   `yaml:"display"`
	Recording RecordingConfig `yaml:"recording"`
	Transport TransportConfig `yaml:"transport"`
}

// AudioConfig holds capture settings.
type AudioConfig struct {
	DeviceID        int     `yaml:"device_id"`         // PortAudio input device index, -1 for default
	SampleRate      float64 `yaml:"sample_rate"`       // Hz
	FramesPerBuffer int     `yaml:"frames_per_buffer"` // analysis block length, power of two
	LowLatency      bool    `yaml:"low_latency"`       // request low latency settings from the device
}

// DisplayConfig holds window settings.
type DisplayConfig struct {
	Fullscreen bool `yaml:"fullscreen"`
	Width      int  `yaml:"width"`  // used when not fullscreen
	Height     int  `yaml:"height"` // used when not fullscreen
}

// RecordingConfig holds optional WAV capture settings.
type RecordingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	OutputFile string `yaml:"output_file"` // empty for an auto-generated name
}

// TransportConfig holds optional spectrum broadcast settings.
type TransportConfig struct {
	WebSocketEnabled bool   `yaml:"websocket_enabled"`
	WebSocketAddr    string `yaml:"websocket_addr"` // e.g. ":8080"
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Audio: AudioConfig{
			DeviceID:        DefaultDeviceID,
			SampleRate:      DefaultSampleRate,
			FramesPerBuffer: DefaultFramesPerBuffer,
			LowLatency:      DefaultLowLatency,
		},
		Display: DisplayConfig{
			Fullscreen: DefaultFullscreen,
			Width:      DefaultWidth,
			Height:     DefaultHeight,
		},
		Recording: RecordingConfig{
			Enabled:    false,
			OutputFile: "",
		},
		Transport: TransportConfig{
			WebSocketEnabled: false,
			WebSocketAddr:    ":8080",
		},
	}
}

// Validate checks the configuration before any resource is acquired.
// The frames-per-buffer power-of-two requirement is a hard precondition
// of the FFT engine: it is rejected here rather than silently padded.
func (c *Config) Validate() error {
	if c.Audio.SampleRate < MinSampleRate || c.Audio.SampleRate > MaxSampleRate {
		return fmt.Errorf("config: sample rate %.0f outside [%d, %d] Hz",
			c.Audio.SampleRate, MinSampleRate, MaxSampleRate)
	}
	if c.Audio.FramesPerBuffer <= 0 || c.Audio.FramesPerBuffer > MaxBufferFrames {
		return fmt.Errorf("config: frames per buffer %d outside (0, %d]",
			c.Audio.FramesPerBuffer, MaxBufferFrames)
	}
	if !bitint.IsPowerOfTwo(c.Audio.FramesPerBuffer) {
		return fmt.Errorf("config: frames per buffer must be a power of two, got %d (next is %d)",
			c.Audio.FramesPerBuffer, bitint.NextPowerOfTwo(c.Audio.FramesPerBuffer))
	}
	if c.Audio.DeviceID < MinDeviceID {
		return fmt.Errorf("config: invalid device id %d", c.Audio.DeviceID)
	}
	if !c.Display.Fullscreen && (c.Display.Width <= 0 || c.Display.Height <= 0) {
		return fmt.Errorf("config: windowed mode needs positive dimensions, got %dx%d",
			c.Display.Width, c.Display.Height)
	}
	if c.Transport.WebSocketEnabled && c.Transport.WebSocketAddr == "" {
		return fmt.Errorf("config: transport.websocket_addr must be set when the websocket transport is enabled")
	}
	return nil
}
