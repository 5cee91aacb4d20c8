package transport

import (
	applog "github.com/saskaZs/fft-visualization/internal/log"
)

// logEvery throttles spectrum summaries to roughly once per second at
// the display frame rate.
const logEvery = 60

// LoggingTransport implements the Transport interface by logging a
// summary of each spectrum frame. Useful when debugging the pipeline
// without a WebSocket client attached.
type LoggingTransport struct {
	frames int
}

// NewLoggingTransport creates a new LoggingTransport instance.
func NewLoggingTransport() *LoggingTransport {
	applog.Debugf("Transport: using LoggingTransport")
	return &LoggingTransport{}
}

// Send logs peak and average magnitude of the frame, throttled so the
// log stays readable at full frame rate.
func (lt *LoggingTransport) Send(magnitudes []float64) error {
	lt.frames++
	if lt.frames%logEvery != 0 || len(magnitudes) == 0 {
		return nil
	}

	peak, peakBin, sum := magnitudes[0], 0, 0.0
	for i, m := range magnitudes {
		sum += m
		if m > peak {
			peak, peakBin = m, i
		}
	}
	applog.Debugf("Transport: frame %d, peak %.1f dB at bin %d, avg %.1f dB",
		lt.frames, peak, peakBin, sum/float64(len(magnitudes)))
	return nil
}

// Close is a no-op for LoggingTransport.
func (lt *LoggingTransport) Close() error {
	return nil
}

var _ Transport = (*LoggingTransport)(nil)
