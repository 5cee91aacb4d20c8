package utils

import "math"

// MockTransport implements the transport.Transport interface for
// testing. It records every frame it is handed instead of transmitting.
type MockTransport struct {
	Frames [][]float64
	Closed bool
}

// Send stores a copy of the magnitude frame for later inspection.
func (m *MockTransport) Send(magnitudes []float64) error {
	frame := make([]float64, len(magnitudes))
	copy(frame, magnitudes)
	m.Frames = append(m.Frames, frame)
	return nil
}

// Close marks the transport closed.
func (m *MockTransport) Close() error {
	m.Closed = true
	return nil
}

// GenerateSineBlock returns a block of int16 samples containing a single
// sine at the given frequency. Amplitude is a fraction of full scale.
func GenerateSineBlock(size int, sampleRate, frequency, amplitude float64) []int16 {
	block := make([]int16, size)
	for i := range block {
		tm := float64(i) / sampleRate
		block[i] = int16(math.Sin(2*math.Pi*frequency*tm) * amplitude * math.MaxInt16)
	}
	return block
}

// GenerateComplexBlock returns a block with a 440Hz fundamental plus two
// harmonics, a rough stand-in for musical content.
func GenerateComplexBlock(size int, sampleRate float64) []int16 {
	block := make([]int16, size)
	for i := range block {
		tm := float64(i) / sampleRate
		signal := math.Sin(2*math.Pi*440*tm)*0.5 +
			math.Sin(2*math.Pi*880*tm)*0.3 +
			math.Sin(2*math.Pi*1320*tm)*0.2
		block[i] = int16(signal * math.MaxInt16 * 0.9)
	}
	return block
}

// FindPeakBin returns the index of the largest magnitude in
// [startBin, endBin]. Out-of-range bounds are clamped.
func FindPeakBin(magnitudes []float64, startBin, endBin int) int {
	if len(magnitudes) == 0 {
		return 0
	}

	if startBin < 0 {
		startBin = 0
	}
	if endBin >= len(magnitudes) {
		endBin = len(magnitudes) - 1
	}

	peakBin := startBin
	peakValue := magnitudes[startBin]

	for bin := startBin + 1; bin <= endBin; bin++ {
		if magnitudes[bin] > peakValue {
			peakValue = magnitudes[bin]
			peakBin = bin
		}
	}

	return peakBin
}
