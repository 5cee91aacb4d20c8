package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Recorder writes captured audio blocks to a 16-bit PCM WAV file.
type Recorder struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
}

// NewRecorder creates a WAV recorder writing to the given path. The
// frames argument sizes the conversion buffer and should match the
// capture block length.
func NewRecorder(path string, sampleRate, channels, frames int) (*Recorder, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create recording file: %w", err)
	}

	return &Recorder{
		file:    file,
		encoder: wav.NewEncoder(file, sampleRate, 16, channels, 1),
		buf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: channels,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: 16,
			Data:           make([]int, frames*channels),
		},
	}, nil
}

// Write appends one captured block to the WAV file.
func (r *Recorder) Write(block []int16) error {
	if len(block) > len(r.buf.Data) {
		block = block[:len(r.buf.Data)]
	}
	r.buf.Data = r.buf.Data[:len(block)]
	for i, s := range block {
		r.buf.Data[i] = int(s)
	}
	return r.encoder.Write(r.buf)
}

// Close finalizes the WAV header and closes the underlying file.
func (r *Recorder) Close() error {
	if err := r.encoder.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}
