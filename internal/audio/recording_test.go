// SPDX-License-Identifier: MIT
package audio

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-audio/wav"
)

const (
	testSampleRate = 44100
	testFrameSize  = 512
)

var testRecordingDir string

func init() {
	var err error
	testRecordingDir, err = os.MkdirTemp("", "test_recording")
	if err != nil {
		panic("Failed to create temp dir for recording tests: " + err.Error())
	}
}

func TestRecorderWriteRoundTrip(t *testing.T) {
	filename := filepath.Join(testRecordingDir, "roundtrip.wav")

	rec, err := NewRecorder(filename, testSampleRate, 1, testFrameSize)
	if err != nil {
		t.Fatalf("Failed to create recorder: %v", err)
	}

	block := make([]int16, testFrameSize)
	for i := range block {
		block[i] = int16(1000 * math.Sin(2*math.Pi*440*float64(i)/testSampleRate))
	}

	if err := rec.Write(block); err != nil {
		t.Fatalf("Failed to write block: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Failed to close recorder: %v", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Failed to open recording: %v", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		t.Fatalf("Failed to decode recording: %v", err)
	}

	if decoder.SampleRate != testSampleRate {
		t.Errorf("Sample rate mismatch: got %d, want %d", decoder.SampleRate, testSampleRate)
	}
	if decoder.BitDepth != 16 {
		t.Errorf("Bit depth mismatch: got %d, want 16", decoder.BitDepth)
	}
	if decoder.NumChans != 1 {
		t.Errorf("Channel count mismatch: got %d, want 1", decoder.NumChans)
	}
	if len(buf.Data) != testFrameSize {
		t.Fatalf("Sample count mismatch: got %d, want %d", len(buf.Data), testFrameSize)
	}
	for i, want := range block {
		if buf.Data[i] != int(want) {
			t.Fatalf("Sample %d mismatch: got %d, want %d", i, buf.Data[i], want)
		}
	}

	os.Remove(filename)
}

func TestRecorderMultipleBlocks(t *testing.T) {
	filename := filepath.Join(testRecordingDir, "multi.wav")

	rec, err := NewRecorder(filename, testSampleRate, 1, testFrameSize)
	if err != nil {
		t.Fatalf("Failed to create recorder: %v", err)
	}

	block := make([]int16, testFrameSize)
	for i := 0; i < 4; i++ {
		if err := rec.Write(block); err != nil {
			t.Fatalf("Failed to write block %d: %v", i, err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Failed to close recorder: %v", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Failed to open recording: %v", err)
	}
	defer file.Close()

	buf, err := wav.NewDecoder(file).FullPCMBuffer()
	if err != nil {
		t.Fatalf("Failed to decode recording: %v", err)
	}
	if len(buf.Data) != 4*testFrameSize {
		t.Errorf("Sample count mismatch: got %d, want %d", len(buf.Data), 4*testFrameSize)
	}

	os.Remove(filename)
}

func TestRecorderShortBlock(t *testing.T) {
	filename := filepath.Join(testRecordingDir, "short.wav")

	rec, err := NewRecorder(filename, testSampleRate, 1, testFrameSize)
	if err != nil {
		t.Fatalf("Failed to create recorder: %v", err)
	}

	if err := rec.Write(make([]int16, testFrameSize/2)); err != nil {
		t.Fatalf("Failed to write short block: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Failed to close recorder: %v", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Failed to open recording: %v", err)
	}
	defer file.Close()

	buf, err := wav.NewDecoder(file).FullPCMBuffer()
	if err != nil {
		t.Fatalf("Failed to decode recording: %v", err)
	}
	if len(buf.Data) != testFrameSize/2 {
		t.Errorf("Sample count mismatch: got %d, want %d", len(buf.Data), testFrameSize/2)
	}

	os.Remove(filename)
}

func TestRecorderInvalidPath(t *testing.T) {
	_, err := NewRecorder("/nonexistent/path/file.wav", testSampleRate, 1, testFrameSize)
	if err == nil {
		t.Fatal("Expected error for invalid path")
	}
	if !strings.Contains(err.Error(), "failed to create recording file") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func BenchmarkRecorderWrite(b *testing.B) {
	filename := filepath.Join(testRecordingDir, "bench.wav")
	rec, err := NewRecorder(filename, testSampleRate, 1, testFrameSize)
	if err != nil {
		b.Fatalf("Failed to create recorder: %v", err)
	}
	defer func() {
		rec.Close()
		os.Remove(filename)
	}()

	block := make([]int16, testFrameSize)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if err := rec.Write(block); err != nil {
			b.Fatalf("Write failed: %v", err)
		}
	}
}
