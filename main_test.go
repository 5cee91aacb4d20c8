package main

import (
	"os"
	"path/filepath"
	"testing"
)

// Startup failures must surface as returned errors so run's defers can
// unwind acquired resources; only main's final Fatalf may exit.

func TestRunReturnsErrorForMissingConfigFile(t *testing.T) {
	t.Setenv("FFTVIZ_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	origArgs := os.Args
	os.Args = []string{"fft-visualization"}
	defer func() { os.Args = origArgs }()

	if err := run(); err == nil {
		t.Fatal("run() should return an error for an explicitly named missing config file")
	}
}

func TestRunReturnsErrorForUnknownFlag(t *testing.T) {
	t.Setenv("FFTVIZ_CONFIG", "")

	origArgs := os.Args
	os.Args = []string{"fft-visualization", "--no-such-flag"}
	defer func() { os.Args = origArgs }()

	if err := run(); err == nil {
		t.Fatal("run() should return an error for an unknown flag")
	}
}

func TestRunReturnsErrorForInvalidBufferSize(t *testing.T) {
	t.Setenv("FFTVIZ_CONFIG", "")

	origArgs := os.Args
	os.Args = []string{"fft-visualization", "--frames-per-buffer", "500"}
	defer func() { os.Args = origArgs }()

	if err := run(); err == nil {
		t.Fatal("run() should return an error for a non-power-of-two buffer size")
	}
}
