package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/saskaZs/fft-visualization/cmd"
	"github.com/saskaZs/fft-visualization/internal/analysis"
	"github.com/saskaZs/fft-visualization/internal/audio"
	"github.com/saskaZs/fft-visualization/internal/config"
	"github.com/saskaZs/fft-visualization/internal/display"
	applog "github.com/saskaZs/fft-visualization/internal/log"
	"github.com/saskaZs/fft-visualization/internal/transport"
	"github.com/saskaZs/fft-visualization/pkg/build"
)

// main only reports the outcome; all resources are acquired and
// released inside run so its defers unwind on every exit path before
// the process terminates.
func main() {
	if err := run(); err != nil {
		applog.Fatalf("Main: %v", err)
	}
}

// run drives the visualizer. The flow is divided into three distinct
// phases:
//
// 1. Startup Phase (Cold Path):
//   - Initialize build information
//   - Load configuration (file, environment, flags)
//   - Initialize PortAudio
//   - Execute one-off commands if requested
//
// 2. Run Phase (Hot Path):
//   - Open the capture stream
//   - Run the ebiten game loop: one audio block analyzed, projected
//     and drawn per frame, capped at the display frame rate
//
// 3. Shutdown Phase (Cold Path):
//   - Finalize the recording if active
//   - Close the capture stream and transports
func run() error {
	// ==================== STARTUP PHASE (Cold Path) ====================

	build.Initialize()

	// Config file path comes from the environment so flags stay free
	// for runtime settings.
	cfg, err := config.Load(os.Getenv("FFTVIZ_CONFIG"))
	if err != nil {
		return err
	}

	if err := cmd.ParseArgs(cfg); err != nil {
		return err
	}

	if level, ok := applog.ParseLevel(cfg.LogLevel); ok {
		applog.SetLevel(level)
	} else {
		applog.Warnf("Main: unknown log level %q, keeping %s", cfg.LogLevel, applog.GetLevel())
	}

	if err := audio.Initialize(); err != nil {
		return err
	}
	defer audio.Terminate()

	// One-off commands run without the capture stream.
	if cfg.Command == "list" {
		return audio.ListDevices()
	}

	// ==================== RUN PHASE (Hot Path) ====================

	engine, err := audio.NewEngine(cfg)
	if err != nil {
		return err
	}
	if err := engine.Start(); err != nil {
		return err
	}
	defer func() {
		if err := engine.Close(); err != nil {
			applog.Errorf("Main: error closing audio engine: %v", err)
		}
	}()

	analyzer, err := analysis.NewAnalyzer(cfg.Audio.FramesPerBuffer)
	if err != nil {
		return err
	}

	width, height := cfg.Display.Width, cfg.Display.Height
	if cfg.Display.Fullscreen {
		width, height = ebiten.Monitor().Size()
	}

	app := display.NewApp(engine, analyzer, width, height)

	if cfg.Transport.WebSocketEnabled {
		ws := transport.NewWebSocketTransport(cfg.Transport.WebSocketAddr)
		defer ws.Close()
		app.SetTransport(ws)
	} else if applog.GetLevel() == applog.LevelDebug {
		app.SetTransport(transport.NewLoggingTransport())
	}

	if cfg.Recording.Enabled {
		recorder, err := audio.NewRecorder(cfg.Recording.OutputFile,
			int(cfg.Audio.SampleRate), config.DefaultChannels, cfg.Audio.FramesPerBuffer)
		if err != nil {
			return err
		}
		defer func() {
			if err := recorder.Close(); err != nil {
				applog.Errorf("Main: error finalizing recording: %v", err)
				return
			}
			fmt.Printf("Recording saved to: %s\n", cfg.Recording.OutputFile)
		}()
		app.SetSink(recorder)
	}

	ebiten.SetWindowTitle(build.GetBuildFlags().Name)
	ebiten.SetWindowSize(width, height)
	ebiten.SetFullscreen(cfg.Display.Fullscreen)
	ebiten.SetTPS(config.DefaultFrameRate)
	// Trails need the previous frame intact; the run loop fades it
	// with a translucent wash instead of clearing.
	ebiten.SetScreenClearedEveryFrame(false)

	applog.Infof("Main: visualizer running at %dx%d, Escape to quit", width, height)

	// ==================== SHUTDOWN PHASE (Cold Path) ====================
	// The deferred cleanup above closes the recorder, transports and
	// capture stream in reverse construction order when RunGame returns.

	return ebiten.RunGame(app)
}
