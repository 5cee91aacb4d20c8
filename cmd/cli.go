package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/saskaZs/fft-visualization/internal/config"
	"github.com/saskaZs/fft-visualization/pkg/build"
)

// ParseArgs binds command line flags on top of the given configuration.
// Flag defaults come from the loaded config, so file and environment
// values show up in --help and flags override both.
func ParseArgs(cfg *config.Config) error {
	buildInfo := build.GetBuildFlags()

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         buildInfo.Description,
		Version:       buildInfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}

	// Display help message
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available audio devices",
		Run: func(cmd *cobra.Command, args []string) {
			cfg.Command = "list"
		},
	}
	rootCmd.AddCommand(listCmd)

	windowed := !cfg.Display.Fullscreen

	// Audio Device Configuration
	rootCmd.PersistentFlags().IntVarP(&cfg.Audio.DeviceID, "device", "d", cfg.Audio.DeviceID,
		"Specify input device ID. Use 'list' command to see available devices.")
	rootCmd.PersistentFlags().Float64VarP(&cfg.Audio.SampleRate, "sample-rate", "s", cfg.Audio.SampleRate,
		"Sample rate, measured in Hertz (Hz)")
	rootCmd.PersistentFlags().IntVarP(&cfg.Audio.FramesPerBuffer, "frames-per-buffer", "b", cfg.Audio.FramesPerBuffer,
		"The number of frames per analysis block (must be a power of two)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Audio.LowLatency, "low-latency", "l", cfg.Audio.LowLatency,
		"Use low latency mode for real-time processing")

	// Display Configuration
	rootCmd.PersistentFlags().BoolVarP(&windowed, "windowed", "w", windowed,
		"Run in a window instead of fullscreen")
	rootCmd.PersistentFlags().IntVar(&cfg.Display.Width, "width", cfg.Display.Width,
		"Window width in windowed mode")
	rootCmd.PersistentFlags().IntVar(&cfg.Display.Height, "height", cfg.Display.Height,
		"Window height in windowed mode")

	// Recording Configuration
	rootCmd.PersistentFlags().BoolVarP(&cfg.Recording.Enabled, "record", "r", cfg.Recording.Enabled,
		"Record captured audio to a WAV file")
	rootCmd.PersistentFlags().StringVarP(&cfg.Recording.OutputFile, "output", "o", cfg.Recording.OutputFile,
		"Output file name. Default is recording-MM-DD-YYYY-HHMMSS.wav")

	// Transport Configuration
	rootCmd.PersistentFlags().BoolVar(&cfg.Transport.WebSocketEnabled, "ws", cfg.Transport.WebSocketEnabled,
		"Broadcast the magnitude spectrum over a WebSocket endpoint")
	rootCmd.PersistentFlags().StringVar(&cfg.Transport.WebSocketAddr, "ws-addr", cfg.Transport.WebSocketAddr,
		"WebSocket listen address")

	// Debug Configuration
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel,
		"Log level: debug, info, warn, error")

	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return err
	}

	cfg.Display.Fullscreen = !windowed

	if cfg.Recording.Enabled && cfg.Recording.OutputFile == "" {
		cfg.Recording.OutputFile = "recording-" +
			time.Now().UTC().Format("02-01-2006-150405") + ".wav"
	}

	return cfg.Validate()
}
