// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load builds the configuration: defaults, then an optional YAML file,
// then environment overrides, then validation. If path is empty the
// default location ("config.yaml") is tried; a missing default file is
// not an error, an explicitly named missing file is.
func Load(path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides layers FFTVIZ_* environment variables over the
// loaded configuration. Unparseable values are ignored.
func (c *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("FFTVIZ_LOG_LEVEL"); ok {
		c.LogLevel = val
	}
	if val, ok := os.LookupEnv("FFTVIZ_DEVICE_ID"); ok {
		if id, err := strconv.Atoi(val); err == nil {
			c.Audio.DeviceID = id
		}
	}
	if val, ok := os.LookupEnv("FFTVIZ_SAMPLE_RATE"); ok {
		if rate, err := strconv.ParseFloat(val, 64); err == nil {
			c.Audio.SampleRate = rate
		}
	}
	if val, ok := os.LookupEnv("FFTVIZ_FULLSCREEN"); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			c.Display.Fullscreen = b
		}
	}
	if val, ok := os.LookupEnv("FFTVIZ_WS_ENABLED"); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			c.Transport.WebSocketEnabled = b
		}
	}
	if val, ok := os.LookupEnv("FFTVIZ_WS_ADDR"); ok {
		c.Transport.WebSocketAddr = val
	}
}
