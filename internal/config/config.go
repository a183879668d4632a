// Package config loads viewer settings from a YAML file and provides
// default values when no file is present.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"mdna-viewer/internal/algorithms"
	"mdna-viewer/internal/core"
	"mdna-viewer/internal/layers"
	"mdna-viewer/internal/viewport"
)

// Decoder names accepted in the loader section
const (
	DecoderNative = "native"
	DecoderOpenCV = "opencv"
)

// Config represents the viewer settings loaded from YAML
type Config struct {
	Viewer struct {
		// ZoomFactor is the scale change per wheel step or zoom button press
		ZoomFactor float64 `yaml:"zoomFactor"`

		MinScale float64 `yaml:"minScale"`
		MaxScale float64 `yaml:"maxScale"`

		// Coupled starts the panes with a shared zoom state
		Coupled bool `yaml:"coupled"`

		// DefaultWindow is "full" or "auto"
		DefaultWindow string `yaml:"defaultWindow"`
	} `yaml:"viewer"`

	Channels struct {
		Cy3Color string `yaml:"cy3Color"`
		Cy5Color string `yaml:"cy5Color"`
	} `yaml:"channels"`

	Loader struct {
		// Decoder is "native" (pure Go) or "opencv"
		Decoder string `yaml:"decoder"`
	} `yaml:"loader"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Viewer.ZoomFactor = viewport.DefaultZoomFactor
	cfg.Viewer.MinScale = viewport.DefaultMinScale
	cfg.Viewer.MaxScale = viewport.DefaultMaxScale
	cfg.Viewer.Coupled = true
	cfg.Viewer.DefaultWindow = string(layers.WindowFull)

	cfg.Channels.Cy3Color = "#00ff00"
	cfg.Channels.Cy5Color = "#ff0000"

	cfg.Loader.Decoder = DecoderNative

	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return cfg, nil
}

// Validate checks every section
func (c *Config) Validate() error {
	if err := c.Limits().Validate(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}

	switch layers.WindowMode(c.Viewer.DefaultWindow) {
	case layers.WindowFull, layers.WindowAuto:
	default:
		return fmt.Errorf("viewer: unknown default window %q", c.Viewer.DefaultWindow)
	}

	if _, err := c.Ramps(); err != nil {
		return err
	}

	switch c.Loader.Decoder {
	case DecoderNative, DecoderOpenCV:
	default:
		return fmt.Errorf("loader: unknown decoder %q", c.Loader.Decoder)
	}

	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging: unknown format %q", c.Logging.Format)
	}

	return nil
}

// Limits returns the zoom limits of the viewer section
func (c *Config) Limits() viewport.Limits {
	return viewport.Limits{
		ZoomFactor: c.Viewer.ZoomFactor,
		MinScale:   c.Viewer.MinScale,
		MaxScale:   c.Viewer.MaxScale,
	}
}

// WindowMode returns the initial contrast window mode
func (c *Config) WindowMode() layers.WindowMode {
	return layers.WindowMode(c.Viewer.DefaultWindow)
}

// Ramps parses the channel colours
func (c *Config) Ramps() (map[core.Channel]algorithms.Ramp, error) {
	ramps := make(map[core.Channel]algorithms.Ramp, 2)
	for ch, hex := range map[core.Channel]string{
		core.Cy3: c.Channels.Cy3Color,
		core.Cy5: c.Channels.Cy5Color,
	} {
		col, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("channels: %s colour %q: %w", ch, hex, err)
		}
		r, g, b := col.Clamped().RGB255()
		ramps[ch] = algorithms.Ramp{R: r, G: g, B: b}
	}
	return ramps, nil
}

// LogLevel returns the parsed logging level, falling back to info
func (c *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
