package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sigilgen/internal/anim"
	"github.com/san-kum/sigilgen/internal/render"
	"github.com/san-kum/sigilgen/internal/sigil"
)

const (
	DefaultSize       = render.DefaultSize
	DefaultFrames     = anim.DefaultTicks
	DefaultIntervalMS = 100
	DefaultOutput     = "sigil.png"
)

// Config is the on-disk yaml form of a session's settings.
type Config struct {
	Params  sigil.Params  `yaml:"params"`
	Canvas  CanvasConfig  `yaml:"canvas"`
	Animate AnimateConfig `yaml:"animate"`
	// Seed fixes the random layers; zero draws a fresh seed per run.
	Seed   int64  `yaml:"seed"`
	Output string `yaml:"output"`
}

type CanvasConfig struct {
	Size int `yaml:"size"`
}

type AnimateConfig struct {
	Frames     int `yaml:"frames"`
	IntervalMS int `yaml:"interval_ms"`
}

// DefaultConfig returns the settings used when no file or preset is given.
func DefaultConfig() *Config {
	return &Config{
		Params: sigil.DefaultParams(),
		Canvas: CanvasConfig{Size: DefaultSize},
		Animate: AnimateConfig{
			Frames:     DefaultFrames,
			IntervalMS: DefaultIntervalMS,
		},
		Output: DefaultOutput,
	}
}

// Load reads a yaml config from path. Keys missing from the file keep
// their DefaultConfig values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as yaml.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// AnimConfig converts the animation settings for the driver.
func (c *Config) AnimConfig() anim.Config {
	cfg := anim.Config{
		Ticks:    c.Animate.Frames,
		Interval: time.Duration(c.Animate.IntervalMS) * time.Millisecond,
	}
	if cfg.Ticks <= 0 {
		cfg.Ticks = DefaultFrames
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultIntervalMS * time.Millisecond
	}
	return cfg
}

// CanvasSize returns the surface edge, falling back to DefaultSize.
func (c *Config) CanvasSize() int {
	if c.Canvas.Size <= 0 {
		return DefaultSize
	}
	return c.Canvas.Size
}

// Validate checks the render parameters.
func (c *Config) Validate() error {
	return c.Params.Validate()
}
