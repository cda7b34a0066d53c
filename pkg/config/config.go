// Package config loads the replay configuration from YAML.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Modes the replay can run in.
const (
	ModeMCP      = "mcp"
	ModeHeadless = "headless"
)

// PlaybackConfig tunes the replay timing.
type PlaybackConfig struct {
	TickIntervalMS int     `yaml:"tickIntervalMS" validate:"gt=0"`
	AnimationMS    int     `yaml:"animationMS" validate:"gte=0"`
	FrameRate      int     `yaml:"frameRate" validate:"gt=0,lte=240"`
	SeekWindowMS   int     `yaml:"seekWindowMS" validate:"gt=0"`
	RegionMeters   float64 `yaml:"regionMeters" validate:"gt=0"`
}

// Config is the application configuration.
type Config struct {
	// Data is the trip file to replay. Empty means the bundled trip.
	Data     string         `yaml:"data"`
	Mode     string         `yaml:"mode" validate:"oneof=mcp headless"`
	Listen   string         `yaml:"listen" validate:"omitempty,hostname_port"`
	Autoplay bool           `yaml:"autoplay"`
	TimeZone string         `yaml:"timeZone"`
	LogLevel string         `yaml:"logLevel" validate:"oneof=debug info warn error"`
	Playback PlaybackConfig `yaml:"playback" validate:"required"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mode:     ModeMCP,
		LogLevel: "info",
		Playback: PlaybackConfig{
			TickIntervalMS: 1000,
			AnimationMS:    1000,
			FrameRate:      60,
			SeekWindowMS:   200,
			RegionMeters:   500,
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and the time zone name.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Location returns the zone used for time labels. Empty means local time.
func (c Config) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// Level returns the slog level for LogLevel.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// TickInterval returns the playback tick interval.
func (p PlaybackConfig) TickInterval() time.Duration {
	return time.Duration(p.TickIntervalMS) * time.Millisecond
}

// Animation returns the marker animation duration.
func (p PlaybackConfig) Animation() time.Duration {
	return time.Duration(p.AnimationMS) * time.Millisecond
}

// FrameInterval returns the display frame interval.
func (p PlaybackConfig) FrameInterval() time.Duration {
	return time.Second / time.Duration(p.FrameRate)
}

// SeekWindow returns the slider throttle window.
func (p PlaybackConfig) SeekWindow() time.Duration {
	return time.Duration(p.SeekWindowMS) * time.Millisecond
}
