// Package config loads the scouting station configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/Nydauron/reefscout/export"
	"github.com/Nydauron/reefscout/stages"
)

// Config is the complete station configuration.
type Config struct {
	// Catalog is a path to a field catalog; empty uses the built-in one.
	Catalog string `yaml:"catalog"`
	// Strategy is the sequence encoding: "aggregated" or "verbatim".
	Strategy string `yaml:"strategy"`
	// Undo is the undo policy: "longest" or "recent".
	Undo string `yaml:"undo"`
	// Schedule is an optional CSV or HTML match schedule.
	Schedule string `yaml:"schedule"`

	Field FieldConfig `yaml:"field"`
	QR    QRConfig    `yaml:"qr"`
	Log   LogConfig   `yaml:"log"`
}

// FieldConfig sizes the field image and the reef control.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Rings overrides the reef ring radii, hub first. Empty derives them from
	// ReefWidth.
	Rings     []float64 `yaml:"rings"`
	ReefWidth float64   `yaml:"reefWidth"`
}

type QRConfig struct {
	Size     int    `yaml:"size"`
	Recovery string `yaml:"recovery"`
}

type LogConfig struct {
	// File receives JSON log lines. Empty disables logging for the wizard.
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Strategy: export.Aggregated.String(),
		Undo:     stages.UndoLongest.String(),
		Field: FieldConfig{
			Width:     64,
			Height:    16,
			ReefWidth: 24,
		},
		QR: QRConfig{
			Size:     512,
			Recovery: "medium",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := export.ParseStrategy(c.Strategy); err != nil {
		errs = append(errs, err)
	}
	if _, err := stages.ParseUndoPolicy(c.Undo); err != nil {
		errs = append(errs, err)
	}
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field size %vx%v must be positive", c.Field.Width, c.Field.Height))
	}
	if _, err := c.Rings(); err != nil {
		errs = append(errs, err)
	}
	if _, err := export.ParseRecoveryLevel(c.QR.Recovery); err != nil {
		errs = append(errs, err)
	}
	if c.QR.Size <= 0 {
		errs = append(errs, fmt.Errorf("qr.size %d must be positive", c.QR.Size))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

func (c *Config) Image() stages.FieldImage {
	return stages.FieldImage{Width: c.Field.Width, Height: c.Field.Height}
}

func (c *Config) Rings() (stages.RingSelector, error) {
	if len(c.Field.Rings) == 0 {
		if c.Field.ReefWidth <= 0 {
			return stages.RingSelector{}, fmt.Errorf("field.reefWidth %v must be positive", c.Field.ReefWidth)
		}
		return stages.DefaultRingSelector(c.Field.ReefWidth), nil
	}
	var rings stages.RingSelector
	if len(c.Field.Rings) != len(rings.Thresholds) {
		return rings, fmt.Errorf("field.rings needs %d radii, got %d", len(rings.Thresholds), len(c.Field.Rings))
	}
	copy(rings.Thresholds[:], c.Field.Rings)
	if err := rings.Validate(); err != nil {
		return rings, fmt.Errorf("field.rings: %w", err)
	}
	return rings, nil
}

func (c *Config) QRCode() (export.QR, error) {
	level, err := export.ParseRecoveryLevel(c.QR.Recovery)
	if err != nil {
		return export.QR{}, err
	}
	return export.QR{Level: level, Size: c.QR.Size}, nil
}

// Logger builds a JSON logger writing to the given paths, e.g. "stderr".
// With no paths it writes to Log.File, or nowhere when that is empty.
func (c *Config) Logger(paths ...string) (*zap.Logger, error) {
	if len(paths) == 0 {
		if c.Log.File == "" {
			return zap.NewNop(), nil
		}
		paths = []string{c.Log.File}
	}
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = paths
	config.ErrorOutputPaths = paths
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
