// Package config holds the tunable thresholds for label verification.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds verification thresholds and classifier settings.
type Config struct {
	Verification  VerificationConfig  `yaml:"verification"`
	FieldOfVision FieldOfVisionConfig `yaml:"field_of_vision"`
	Boldness      BoldnessConfig      `yaml:"boldness"`
	Classifier    ClassifierConfig    `yaml:"classifier"`
}

type VerificationConfig struct {
	// Threshold is the minimum token coverage treated as a usable match.
	Threshold float64 `yaml:"threshold"`
}

type FieldOfVisionConfig struct {
	// MaxSpanRatio is the widest horizontal spread, as a fraction of image
	// width, that still counts as one field of vision.
	MaxSpanRatio float64 `yaml:"max_span_ratio"`
}

type BoldnessConfig struct {
	MinContrast        float64 `yaml:"min_contrast"`
	MinStrokeRatio     float64 `yaml:"min_stroke_ratio"`
	MinForegroundRatio float64 `yaml:"min_foreground_ratio"`
	// PeerScore is the minimum relative score against peer spans.
	PeerScore float64 `yaml:"peer_score"`
}

type ClassifierConfig struct {
	MinScore  float64 `yaml:"min_score"`
	AutoApply float64 `yaml:"auto_apply"`
}

// Default returns the built-in thresholds.
func Default() *Config {
	return &Config{
		Verification:  VerificationConfig{Threshold: 0.65},
		FieldOfVision: FieldOfVisionConfig{MaxSpanRatio: 0.4},
		Boldness: BoldnessConfig{
			MinContrast:        0.15,
			MinStrokeRatio:     3,
			MinForegroundRatio: 0.02,
			PeerScore:          1.1,
		},
		Classifier: ClassifierConfig{MinScore: 1.2, AutoApply: 0.6},
	}
}

// Load reads configuration from a YAML file.
// If the file doesn't exist, it returns the default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.Verification.Threshold <= 0 {
		cfg.Verification.Threshold = def.Verification.Threshold
	}
	if cfg.FieldOfVision.MaxSpanRatio <= 0 {
		cfg.FieldOfVision.MaxSpanRatio = def.FieldOfVision.MaxSpanRatio
	}
	if cfg.Boldness.MinContrast <= 0 {
		cfg.Boldness.MinContrast = def.Boldness.MinContrast
	}
	if cfg.Boldness.MinStrokeRatio <= 0 {
		cfg.Boldness.MinStrokeRatio = def.Boldness.MinStrokeRatio
	}
	if cfg.Boldness.MinForegroundRatio <= 0 {
		cfg.Boldness.MinForegroundRatio = def.Boldness.MinForegroundRatio
	}
	if cfg.Boldness.PeerScore <= 0 {
		cfg.Boldness.PeerScore = def.Boldness.PeerScore
	}
	if cfg.Classifier.MinScore <= 0 {
		cfg.Classifier.MinScore = def.Classifier.MinScore
	}
	if cfg.Classifier.AutoApply <= 0 {
		cfg.Classifier.AutoApply = def.Classifier.AutoApply
	}
}
