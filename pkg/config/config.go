// Package config loads tool configuration with priority
// defaults < file < flags. The flag layer is applied by the command
// package on top of the loaded values.
package config

import (
	"fmt"
	"os"

	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/match"
	"github.com/VenkyGandrothu/Circular-Sleeves/pkg/place"
)

// DefaultFamily is the sleeve cutout family placed when the
// configuration does not name another one.
const DefaultFamily = "ADR-10D SLEEVE CUTOUT-"

// Config holds all placement settings.
type Config struct {
	Family  string        `yaml:"family"`
	Rules   string        `yaml:"rules"` // path to a rule script, empty for none
	Match   MatchConfig   `yaml:"match"`
	Logging LoggingConfig `yaml:"logging"`
}

// MatchConfig holds the face-search knobs. Lengths are feet except where
// the field name says otherwise.
type MatchConfig struct {
	BaseToleranceFt     float64 `yaml:"base_tolerance_ft"`
	DiameterThresholdFt float64 `yaml:"diameter_threshold_ft"`
	ClearanceMM         float64 `yaml:"clearance_mm"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock values.
func Default() *Config {
	return &Config{
		Family: DefaultFamily,
		Match: MatchConfig{
			BaseToleranceFt:     match.DefaultBaseTolerance,
			DiameterThresholdFt: match.DiameterThreshold,
			ClearanceMM:         place.DefaultClearanceMM,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration for values the placer cannot work
// with.
func (c *Config) Validate() error {
	if c.Family == "" {
		return fmt.Errorf("config: family name is empty")
	}
	if c.Match.BaseToleranceFt <= 0 {
		return fmt.Errorf("config: base tolerance %g ft must be positive", c.Match.BaseToleranceFt)
	}
	if c.Match.DiameterThresholdFt <= 0 {
		return fmt.Errorf("config: diameter threshold %g ft must be positive", c.Match.DiameterThresholdFt)
	}
	if c.Match.ClearanceMM < 0 {
		return fmt.Errorf("config: clearance %g mm must not be negative", c.Match.ClearanceMM)
	}
	return nil
}

// PlaceOptions converts the configuration into placement options,
// reading the rule script when one is configured.
func (c *Config) PlaceOptions() (place.Options, error) {
	script, err := c.RuleScript()
	if err != nil {
		return place.Options{}, err
	}
	return place.Options{
		FamilyName:        c.Family,
		BaseTolerance:     c.Match.BaseToleranceFt,
		DiameterThreshold: c.Match.DiameterThresholdFt,
		ClearanceMM:       c.Match.ClearanceMM,
		RuleScript:        script,
	}, nil
}

// RuleScript reads the configured rule script source. An empty path
// means no rules.
func (c *Config) RuleScript() (string, error) {
	if c.Rules == "" {
		return "", nil
	}
	data, err := os.ReadFile(c.Rules)
	if err != nil {
		return "", fmt.Errorf("config: rule script: %w", err)
	}
	return string(data), nil
}
