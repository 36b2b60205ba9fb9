// Package config loads reconstruction settings from JSON.
//
// Every field is optional; an absent field keeps the library default. The
// same schema is accepted by the CLI's -config flag.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/katalvlaran/kvis/merge"
	"github.com/katalvlaran/kvis/oracle"
	"github.com/katalvlaran/kvis/recon"
)

// DefaultConfigPath is the checked-in file holding the library defaults.
const DefaultConfigPath = "config/kvis.defaults.json"

// maxFileSize caps configuration files at 1 MiB.
const maxFileSize = 1 << 20

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config mirrors the recon options.
type Config struct {
	// Sweep
	AngleCount *int      `json:"angle_count,omitempty"`
	Angles     []float64 `json:"angles,omitempty"`
	HalfTurn   *bool     `json:"half_turn,omitempty"`
	Confidence *float64  `json:"confidence,omitempty"`
	// AreaPerWall is the floor area assumed per wall.
	AreaPerWall *float64 `json:"area_per_wall,omitempty"`
	Pitch       *float64 `json:"pitch,omitempty"`

	// Localization and merging, in multiples of the pitch where noted
	MergeMode       *string  `json:"merge_mode,omitempty"` // "union-find" or "single-pass"
	MergeFactor     *float64 `json:"merge_factor,omitempty"`
	MatchFactor     *float64 `json:"match_factor,omitempty"`
	ProbeFactor     *float64 `json:"probe_factor,omitempty"`
	BoundsTolerance *float64 `json:"bounds_tolerance,omitempty"`
	ChainPruning    *bool    `json:"chain_pruning,omitempty"`
	LabelPruning    *bool    `json:"label_pruning,omitempty"`

	// Measurement rules
	IncludeEndpointTouches *bool `json:"include_endpoint_touches,omitempty"`
	IncludeCollinear       *bool `json:"include_collinear,omitempty"`
	StrictMeasurements     *bool `json:"strict_measurements,omitempty"`

	// Execution
	Workers  *int  `json:"workers,omitempty"`
	Overlays *bool `json:"overlays,omitempty"`
	Verbose  *bool `json:"verbose,omitempty"`
}

// Load reads and validates a JSON configuration file.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates a JSON configuration.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every set field.
func (c *Config) Validate() error {
	if c.AngleCount != nil && *c.AngleCount < 3 {
		return invalid("angle_count must be at least 3, got %d", *c.AngleCount)
	}
	if c.Angles != nil {
		if len(c.Angles) < 3 {
			return invalid("angles must list at least 3 values, got %d", len(c.Angles))
		}
		for _, a := range c.Angles {
			if !(a > 0 && a < math.Pi) {
				return invalid("angle %g outside (0, π)", a)
			}
		}
	}
	if c.Confidence != nil && !(*c.Confidence > 0 && *c.Confidence < 1) {
		return invalid("confidence must lie in (0, 1), got %g", *c.Confidence)
	}
	for name, v := range map[string]*float64{
		"area_per_wall": c.AreaPerWall,
		"pitch":         c.Pitch,
		"merge_factor":  c.MergeFactor,
		"match_factor":  c.MatchFactor,
		"probe_factor":  c.ProbeFactor,
	} {
		if v != nil && !(*v > 0 && !math.IsInf(*v, 1)) {
			return invalid("%s must be positive and finite, got %g", name, *v)
		}
	}
	if c.BoundsTolerance != nil && !(*c.BoundsTolerance >= 0 && !math.IsInf(*c.BoundsTolerance, 1)) {
		return invalid("bounds_tolerance must be non-negative and finite, got %g", *c.BoundsTolerance)
	}
	if c.MergeMode != nil {
		if _, err := merge.ParseMode(*c.MergeMode); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Options converts a validated configuration into recon options.
func (c *Config) Options() []recon.Option {
	var opts []recon.Option
	if c.AngleCount != nil {
		opts = append(opts, recon.WithAngleCount(*c.AngleCount))
	}
	if c.Angles != nil {
		opts = append(opts, recon.WithAngles(c.Angles...))
	}
	if c.HalfTurn != nil {
		opts = append(opts, recon.WithHalfTurn(*c.HalfTurn))
	}
	if c.Confidence != nil {
		opts = append(opts, recon.WithConfidence(*c.Confidence))
	}
	if c.AreaPerWall != nil {
		opts = append(opts, recon.WithAreaPerWall(*c.AreaPerWall))
	}
	if c.Pitch != nil {
		opts = append(opts, recon.WithPitch(*c.Pitch))
	}
	if c.MergeMode != nil {
		m, _ := merge.ParseMode(*c.MergeMode)
		opts = append(opts, recon.WithMergeMode(m))
	}
	if c.MergeFactor != nil {
		opts = append(opts, recon.WithMergeFactor(*c.MergeFactor))
	}
	if c.MatchFactor != nil {
		opts = append(opts, recon.WithMatchFactor(*c.MatchFactor))
	}
	if c.ProbeFactor != nil {
		opts = append(opts, recon.WithProbeFactor(*c.ProbeFactor))
	}
	if c.BoundsTolerance != nil {
		opts = append(opts, recon.WithBoundsTolerance(*c.BoundsTolerance))
	}
	if c.ChainPruning != nil {
		opts = append(opts, recon.WithChainPruning(*c.ChainPruning))
	}
	if c.LabelPruning != nil {
		opts = append(opts, recon.WithLabelPruning(*c.LabelPruning))
	}
	if c.IncludeEndpointTouches != nil || c.IncludeCollinear != nil {
		opts = append(opts, recon.WithCountingRules(c.CountingRules()))
	}
	if c.StrictMeasurements != nil {
		opts = append(opts, recon.WithStrictMeasurements(*c.StrictMeasurements))
	}
	if c.Workers != nil {
		opts = append(opts, recon.WithWorkers(*c.Workers))
	}
	if c.Overlays != nil {
		opts = append(opts, recon.WithOverlays(*c.Overlays))
	}
	if c.Verbose != nil {
		opts = append(opts, recon.WithVerbose(*c.Verbose))
	}
	return opts
}

// CountingRules returns the oracle rules with the configured overrides.
func (c *Config) CountingRules() oracle.Options {
	rules := oracle.DefaultOptions()
	if c.IncludeEndpointTouches != nil {
		rules.IncludeEndpointTouches = *c.IncludeEndpointTouches
	}
	if c.IncludeCollinear != nil {
		rules.IncludeCollinear = *c.IncludeCollinear
	}
	return rules
}

func invalid(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, a...))
}
