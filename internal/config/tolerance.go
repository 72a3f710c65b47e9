// Package config loads analyzer tolerance settings from JSON files.
// Tolerances are deliberately not defaulted: a missing epsilon is a
// validation error, never a silent fallback, so two runs with the same
// config file always see the same tolerance regime.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mirrorfield/symmetry.report/internal/symmetry"
)

// ToleranceConfig mirrors the JSON schema for analyzer tolerances.
// Pointer fields distinguish "absent" from "zero" so validation can
// reject missing values explicitly.
type ToleranceConfig struct {
	// PointEpsilon is the coincidence distance, in input units.
	PointEpsilon *float64 `json:"point_epsilon,omitempty"`
	// AngleEpsilon is the axis-merge tolerance, in radians.
	AngleEpsilon *float64 `json:"angle_epsilon,omitempty"`
	// Workers bounds verification parallelism. Optional; zero or
	// absent runs serially.
	Workers *int `json:"workers,omitempty"`
}

// LoadToleranceConfig loads and validates a ToleranceConfig from a
// JSON file. The file must have a .json extension and be under the
// size cap.
func LoadToleranceConfig(path string) (*ToleranceConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &ToleranceConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if _, err := cfg.AnalyzerConfig(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// AnalyzerConfig converts the file schema into a validated
// symmetry.Config. Missing epsilons surface as *symmetry.ConfigError.
func (c *ToleranceConfig) AnalyzerConfig() (symmetry.Config, error) {
	out := symmetry.Config{}
	if c.PointEpsilon != nil {
		out.PointEpsilon = *c.PointEpsilon
	}
	if c.AngleEpsilon != nil {
		out.AngleEpsilon = *c.AngleEpsilon
	}
	if c.Workers != nil {
		out.Workers = *c.Workers
	}
	if err := out.Validate(); err != nil {
		return symmetry.Config{}, err
	}
	return out, nil
}
