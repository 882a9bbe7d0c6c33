// Package config loads opentell's configuration from (highest to lowest
// priority): command-line flags, OPENTELL_* environment variables, the
// project config at ./.opentell/config.json, the home config at
// ~/.opentell/config.json, and built-in defaults.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds opentell's recognized settings, per spec.md §6.
type Config struct {
	AnthropicAPIKey     string  `json:"anthropic_api_key"`
	ClassifierModel     string  `json:"classifier_model"`
	SynthesisModel      string  `json:"synthesis_model"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	MaxLearnings        int     `json:"max_learnings"`
	Paused              bool    `json:"paused"`
}

const (
	defaultClassifierModel     = "claude-3-5-haiku-latest"
	defaultSynthesisModel      = "claude-3-5-sonnet-latest"
	defaultConfidenceThreshold = 0.45
	defaultMaxLearnings        = 100

	// StateDirName is the per-user state directory opentell owns.
	StateDirName = ".opentell"

	// ConfigFileName is the JSON config file's name within the state directory.
	ConfigFileName = "config.json"
)

// Default returns opentell's built-in configuration.
func Default() *Config {
	return &Config{
		ClassifierModel:     defaultClassifierModel,
		SynthesisModel:      defaultSynthesisModel,
		ConfidenceThreshold: defaultConfidenceThreshold,
		MaxLearnings:        defaultMaxLearnings,
		Paused:              false,
	}
}

// HomeDir returns the per-user state directory root (~/.opentell), or ""
// if the home directory cannot be resolved.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, StateDirName)
}

// homeConfigPath returns ~/.opentell/config.json.
func homeConfigPath() string {
	dir := HomeDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ConfigFileName)
}

// projectConfigPath returns ./.opentell/config.json, honoring an
// OPENTELL_CONFIG override.
func projectConfigPath() string {
	if override := os.Getenv("OPENTELL_CONFIG"); override != "" {
		return override
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, StateDirName, ConfigFileName)
}

// Load resolves configuration with precedence flags > env > project > home
// > defaults. flagOverrides may be nil.
func Load(flagOverrides *Config) *Config {
	cfg := Default()

	if home, err := loadFromPath(homeConfigPath()); err == nil && home != nil {
		merge(cfg, home)
	}
	if project, err := loadFromPath(projectConfigPath()); err == nil && project != nil {
		merge(cfg, project)
	}

	applyEnv(cfg)

	if flagOverrides != nil {
		merge(cfg, flagOverrides)
	}

	return cfg
}

// loadFromPath loads config from a JSON file. Missing files and parse
// failures both yield (nil, err) — callers treat either as "no override".
func loadFromPath(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path as pretty-printed JSON, creating parent
// directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// applyEnv applies OPENTELL_* environment overrides in place.
func applyEnv(cfg *Config) {
	if v := os.Getenv("OPENTELL_ANTHROPIC_API_KEY"); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := os.Getenv("OPENTELL_CLASSIFIER_MODEL"); v != "" {
		cfg.ClassifierModel = v
	}
	if v := os.Getenv("OPENTELL_SYNTHESIS_MODEL"); v != "" {
		cfg.SynthesisModel = v
	}
	if v := os.Getenv("OPENTELL_CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.ConfidenceThreshold = f
		}
	}
	if v := os.Getenv("OPENTELL_MAX_LEARNINGS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxLearnings = n
		}
	}
	if v := os.Getenv("OPENTELL_PAUSED"); v == "true" || v == "1" {
		cfg.Paused = true
	}
}

// mergeStr overwrites dst with src when src is non-empty.
func mergeStr(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// mergeFloat overwrites dst with src when src is non-zero.
func mergeFloat(dst *float64, src float64) {
	if src != 0 {
		*dst = src
	}
}

// mergeInt overwrites dst with src when src is non-zero.
func mergeInt(dst *int, src int) {
	if src != 0 {
		*dst = src
	}
}

// merge layers src on top of dst, field by field, so a partially specified
// config never blanks out a value supplied by a lower-priority layer.
func merge(dst, src *Config) {
	mergeStr(&dst.AnthropicAPIKey, src.AnthropicAPIKey)
	mergeStr(&dst.ClassifierModel, src.ClassifierModel)
	mergeStr(&dst.SynthesisModel, src.SynthesisModel)
	mergeFloat(&dst.ConfidenceThreshold, src.ConfidenceThreshold)
	mergeInt(&dst.MaxLearnings, src.MaxLearnings)
	if src.Paused {
		dst.Paused = true
	}
}
