// Package config holds the pubtopics configuration: processing limits,
// archive layout, topic-model defaults, and progress reporting knobs.
// Values come from defaults, an optional YAML file, then environment
// variables, in increasing priority. Command-line flags override all.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete pubtopics configuration.
type Config struct {
	Limits   LimitsConfig   `yaml:"limits"`
	Archive  ArchiveConfig  `yaml:"archive"`
	Model    ModelConfig    `yaml:"model"`
	Progress ProgressConfig `yaml:"progress"`
}

// LimitsConfig bounds the memory-resident corpus. The document cap is
// global across all input files, not per file.
type LimitsConfig struct {
	// MaxDocuments caps the document axis. Files past the cap are
	// skipped entirely.
	MaxDocuments int `yaml:"max_documents"`

	// MinWordLength drops tokens shorter than this many runes.
	MinWordLength int `yaml:"min_word_length"`

	// MaxMatrixCells caps the number of stored (word, document) cells.
	// Exceeding it fails the run with a capacity error instead of
	// letting the process die on allocation.
	MaxMatrixCells int `yaml:"max_matrix_cells"`
}

// ArchiveConfig describes the sharded abstract archive.
type ArchiveConfig struct {
	// Tag is the literal filename prefix embedded in archive files,
	// e.g. "PMID" for PMID1234567.txt.
	Tag string `yaml:"tag"`
}

// ModelConfig carries defaults handed to the external topic routine
// and the report renderer.
type ModelConfig struct {
	// Anchors is the number of topics to model.
	Anchors int `yaml:"anchors"`

	// TopicWords is the number of words reported per topic.
	TopicWords int `yaml:"topic_words"`

	// AnchorThreshold is the minimum share of document occurrences for
	// a word to be an anchor candidate.
	AnchorThreshold float64 `yaml:"anchor_threshold"`
}

// ProgressConfig controls observational progress reporting. It never
// affects processing.
type ProgressConfig struct {
	// HeartbeatInterval is the minimum time between progress log lines
	// during indexing.
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`

	// SampleEvery emits a sampling status line every N files walked.
	SampleEvery int `yaml:"sample_every"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Limits: LimitsConfig{
			MaxDocuments:   12000,
			MinWordLength:  2,
			MaxMatrixCells: 20_000_000,
		},
		Archive: ArchiveConfig{
			Tag: "PMID",
		},
		Model: ModelConfig{
			Anchors:         50,
			TopicWords:      20,
			AnchorThreshold: 0.01,
		},
		Progress: ProgressConfig{
			HeartbeatInterval: 5 * time.Second,
			SampleEvery:       1000,
		},
	}
}

// Load reads configuration from an optional YAML file, then applies
// environment overrides. An empty path means defaults plus environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnvOverrides reads PUBTOPICS_* environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PUBTOPICS_MAX_DOCUMENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.MaxDocuments = n
		}
	}
	if v := os.Getenv("PUBTOPICS_MIN_WORD_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.MinWordLength = n
		}
	}
	if v := os.Getenv("PUBTOPICS_MAX_MATRIX_CELLS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limits.MaxMatrixCells = n
		}
	}
	if v := os.Getenv("PUBTOPICS_ARCHIVE_TAG"); v != "" {
		cfg.Archive.Tag = v
	}
}

// Validate checks configuration invariants.
func (c Config) Validate() error {
	if c.Limits.MaxDocuments <= 0 {
		return fmt.Errorf("limits.max_documents must be positive, got %d", c.Limits.MaxDocuments)
	}
	if c.Limits.MinWordLength < 1 {
		return fmt.Errorf("limits.min_word_length must be at least 1, got %d", c.Limits.MinWordLength)
	}
	if c.Limits.MaxMatrixCells <= 0 {
		return fmt.Errorf("limits.max_matrix_cells must be positive, got %d", c.Limits.MaxMatrixCells)
	}
	if c.Archive.Tag == "" {
		return fmt.Errorf("archive.tag must not be empty")
	}
	if c.Model.Anchors <= 0 {
		return fmt.Errorf("model.anchors must be positive, got %d", c.Model.Anchors)
	}
	if c.Model.TopicWords <= 0 {
		return fmt.Errorf("model.topic_words must be positive, got %d", c.Model.TopicWords)
	}
	if c.Model.AnchorThreshold <= 0 || c.Model.AnchorThreshold >= 1 {
		return fmt.Errorf("model.anchor_threshold must be in (0, 1), got %g", c.Model.AnchorThreshold)
	}
	if c.Progress.HeartbeatInterval < 0 {
		return fmt.Errorf("progress.heartbeat_interval must not be negative")
	}
	if c.Progress.SampleEvery <= 0 {
		return fmt.Errorf("progress.sample_every must be positive, got %d", c.Progress.SampleEvery)
	}
	return nil
}
