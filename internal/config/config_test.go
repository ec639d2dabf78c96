package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 12000, cfg.Limits.MaxDocuments)
	assert.Equal(t, 2, cfg.Limits.MinWordLength)
	assert.Equal(t, "PMID", cfg.Archive.Tag)
	assert.Equal(t, 50, cfg.Model.Anchors)
	assert.Equal(t, 20, cfg.Model.TopicWords)
	assert.InDelta(t, 0.01, cfg.Model.AnchorThreshold, 1e-9)
	assert.Equal(t, 5*time.Second, cfg.Progress.HeartbeatInterval)
	assert.Equal(t, 1000, cfg.Progress.SampleEvery)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pubtopics.yaml")
	yaml := `
limits:
  max_documents: 6500
  min_word_length: 3
archive:
  tag: PMC
model:
  anchors: 10
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6500, cfg.Limits.MaxDocuments)
	assert.Equal(t, 3, cfg.Limits.MinWordLength)
	assert.Equal(t, "PMC", cfg.Archive.Tag)
	assert.Equal(t, 10, cfg.Model.Anchors)
	// Unset values keep defaults.
	assert.Equal(t, 20, cfg.Model.TopicWords)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PUBTOPICS_MAX_DOCUMENTS", "42")
	t.Setenv("PUBTOPICS_ARCHIVE_TAG", "DOI")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Limits.MaxDocuments)
	assert.Equal(t, "DOI", cfg.Archive.Tag)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero max documents", mutate: func(c *Config) { c.Limits.MaxDocuments = 0 }},
		{name: "zero min word length", mutate: func(c *Config) { c.Limits.MinWordLength = 0 }},
		{name: "zero cell ceiling", mutate: func(c *Config) { c.Limits.MaxMatrixCells = 0 }},
		{name: "empty tag", mutate: func(c *Config) { c.Archive.Tag = "" }},
		{name: "zero anchors", mutate: func(c *Config) { c.Model.Anchors = 0 }},
		{name: "threshold too big", mutate: func(c *Config) { c.Model.AnchorThreshold = 1.5 }},
		{name: "zero sample interval", mutate: func(c *Config) { c.Progress.SampleEvery = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
