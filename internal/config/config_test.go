package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 200, cfg.Regions.WindowSize)
	assert.Equal(t, 50, cfg.Regions.Step)
	assert.Equal(t, 0.6, cfg.Regions.GCThreshold)
	assert.Equal(t, 0.9, cfg.Consensus.ConservationThreshold)
	assert.Equal(t, 2, cfg.Consensus.MinVariants)
	assert.Equal(t, 5, cfg.Consensus.MinCoverage)
	assert.Equal(t, 10, cfg.Context.Radius)
	assert.Equal(t, "strict", cfg.Context.Uniqueness)
	assert.Equal(t, "lenient", cfg.Pathogenicity.Mode)
	assert.Equal(t, 1000, cfg.Hotspot.WindowSize)
	assert.Equal(t, 35, cfg.Hotspot.MinCount)
	assert.Equal(t, []int{0, 1}, cfg.Input.Classes)
}

func TestValidateReportsYAMLPaths(t *testing.T) {
	cfg := Default()
	cfg.Consensus.ConservationThreshold = 1.5
	cfg.Hotspot.WindowSize = 0
	cfg.Context.Uniqueness = "loose"
	cfg.Consensus.MinVariants = 1

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.True(t, cerr.Has("consensus.conservation_threshold"))
	assert.True(t, cerr.Has("hotspot.window_size"))
	assert.True(t, cerr.Has("context.uniqueness"))
	assert.True(t, cerr.Has("consensus.min_variants"))
	assert.Len(t, cerr.Fields, 4)
}

func TestConservationThresholdUpperBoundInclusive(t *testing.T) {
	cfg := Default()
	cfg.Consensus.ConservationThreshold = 1
	assert.NoError(t, cfg.Validate())
	cfg.Consensus.ConservationThreshold = 0
	assert.Error(t, cfg.Validate())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snpscan.yaml")
	data := []byte(`
consensus:
  min_coverage: 3
context:
  uniqueness: permissive
hotspot:
  min_count: 2
  exclude_unstable: true
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Consensus.MinCoverage)
	assert.Equal(t, 0.9, cfg.Consensus.ConservationThreshold, "untouched keys keep defaults")
	assert.Equal(t, "permissive", cfg.Context.Uniqueness)
	assert.Equal(t, 2, cfg.Hotspot.MinCount)
	assert.True(t, cfg.Hotspot.ExcludeUnstable)
	assert.Equal(t, 1000, cfg.Hotspot.WindowSize)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hotspot:\n  min_snps: 3\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("regions:\n  step: -5\n"), 0o644))
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeEmptyDocument(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode(nil, &cfg))
	assert.Equal(t, Default(), cfg)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	require.NoError(t, err)
	cfg := Default()
	cfg.Hotspot.MinCount = 1
	require.NoError(t, Decode(data, &cfg))
	assert.Equal(t, Default(), cfg)
}
