// Package config holds every tunable of a pipeline run. It is loaded from
// YAML, overlaid by CLI flags, and validated once before any stage is built.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"snpscan/core/consensus"
	"snpscan/core/hotspot"
	"snpscan/core/pathogen"
	"snpscan/core/regions"
	"snpscan/core/snpctx"
)

// Config is the full option bundle.
type Config struct {
	Regions       RegionsConfig       `yaml:"regions"`
	Consensus     ConsensusConfig     `yaml:"consensus"`
	Context       ContextConfig       `yaml:"context"`
	Pathogenicity PathogenicityConfig `yaml:"pathogenicity"`
	Hotspot       HotspotConfig       `yaml:"hotspot"`
	Pipeline      PipelineConfig      `yaml:"pipeline"`
	Input         InputConfig         `yaml:"input"`
}

// RegionsConfig drives the composition scan. Signature and repeat motifs
// default to the built-in sets when left empty.
type RegionsConfig struct {
	WindowSize  int      `yaml:"window_size" validate:"gt=0"`
	Step        int      `yaml:"step" validate:"gt=0"`
	GCThreshold float64  `yaml:"gc_threshold" validate:"gt=0,lte=1"`
	Signatures  []string `yaml:"signatures,omitempty"`
	Repeats     []string `yaml:"repeats,omitempty"`
}

type ConsensusConfig struct {
	ConservationThreshold float64 `yaml:"conservation_threshold" validate:"gt=0,lte=1"`
	MinVariants           int     `yaml:"min_variants" validate:"gte=2"`
	MinCoverage           int     `yaml:"min_coverage" validate:"gte=1"`
}

// ContextConfig: Uniqueness defaults to strict.
type ContextConfig struct {
	Radius     int    `yaml:"radius" validate:"gte=0"`
	Uniqueness string `yaml:"uniqueness" validate:"omitempty,oneof=strict permissive"`
}

// PathogenicityConfig: Mode defaults to lenient, which never rejects a
// candidate. Patterns apply only in strict mode; empty means the defaults.
type PathogenicityConfig struct {
	Mode     string   `yaml:"mode" validate:"omitempty,oneof=lenient strict"`
	Patterns []string `yaml:"patterns,omitempty"`
}

type HotspotConfig struct {
	WindowSize      int  `yaml:"window_size" validate:"gt=0"`
	MinCount        int  `yaml:"min_count" validate:"gte=1"`
	ExcludeUnstable bool `yaml:"exclude_unstable"`
	Adaptive        bool `yaml:"adaptive"`
}

// PipelineConfig: Workers 0 means one per CPU.
type PipelineConfig struct {
	Workers int `yaml:"workers" validate:"gte=0"`
}

// InputConfig selects rows of tabular input by class label.
type InputConfig struct {
	Classes []int `yaml:"classes"`
}

// Default returns the production defaults.
func Default() Config {
	comp := regions.DefaultComposition()
	cons := consensus.DefaultOptions()
	return Config{
		Regions: RegionsConfig{WindowSize: comp.WindowSize, Step: comp.Step, GCThreshold: comp.GCThreshold},
		Consensus: ConsensusConfig{
			ConservationThreshold: cons.ConservationThreshold,
			MinVariants:           cons.MinVariants,
			MinCoverage:           cons.MinCoverage,
		},
		Context:       ContextConfig{Radius: snpctx.DefaultRadius, Uniqueness: string(snpctx.Strict)},
		Pathogenicity: PathogenicityConfig{Mode: string(pathogen.Lenient)},
		Hotspot:       HotspotConfig{WindowSize: hotspot.DefaultWindow, MinCount: hotspot.DefaultMinCount},
		Input:         InputConfig{Classes: []int{0, 1}},
	}
}

// Load reads a YAML file over Default() and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode overlays YAML onto cfg. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Marshal renders cfg as YAML (used by `snpscan config`).
func Marshal(cfg Config) ([]byte, error) { return yaml.Marshal(cfg) }
