package config

import (
	"fmt"

	"snpscan/core/consensus"
	"snpscan/core/interval"
	"snpscan/core/pathogen"
	"snpscan/core/regions"
	"snpscan/core/snpctx"
)

// RegionRules builds the classifier rule set. Custom motif lists replace
// the defaults wholesale; signatures match case-insensitively, repeats
// case-sensitively, same as the built-ins.
func (c Config) RegionRules() regions.Rules {
	r := regions.DefaultRules()
	r.Composition = regions.Composition{
		WindowSize:  c.Regions.WindowSize,
		Step:        c.Regions.Step,
		GCThreshold: c.Regions.GCThreshold,
	}
	if len(c.Regions.Signatures) > 0 {
		r.Signatures = customPatterns("sig", c.Regions.Signatures, true, interval.TransposableElement)
	}
	if len(c.Regions.Repeats) > 0 {
		r.Repeats = customPatterns("rep", c.Regions.Repeats, false, interval.Repeat)
	}
	return r
}

func customPatterns(prefix string, exprs []string, fold bool, typ interval.Type) []regions.Pattern {
	out := make([]regions.Pattern, len(exprs))
	for i, e := range exprs {
		out[i] = regions.Pattern{Name: fmt.Sprintf("%s%d", prefix, i+1), Expr: e, FoldCase: fold, Type: typ}
	}
	return out
}

func (c Config) ConsensusOptions() consensus.Options {
	return consensus.Options{
		ConservationThreshold: c.Consensus.ConservationThreshold,
		MinVariants:           c.Consensus.MinVariants,
		MinCoverage:           c.Consensus.MinCoverage,
	}
}

// PathogenMode parses Pathogenicity.Mode; empty is lenient.
func (c Config) PathogenMode() (pathogen.Mode, error) { return pathogen.ParseMode(c.Pathogenicity.Mode) }

// PathogenPatterns returns nil (the gate defaults) when none are configured.
func (c Config) PathogenPatterns() []string {
	if len(c.Pathogenicity.Patterns) == 0 {
		return nil
	}
	return c.Pathogenicity.Patterns
}

// ContextMode parses Context.Uniqueness; empty is strict.
func (c Config) ContextMode() (snpctx.Mode, error) { return snpctx.ParseMode(c.Context.Uniqueness) }
