// Package pathogen is a placeholder pathogenicity check for SNP candidates.
//
// It is a policy switch, not a classifier. In Lenient mode (the default)
// nothing is ever reported pathogenic. Callers must opt in to Strict mode,
// which rejects a position when a disqualifying motif occurs in the ±15 nt
// around it.
package pathogen

import (
	"errors"
	"fmt"
	"regexp"
)

// Mode selects the gate policy.
type Mode string

const (
	Lenient Mode = "lenient"
	Strict  Mode = "strict"
)

// Flank is the number of bases taken on each side of the position.
const Flank = 15

// ErrInvalidMode is returned for anything other than Lenient or Strict.
var ErrInvalidMode = errors.New("pathogen: invalid mode")

// DefaultPatterns target closely spaced start/stop codons. The bracketed
// forms are character classes, so they match any single T, A, G or |.
var DefaultPatterns = []string{
	`ATG...[TAG|TAA|TGA]`,
	`ATG.{0,30}ATG`,
	`[TAG|TAA|TGA].{0,30}[TAG|TAA|TGA]`,
}

// ParseMode maps a config string to a Mode; empty means Lenient.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", Lenient:
		return Lenient, nil
	case Strict:
		return Strict, nil
	}
	return "", fmt.Errorf("%w %q (want %s|%s)", ErrInvalidMode, s, Lenient, Strict)
}

// Gate decides whether a candidate position looks pathogenic.
type Gate struct {
	mode     Mode
	patterns []*regexp.Regexp
}

// New compiles patterns (DefaultPatterns when nil). Patterns are compiled
// in both modes so a bad list fails at construction.
func New(mode Mode, patterns []string) (*Gate, error) {
	if mode != Lenient && mode != Strict {
		return nil, fmt.Errorf("%w %q", ErrInvalidMode, mode)
	}
	if patterns == nil {
		patterns = DefaultPatterns
	}
	g := &Gate{mode: mode}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("pathogen: pattern %q: %w", p, err)
		}
		g.patterns = append(g.patterns, re)
	}
	return g, nil
}

// Mode reports the active policy.
func (g *Gate) Mode() Mode { return g.mode }

// IsPathogenic always returns false in Lenient mode.
func (g *Gate) IsPathogenic(pos int, s []byte) bool {
	if g == nil || g.mode == Lenient {
		return false
	}
	ctx := Context(s, pos)
	for _, re := range g.patterns {
		if re.Match(ctx) {
			return true
		}
	}
	return false
}

// Context returns s[max(0,pos-Flank) : min(len,pos+Flank)].
func Context(s []byte, pos int) []byte {
	start := pos - Flank
	if start < 0 {
		start = 0
	}
	end := pos + Flank
	if end > len(s) {
		end = len(s)
	}
	if start >= end {
		return nil
	}
	return s[start:end]
}
