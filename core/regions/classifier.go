// Package regions tags structurally unstable spans of a single sequence:
// GC-rich windows, transposon-like signatures and simple repeats.
package regions

import (
	"errors"
	"fmt"
	"regexp"

	"snpscan/core/interval"
	"snpscan/core/seq"
)

// ErrInvalidRules wraps every rule-set validation failure.
var ErrInvalidRules = errors.New("regions: invalid rules")

type compiled struct {
	name string
	re   *regexp.Regexp
	typ  interval.Type
}

// Classifier is immutable after New and safe for concurrent use.
type Classifier struct {
	comp       Composition
	signatures []compiled
	repeats    []compiled
}

// New validates and compiles rules.
func New(rules Rules) (*Classifier, error) {
	c := rules.Composition
	if c.WindowSize <= 0 {
		return nil, fmt.Errorf("%w: window size must be > 0 (got %d)", ErrInvalidRules, c.WindowSize)
	}
	if c.Step <= 0 {
		return nil, fmt.Errorf("%w: step must be > 0 (got %d)", ErrInvalidRules, c.Step)
	}
	if c.GCThreshold <= 0 || c.GCThreshold > 1 {
		return nil, fmt.Errorf("%w: gc threshold must be in (0,1] (got %g)", ErrInvalidRules, c.GCThreshold)
	}
	sig, err := compileAll(rules.Signatures)
	if err != nil {
		return nil, err
	}
	rep, err := compileAll(rules.Repeats)
	if err != nil {
		return nil, err
	}
	return &Classifier{comp: c, signatures: sig, repeats: rep}, nil
}

// MustNew is New for rule sets known to be valid (package defaults, tests).
func MustNew(rules Rules) *Classifier {
	c, err := New(rules)
	if err != nil {
		panic(err)
	}
	return c
}

func compileAll(ps []Pattern) ([]compiled, error) {
	out := make([]compiled, 0, len(ps))
	for _, p := range ps {
		if p.Expr == "" {
			return nil, fmt.Errorf("%w: pattern %q is empty", ErrInvalidRules, p.Name)
		}
		if p.Type == "" {
			return nil, fmt.Errorf("%w: pattern %q has no interval type", ErrInvalidRules, p.Name)
		}
		expr := p.Expr
		if p.FoldCase {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalidRules, p.Name, err)
		}
		out = append(out, compiled{name: p.Name, re: re, typ: p.Type})
	}
	return out, nil
}

// Classify runs the composition, signature and repeat passes and returns
// their intervals concatenated in discovery order. Source is left at
// interval.NoSource; the caller tags it.
func (c *Classifier) Classify(s []byte) []interval.Interval {
	var out []interval.Interval
	out = append(out, c.Composition(s)...)
	out = append(out, scan(s, c.signatures)...)
	out = append(out, scan(s, c.repeats)...)
	return out
}

// Composition emits a CpG_island interval for every full window whose GC
// fraction exceeds the threshold. No short trailing window is scanned.
func (c *Classifier) Composition(s []byte) []interval.Interval {
	w, step := c.comp.WindowSize, c.comp.Step
	var out []interval.Interval
	if len(s) < w {
		return out
	}
	// Sliding GC count; recomputed only for the step delta.
	gc := seq.GCCount(s[:w])
	for start := 0; start+w <= len(s); start += step {
		if start > 0 {
			gc += seq.GCCount(s[start-step+w:start+w]) - seq.GCCount(s[start-step:start])
		}
		if float64(gc)/float64(w) > c.comp.GCThreshold {
			out = append(out, interval.Interval{Start: start, End: start + w, Type: interval.CpGIsland, Source: interval.NoSource})
		}
	}
	return out
}

// Signatures runs only the transposon-signature pass.
func (c *Classifier) Signatures(s []byte) []interval.Interval { return scan(s, c.signatures) }

// Repeats runs only the simple-repeat pass.
func (c *Classifier) Repeats(s []byte) []interval.Interval { return scan(s, c.repeats) }

func scan(s []byte, pats []compiled) []interval.Interval {
	var out []interval.Interval
	for _, p := range pats {
		for _, loc := range p.re.FindAllIndex(s, -1) {
			if loc[1] <= loc[0] {
				continue
			}
			out = append(out, interval.Interval{Start: loc[0], End: loc[1], Type: p.typ, Source: interval.NoSource})
		}
	}
	return out
}
