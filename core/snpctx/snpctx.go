// Package snpctx extracts the fixed-radius neighbourhood of each SNP
// position from every sequence and decides whether the position's
// neighbourhood is distinguishable across the panel.
package snpctx

import (
	"errors"
	"fmt"
)

// Mode is the usability policy.
type Mode string

const (
	// Strict keeps a position only if every extracted context is distinct.
	// This is the production default.
	Strict Mode = "strict"
	// Permissive keeps a position if at least two distinct contexts exist.
	// Meant for small or low-diversity panels.
	Permissive Mode = "permissive"
)

// DefaultRadius gives 21 nt contexts.
const DefaultRadius = 10

var ErrInvalidConfig = errors.New("snpctx: invalid config")

// ParseMode maps a config string to a Mode; empty means Strict.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", Strict:
		return Strict, nil
	case Permissive:
		return Permissive, nil
	}
	return "", fmt.Errorf("%w: uniqueness mode %q (want %s|%s)", ErrInvalidConfig, s, Strict, Permissive)
}

// Result is the usable subset of the input positions, in input order, and
// the contexts collected for each of them.
type Result struct {
	Positions []int
	Contexts  map[int][]string
}

// Extractor is immutable after New.
type Extractor struct {
	radius int
	mode   Mode
}

func New(radius int, mode Mode) (*Extractor, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: radius must be >= 0 (got %d)", ErrInvalidConfig, radius)
	}
	if mode != Strict && mode != Permissive {
		return nil, fmt.Errorf("%w: uniqueness mode %q", ErrInvalidConfig, mode)
	}
	return &Extractor{radius: radius, mode: mode}, nil
}

// Window returns s[max(0,p-r) : min(len,p+r+1)]. Contexts near either end
// of s come back shorter than 2r+1. p must be inside s.
func Window(s []byte, p, r int) string {
	start := p - r
	if start < 0 {
		start = 0
	}
	end := p + r + 1
	if end > len(s) {
		end = len(s)
	}
	return string(s[start:end])
}

// Contexts collects Window(s, p, r) from every sequence that covers p.
func (e *Extractor) Contexts(p int, seqs [][]byte) []string {
	var out []string
	for _, s := range seqs {
		if p < 0 || p >= len(s) {
			continue
		}
		out = append(out, Window(s, p, e.radius))
	}
	return out
}

// Usable applies the configured mode to one position's contexts.
func (e *Extractor) Usable(contexts []string) bool {
	if len(contexts) == 0 {
		return false
	}
	distinct := make(map[string]struct{}, len(contexts))
	for _, c := range contexts {
		distinct[c] = struct{}{}
	}
	if e.mode == Permissive {
		return len(distinct) >= 2
	}
	return len(distinct) == len(contexts)
}

// Extract keeps each position whose contexts pass the mode check.
func (e *Extractor) Extract(positions []int, seqs [][]byte) Result {
	res := Result{Contexts: make(map[int][]string)}
	for _, p := range positions {
		ctxs := e.Contexts(p, seqs)
		if !e.Usable(ctxs) {
			continue
		}
		res.Positions = append(res.Positions, p)
		res.Contexts[p] = ctxs
	}
	return res
}
