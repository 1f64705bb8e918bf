// Package consensus scans position-aligned sequences column by column.
//
// Sequences are assumed to be co-registered already: column i of every
// sequence is compared with column i of every other. No alignment is done.
// Only the index range shared by all sequences, [0, min length), is
// scanned.
package consensus

import (
	"errors"
	"fmt"

	"snpscan/core/interval"
	"snpscan/core/seq"
)

// ErrInvalidOptions wraps every Options validation failure.
var ErrInvalidOptions = errors.New("consensus: invalid options")

// Gate is the pathogenicity check applied to variant columns.
// *pathogen.Gate satisfies it.
type Gate interface {
	IsPathogenic(pos int, s []byte) bool
}

// Options controls both column tests.
type Options struct {
	ConservationThreshold float64 // (0,1]; majority fraction for "conserved"
	MinVariants           int     // >= 2 distinct alleles for a candidate
	MinCoverage           int     // >= 1 canonical observations for a candidate
}

// DefaultOptions: 0.9 conservation, 2 variants, coverage 5.
func DefaultOptions() Options {
	return Options{ConservationThreshold: 0.9, MinVariants: 2, MinCoverage: 5}
}

// Validate checks the documented ranges.
func (o Options) Validate() error {
	if o.ConservationThreshold <= 0 || o.ConservationThreshold > 1 {
		return fmt.Errorf("%w: conservation threshold must be in (0,1] (got %g)", ErrInvalidOptions, o.ConservationThreshold)
	}
	if o.MinVariants < 2 {
		return fmt.Errorf("%w: min variants must be >= 2 (got %d)", ErrInvalidOptions, o.MinVariants)
	}
	if o.MinCoverage < 1 {
		return fmt.Errorf("%w: min coverage must be >= 1 (got %d)", ErrInvalidOptions, o.MinCoverage)
	}
	return nil
}

// Candidate is a variant column. Pathogenic candidates are reported in
// Result.Rejected, never in Result.Candidates.
type Candidate struct {
	Pos        int
	Coverage   int    // canonical observations in the column
	Alleles    []byte // distinct upper-case alleles in A,C,G,T order
	Pathogenic bool
}

// Result holds both column-test outputs.
type Result struct {
	Conserved  []interval.Interval
	Candidates []Candidate
	Rejected   []Candidate // variant columns dropped by the gate
}

// Positions lists candidate positions in ascending order.
func (r Result) Positions() []int {
	out := make([]int, len(r.Candidates))
	for i, c := range r.Candidates {
		out[i] = c.Pos
	}
	return out
}

// Analyzer is immutable after New.
type Analyzer struct {
	opts Options
	gate Gate
}

// New validates opts. gate may be nil, which accepts every candidate.
func New(opts Options, gate Gate) (*Analyzer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{opts: opts, gate: gate}, nil
}

// Column is the canonical-base tally of one index.
type Column struct {
	Counts [4]int // by seq.Bases order
	N      int
}

// Distinct counts alleles with a non-zero tally.
func (c Column) Distinct() int {
	d := 0
	for _, n := range c.Counts {
		if n > 0 {
			d++
		}
	}
	return d
}

// Major returns the most frequent allele and its count. Ties go to the
// allele earliest in seq.Bases.
func (c Column) Major() (byte, int) {
	best := 0
	for i := 1; i < len(c.Counts); i++ {
		if c.Counts[i] > c.Counts[best] {
			best = i
		}
	}
	return seq.Bases[best], c.Counts[best]
}

// Alleles lists the observed alleles in seq.Bases order.
func (c Column) Alleles() []byte {
	var out []byte
	for i, n := range c.Counts {
		if n > 0 {
			out = append(out, seq.Bases[i])
		}
	}
	return out
}

// Tally counts the canonical symbols at index i across seqs. Sequences too
// short to reach i and non-ACGT symbols contribute nothing.
func Tally(seqs [][]byte, i int) Column {
	var c Column
	for _, s := range seqs {
		if i >= len(s) {
			continue
		}
		if k := seq.Index(s[i]); k >= 0 {
			c.Counts[k]++
			c.N++
		}
	}
	return c
}

// Analyze runs the conservation and variation tests over [0, min length).
// The two tests are independent; a column may pass both.
func (a *Analyzer) Analyze(seqs [][]byte) Result {
	var res Result
	n := seq.MinLen(seqs)
	runStart := -1
	for i := 0; i < n; i++ {
		col := Tally(seqs, i)
		if col.N == 0 {
			runStart = a.closeRun(&res, runStart, i)
			continue
		}
		if _, major := col.Major(); float64(major)/float64(col.N) >= a.opts.ConservationThreshold {
			if runStart < 0 {
				runStart = i
			}
		} else {
			runStart = a.closeRun(&res, runStart, i)
		}
		if col.N >= a.opts.MinCoverage && col.Distinct() >= a.opts.MinVariants {
			cand := Candidate{Pos: i, Coverage: col.N, Alleles: col.Alleles()}
			cand.Pathogenic = a.pathogenic(seqs, i)
			if cand.Pathogenic {
				res.Rejected = append(res.Rejected, cand)
			} else {
				res.Candidates = append(res.Candidates, cand)
			}
		}
	}
	a.closeRun(&res, runStart, n)
	return res
}

func (a *Analyzer) closeRun(res *Result, start, end int) int {
	if start >= 0 && end > start {
		res.Conserved = append(res.Conserved, interval.Interval{Start: start, End: end, Type: interval.Conserved, Source: interval.NoSource})
	}
	return -1
}

// pathogenic asks the gate about every sequence that covers pos.
func (a *Analyzer) pathogenic(seqs [][]byte, pos int) bool {
	if a.gate == nil {
		return false
	}
	for _, s := range seqs {
		if pos < len(s) && a.gate.IsPathogenic(pos, s) {
			return true
		}
	}
	return false
}
