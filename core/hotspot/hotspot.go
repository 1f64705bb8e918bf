// Package hotspot slides a fixed window across sorted SNP positions and
// reports the windows dense enough to count as hotspots.
package hotspot

import (
	"errors"
	"fmt"
	"sort"

	"snpscan/core/interval"
)

const (
	// DefaultWindow is 1 kb.
	DefaultWindow = 1000
	// DefaultMinCount is the production density threshold (35 SNPs/kb).
	// Small panels need a caller-supplied lower value.
	DefaultMinCount = 35
)

var ErrInvalidConfig = errors.New("hotspot: invalid config")

// Window is one qualifying [Start, End) span.
type Window struct {
	Start     int
	End       int
	SNPCount  int
	Positions []int
	Density   float64 // SNPCount / (End-Start)
}

// Aggregator is immutable after New.
type Aggregator struct {
	size     int
	step     int
	minCount int
}

// New fixes the step at 10% of size (at least 1), so consecutive windows
// overlap by 90%.
func New(size, minCount int) (*Aggregator, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: window size must be > 0 (got %d)", ErrInvalidConfig, size)
	}
	if minCount < 1 {
		return nil, fmt.Errorf("%w: min count must be >= 1 (got %d)", ErrInvalidConfig, minCount)
	}
	return &Aggregator{size: size, step: Step(size), minCount: minCount}, nil
}

// Step is max(1, size/10).
func Step(size int) int {
	if s := size / 10; s > 1 {
		return s
	}
	return 1
}

func (a *Aggregator) Size() int     { return a.size }
func (a *Aggregator) MinCount() int { return a.minCount }

// Aggregate scans windows starting at 0, advancing by the step while the
// start is below the largest position, and returns every window holding at
// least MinCount positions. Overlapping windows are not merged.
func (a *Aggregator) Aggregate(positions []int) []Window {
	if len(positions) == 0 {
		return nil
	}
	sorted := append([]int(nil), positions...)
	sort.Ints(sorted)
	maxPos := sorted[len(sorted)-1]

	var out []Window
	lo := 0 // first index with sorted[lo] >= start
	for start := 0; start < maxPos; start += a.step {
		end := start + a.size
		for lo < len(sorted) && sorted[lo] < start {
			lo++
		}
		hi := lo
		for hi < len(sorted) && sorted[hi] < end {
			hi++
		}
		n := hi - lo
		if n < a.minCount {
			continue
		}
		out = append(out, Window{
			Start:     start,
			End:       end,
			SNPCount:  n,
			Positions: append([]int(nil), sorted[lo:hi]...),
			Density:   float64(n) / float64(a.size),
		})
	}
	return out
}

// FilterStable drops windows that overlap any of the given intervals.
func FilterStable(windows []Window, unstable []interval.Interval) []Window {
	var out []Window
next:
	for _, w := range windows {
		for _, iv := range unstable {
			if iv.Overlaps(w.Start, w.End) {
				continue next
			}
		}
		out = append(out, w)
	}
	return out
}

// AdaptiveMinCount returns the threshold to use for n surviving SNPs when
// small-panel fallback is enabled: the production value when n exceeds it,
// otherwise 2, or 1 when n <= 2.
func AdaptiveMinCount(n, production int) int {
	if n > production {
		return production
	}
	if n > 2 {
		return 2
	}
	return 1
}
