// Package interval holds the half-open genomic interval used by every
// pipeline stage and the position filter built on it.
package interval

import (
	"fmt"
	"sort"
)

// Type labels why an interval was emitted.
type Type string

const (
	CpGIsland           Type = "CpG_island"
	Repeat              Type = "repeat"
	TransposableElement Type = "transposable_element"
	Conserved           Type = "conserved"
)

// NoSource marks an interval not tied to a single sequence (consensus output).
const NoSource = -1

// Interval is [Start, End) in one sequence's 0-based coordinate space.
type Interval struct {
	Start  int
	End    int
	Type   Type
	Source int // sequence index, NoSource when batch-wide
}

// New builds an interval and rejects empty or inverted spans.
func New(start, end int, typ Type, source int) (Interval, error) {
	if start < 0 || start >= end {
		return Interval{}, fmt.Errorf("interval: invalid span [%d,%d)", start, end)
	}
	return Interval{Start: start, End: end, Type: typ, Source: source}, nil
}

// Len is End-Start.
func (iv Interval) Len() int { return iv.End - iv.Start }

// Contains reports start <= p < end.
func (iv Interval) Contains(p int) bool { return iv.Start <= p && p < iv.End }

// Overlaps reports whether [start,end) shares at least one index with iv.
func (iv Interval) Overlaps(start, end int) bool { return iv.Start < end && start < iv.End }

func (iv Interval) String() string {
	return fmt.Sprintf("%s[%d,%d)", iv.Type, iv.Start, iv.End)
}

// Sort orders by (Source, Start, End, Type) in place.
func Sort(list []Interval) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.Type < b.Type
	})
}

// Merge returns the union of list as sorted, non-overlapping, non-abutting
// spans. Type and Source are taken from the first interval of each run;
// callers merging mixed types get Type of the earliest span.
func Merge(list []Interval) []Interval {
	if len(list) == 0 {
		return nil
	}
	cp := append([]Interval(nil), list...)
	sort.SliceStable(cp, func(i, j int) bool {
		if cp[i].Start != cp[j].Start {
			return cp[i].Start < cp[j].Start
		}
		return cp[i].End < cp[j].End
	})
	out := []Interval{cp[0]}
	for _, iv := range cp[1:] {
		last := &out[len(out)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// Flatten concatenates per-sequence interval lists.
func Flatten(lists [][]Interval) []Interval {
	n := 0
	for _, l := range lists {
		n += len(l)
	}
	out := make([]Interval, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
