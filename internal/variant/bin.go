package variant

import (
	"fmt"
	"sort"
	"strings"
)

// Hotspot is one dense window of a chromosome.
type Hotspot struct {
	Chrom string
	Start int // Start = k*width for the k-th window
	End   int
	Count int
	DNA   string // per variant: ref followed by every alt, commas removed
}

type binKey struct {
	chrom string
	k     int
}

// Bin groups variants into [k*width, (k+1)*width) windows per
// chromosome and keeps windows with at least threshold variants, sorted by
// (chrom, start). Variants keep input order inside a window.
func Bin(vs []Variant, width, threshold int) ([]Hotspot, error) {
	if width <= 0 {
		return nil, fmt.Errorf("variant: bin width must be > 0 (got %d)", width)
	}
	if threshold < 1 {
		return nil, fmt.Errorf("variant: bin threshold must be >= 1 (got %d)", threshold)
	}
	groups := make(map[binKey][]Variant)
	for _, v := range vs {
		k := binKey{chrom: v.Chrom, k: v.Pos / width}
		groups[k] = append(groups[k], v)
	}
	var out []Hotspot
	for k, list := range groups {
		if len(list) < threshold {
			continue
		}
		var b strings.Builder
		for _, v := range list {
			b.WriteString(v.Ref)
			b.WriteString(strings.ReplaceAll(v.Alt, ",", ""))
		}
		out = append(out, Hotspot{
			Chrom: k.chrom,
			Start: k.k * width,
			End:   (k.k + 1) * width,
			Count: len(list),
			DNA:   b.String(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Chrom != out[j].Chrom {
			return out[i].Chrom < out[j].Chrom
		}
		return out[i].Start < out[j].Start
	})
	return out, nil
}
