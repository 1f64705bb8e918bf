// internal/output/json.go
package output

import (
	"encoding/json"
	"io"
	"sort"

	"snpscan/core/consensus"
	"snpscan/core/hotspot"
	"snpscan/core/interval"
	"snpscan/internal/pipeline"
	"snpscan/internal/variant"
	"snpscan/pkg/api"
)

// EncodePretty writes v as indented JSON to w.
func EncodePretty(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ToAPIResult converts a pipeline result to the stable wire schema (v1).
// Slices are never nil so empty stages encode as [].
func ToAPIResult(res *pipeline.Result) api.ResultV1 {
	v := api.ResultV1{
		Schema:     api.SchemaV1,
		RunID:      res.RunID,
		Sequences:  make([]api.SequenceV1, 0, len(res.Records)),
		Summary:    api.SummaryV1(res.Summary),
		Candidates: toAPICandidates(res.Candidates),
		Conserved:  toAPIIntervals(res.Conserved),
		Unstable:   toAPIIntervals(interval.Flatten(res.Unstable)),
		Filtered:   append([]int{}, res.Filtered...),
		Unique:     make([]api.UniqueSNPV1, 0, len(res.Unique)),
		Hotspots:   make([]api.HotspotV1, 0, len(res.Hotspots)),
	}
	if len(res.Rejected) > 0 {
		v.Rejected = toAPICandidates(res.Rejected)
	}
	for _, r := range res.Records {
		v.Sequences = append(v.Sequences, api.SequenceV1{ID: r.ID, Length: len(r.Seq), Source: r.Source, Class: r.Class})
	}
	for _, p := range res.Unique {
		v.Unique = append(v.Unique, api.UniqueSNPV1{Pos: p, Contexts: append([]string{}, res.Contexts[p]...)})
	}
	for _, w := range res.Hotspots {
		v.Hotspots = append(v.Hotspots, ToAPIHotspot(w, ""))
	}
	return v
}

// ToAPIHotspot converts one window; runID is set only on JSONL lines.
func ToAPIHotspot(w hotspot.Window, runID string) api.HotspotV1 {
	return api.HotspotV1{
		RunID:     runID,
		Start:     w.Start,
		End:       w.End,
		SNPCount:  w.SNPCount,
		Density:   w.Density,
		Positions: append([]int{}, w.Positions...),
	}
}

func toAPICandidates(list []consensus.Candidate) []api.CandidateV1 {
	out := make([]api.CandidateV1, 0, len(list))
	for _, c := range list {
		out = append(out, api.CandidateV1{Pos: c.Pos, Coverage: c.Coverage, Alleles: string(c.Alleles), Pathogenic: c.Pathogenic})
	}
	return out
}

// toAPIIntervals sorts a copy by (source, start, end, type).
func toAPIIntervals(list []interval.Interval) []api.IntervalV1 {
	cp := append([]interval.Interval(nil), list...)
	interval.Sort(cp)
	out := make([]api.IntervalV1, 0, len(cp))
	for _, iv := range cp {
		out = append(out, api.IntervalV1{Start: iv.Start, End: iv.End, Type: string(iv.Type), Source: iv.Source})
	}
	return out
}

// WriteJSON writes the whole result as one pretty document.
func WriteJSON(w io.Writer, res *pipeline.Result) error {
	return EncodePretty(w, ToAPIResult(res))
}

// ToAPIVariantHotspots converts VCF bins, ordered by (chrom, start).
func ToAPIVariantHotspots(list []variant.Hotspot) []api.VariantHotspotV1 {
	out := make([]api.VariantHotspotV1, 0, len(list))
	for _, h := range list {
		out = append(out, api.VariantHotspotV1{Chrom: h.Chrom, Start: h.Start, End: h.End, SNPCount: h.Count, DNA: h.DNA})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Chrom != out[j].Chrom {
			return out[i].Chrom < out[j].Chrom
		}
		return out[i].Start < out[j].Start
	})
	return out
}

// WriteVariantJSON writes VCF bins as one pretty array.
func WriteVariantJSON(w io.Writer, list []variant.Hotspot) error {
	return EncodePretty(w, ToAPIVariantHotspots(list))
}
