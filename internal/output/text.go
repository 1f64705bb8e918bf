// internal/output/text.go
package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"snpscan/core/interval"
	"snpscan/internal/pipeline"
)

// WriteText prints the result as "# section" blocks of TSV rows. Column
// headers follow each section marker unless header is false. Unstable
// regions are listed per sequence, then as untyped spans merged across the
// batch.
func WriteText(w io.Writer, res *pipeline.Result, header bool) error {
	bw := bufio.NewWriter(w)
	s := res.Summary

	section(bw, "summary", "key\tvalue", header)
	for _, kv := range []struct {
		k string
		v int
	}{
		{"sequences", s.Sequences},
		{"candidates", s.Candidates},
		{"rejected", s.Rejected},
		{"unstable", s.Unstable},
		{"conserved", s.Conserved},
		{"filtered", s.Filtered},
		{"unique", s.Unique},
		{"hotspots", s.Hotspots},
		{"min_count", s.MinCount},
	} {
		fmt.Fprintf(bw, "%s\t%d\n", kv.k, kv.v)
	}

	section(bw, "candidates", CandidateHeader, header)
	for _, c := range res.Candidates {
		bw.WriteString(candidateRow(c) + "\n")
	}

	section(bw, "unstable", IntervalHeader, header)
	for _, list := range res.Unstable {
		for _, iv := range list {
			bw.WriteString(intervalRow(iv) + "\n")
		}
	}

	section(bw, "unstable_merged", SpanHeader, header)
	for _, iv := range interval.Merge(interval.Flatten(res.Unstable)) {
		bw.WriteString(strconv.Itoa(iv.Start) + "\t" + strconv.Itoa(iv.End) + "\n")
	}

	section(bw, "conserved", IntervalHeader, header)
	for _, iv := range res.Conserved {
		bw.WriteString(intervalRow(iv) + "\n")
	}

	section(bw, "unique", UniqueHeader, header)
	for _, p := range res.Unique {
		bw.WriteString(strconv.Itoa(p) + "\t" + strings.Join(res.Contexts[p], ",") + "\n")
	}

	section(bw, "hotspots", HotspotHeader, header)
	for _, hw := range res.Hotspots {
		bw.WriteString(hotspotRow(hw) + "\n")
	}
	return bw.Flush()
}

func section(bw *bufio.Writer, name, cols string, header bool) {
	bw.WriteString("# " + name + "\n")
	if header {
		bw.WriteString(cols + "\n")
	}
}
