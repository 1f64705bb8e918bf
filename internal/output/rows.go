// internal/output/rows.go
package output

import (
	"strconv"
	"strings"

	"snpscan/core/consensus"
	"snpscan/core/hotspot"
	"snpscan/core/interval"
)

// IntsCSV joins ints with commas; empty input gives "".
func IntsCSV(a []int) string {
	if len(a) == 0 {
		return ""
	}
	ss := make([]string, len(a))
	for i, v := range a {
		ss[i] = strconv.Itoa(v)
	}
	return strings.Join(ss, ",")
}

func candidateRow(c consensus.Candidate) string {
	return strconv.Itoa(c.Pos) + "\t" + strconv.Itoa(c.Coverage) + "\t" + string(c.Alleles) + "\t" + strconv.FormatBool(c.Pathogenic)
}

// intervalRow prints "-" for batch-wide intervals.
func intervalRow(iv interval.Interval) string {
	src := "-"
	if iv.Source != interval.NoSource {
		src = strconv.Itoa(iv.Source)
	}
	return src + "\t" + strconv.Itoa(iv.Start) + "\t" + strconv.Itoa(iv.End) + "\t" + string(iv.Type)
}

func hotspotRow(w hotspot.Window) string {
	return strconv.Itoa(w.Start) + "\t" + strconv.Itoa(w.End) + "\t" + strconv.Itoa(w.SNPCount) + "\t" +
		strconv.FormatFloat(w.Density, 'f', 4, 64) + "\t" + IntsCSV(w.Positions)
}
