// internal/output/records.go
package output

import (
	"bufio"
	"io"

	"snpscan/core/hotspot"
	"snpscan/internal/pipeline"
)

// WriteRecords emits one block per hotspot for the downstream encoder:
//
//	Hotspot Positions: 4,6,8
//	Reference: <window of the first sequence>
//	Alternate: <same window of the first sequence differing at a position>
//
// The Alternate line is left out when no sequence differs. Blocks are
// separated by a blank line.
func WriteRecords(w io.Writer, res *pipeline.Result) error {
	bw := bufio.NewWriter(w)
	if len(res.Records) == 0 {
		return bw.Flush()
	}
	ref := res.Records[0].Seq
	for i, hw := range res.Hotspots {
		if i > 0 {
			bw.WriteString("\n")
		}
		bw.WriteString("Hotspot Positions: " + IntsCSV(hw.Positions) + "\n")
		bw.WriteString("Reference: " + string(clip(ref, hw.Start, hw.End)) + "\n")
		if alt := alternate(res, hw); alt != nil {
			bw.WriteString("Alternate: " + string(clip(alt, hw.Start, hw.End)) + "\n")
		}
	}
	return bw.Flush()
}

// alternate returns the first sequence after the reference whose base
// differs from it at any of the window's positions.
func alternate(res *pipeline.Result, hw hotspot.Window) []byte {
	ref := res.Records[0].Seq
	for _, r := range res.Records[1:] {
		for _, p := range hw.Positions {
			if p < len(ref) && p < len(r.Seq) && r.Seq[p] != ref[p] {
				return r.Seq
			}
		}
	}
	return nil
}

func clip(s []byte, start, end int) []byte {
	if start > len(s) {
		start = len(s)
	}
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}
