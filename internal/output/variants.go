package output

import (
	"bufio"
	"io"
	"strconv"

	"snpscan/internal/variant"
)

// WriteVariantTSV writes VCF bins under VariantTSVHeader.
func WriteVariantTSV(w io.Writer, list []variant.Hotspot, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		bw.WriteString(VariantTSVHeader + "\n")
	}
	for _, h := range ToAPIVariantHotspots(list) {
		bw.WriteString(h.Chrom + "\t" + strconv.Itoa(h.Start) + "\t" + strconv.Itoa(h.End) + "\t" +
			strconv.Itoa(h.SNPCount) + "\t" + h.DNA + "\n")
	}
	return bw.Flush()
}
