package seq

// ClassUnknown marks records that carry no class label (FASTA input).
const ClassUnknown = -1

// Record is one loaded sequence. Seq is treated as read-only once a
// Record has been handed to the pipeline.
type Record struct {
	ID     string
	Seq    []byte
	Source string // file the record came from
	Class  int    // tabular class label, ClassUnknown when absent
}

// Seqs returns the raw sequences of recs in order, without copying.
func Seqs(recs []Record) [][]byte {
	out := make([][]byte, len(recs))
	for i, r := range recs {
		out[i] = r.Seq
	}
	return out
}
