// pkg/api/result_v1.go
package api

// SchemaV1 tags every v1 document.
const SchemaV1 = "snpscan/v1"

// ResultV1 is the stable JSON schema for one pipeline run.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultV1 struct {
	Schema     string        `json:"schema"`
	RunID      string        `json:"run_id"`
	Sequences  []SequenceV1  `json:"sequences"`
	Summary    SummaryV1     `json:"summary"`
	Candidates []CandidateV1 `json:"candidates"`
	Rejected   []CandidateV1 `json:"rejected,omitempty"`
	Conserved  []IntervalV1  `json:"conserved"`
	Unstable   []IntervalV1  `json:"unstable"`
	Filtered   []int         `json:"filtered"`
	Unique     []UniqueSNPV1 `json:"unique"`
	Hotspots   []HotspotV1   `json:"hotspots"`
}

type SequenceV1 struct {
	ID     string `json:"id"`
	Length int    `json:"length"`
	Source string `json:"source,omitempty"`
	Class  int    `json:"class"` // -1 when unlabeled
}

type SummaryV1 struct {
	Sequences  int `json:"sequences"`
	Candidates int `json:"candidates"`
	Rejected   int `json:"rejected"`
	Unstable   int `json:"unstable"`
	Conserved  int `json:"conserved"`
	Filtered   int `json:"filtered"`
	Unique     int `json:"unique"`
	Hotspots   int `json:"hotspots"`
	MinCount   int `json:"min_count"`
}

type CandidateV1 struct {
	Pos        int    `json:"pos"`
	Coverage   int    `json:"coverage"`
	Alleles    string `json:"alleles"`
	Pathogenic bool   `json:"pathogenic,omitempty"`
}

// IntervalV1 is a half-open [start, end) span. Source is the sequence
// index, or -1 for batch-wide intervals.
type IntervalV1 struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Type   string `json:"type"`
	Source int    `json:"source"`
}

type UniqueSNPV1 struct {
	Pos      int      `json:"pos"`
	Contexts []string `json:"contexts"`
}

// HotspotV1 is also the JSONL line format.
type HotspotV1 struct {
	RunID     string  `json:"run_id,omitempty"`
	Start     int     `json:"start"`
	End       int     `json:"end"`
	SNPCount  int     `json:"snp_count"`
	Density   float64 `json:"density"`
	Positions []int   `json:"positions"`
}

// VariantHotspotV1 is one dense VCF bin.
type VariantHotspotV1 struct {
	Chrom    string `json:"chrom"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	SNPCount int    `json:"snp_count"`
	DNA      string `json:"dna"`
}
