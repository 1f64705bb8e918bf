// Package output renders pipeline and variant results. Each Write* function
// owns one format; internal/writers picks among them by name.
package output

// Output formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatJSONL   = "jsonl"
	FormatRecords = "records"
)

// Column headers for the text format. Keep these stable; downstream
// scripts cut on them.
const (
	CandidateHeader  = "pos\tcoverage\talleles\tpathogenic"
	IntervalHeader   = "source\tstart\tend\ttype"
	SpanHeader       = "start\tend"
	UniqueHeader     = "pos\tcontexts"
	HotspotHeader    = "start\tend\tsnp_count\tdensity\tpositions"
	VariantTSVHeader = "Chromosome\tStart\tEnd\tSNP_Count\tDNA_String"
)
