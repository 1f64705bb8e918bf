// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"snpscan/internal/output"
	"snpscan/internal/pipeline"
	"snpscan/internal/variant"
)

// Options are shared by every format; formats ignore what they don't use.
type Options struct {
	Header bool
}

// ResultFunc renders one pipeline result.
type ResultFunc func(w io.Writer, res *pipeline.Result, opt Options) error

// VariantFunc renders VCF bins.
type VariantFunc func(w io.Writer, list []variant.Hotspot, opt Options) error

// Writer registries (format → handler), last registration wins.
var (
	ResultWriters  = map[string]ResultFunc{}
	VariantWriters = map[string]VariantFunc{}
)

func RegisterResult(format string, fn ResultFunc)   { ResultWriters[format] = fn }
func RegisterVariant(format string, fn VariantFunc) { VariantWriters[format] = fn }

func init() {
	RegisterResult(output.FormatText, func(w io.Writer, res *pipeline.Result, opt Options) error {
		return output.WriteText(w, res, opt.Header)
	})
	RegisterResult(output.FormatJSON, func(w io.Writer, res *pipeline.Result, _ Options) error {
		return output.WriteJSON(w, res)
	})
	RegisterResult(output.FormatJSONL, func(w io.Writer, res *pipeline.Result, _ Options) error {
		return WriteHotspotsJSONL(w, res)
	})
	RegisterResult(output.FormatRecords, func(w io.Writer, res *pipeline.Result, _ Options) error {
		return output.WriteRecords(w, res)
	})

	RegisterVariant(output.FormatText, func(w io.Writer, list []variant.Hotspot, opt Options) error {
		return output.WriteVariantTSV(w, list, opt.Header)
	})
	RegisterVariant(output.FormatJSON, func(w io.Writer, list []variant.Hotspot, _ Options) error {
		return output.WriteVariantJSON(w, list)
	})
	RegisterVariant(output.FormatJSONL, WriteVariantsJSONL)
}

// WriteResult dispatches on format. Broken pipes count as success.
func WriteResult(format string, w io.Writer, res *pipeline.Result, opt Options) error {
	fn, ok := ResultWriters[format]
	if !ok {
		return fmt.Errorf("unknown result format %q (no writer registered)", format)
	}
	return quiet(fn(w, res, opt))
}

// WriteVariants dispatches on format. Broken pipes count as success.
func WriteVariants(format string, w io.Writer, list []variant.Hotspot, opt Options) error {
	fn, ok := VariantWriters[format]
	if !ok {
		return fmt.Errorf("unknown variant format %q (no writer registered)", format)
	}
	return quiet(fn(w, list, opt))
}

// ResultFormats lists registered result formats, sorted.
func ResultFormats() []string { return keys(ResultWriters) }

// VariantFormats lists registered variant formats, sorted.
func VariantFormats() []string { return keys(VariantWriters) }

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
