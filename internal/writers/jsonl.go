// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"snpscan/core/hotspot"
	"snpscan/internal/jsonlutil"
	"snpscan/internal/output"
	"snpscan/internal/pipeline"
	"snpscan/internal/variant"
)

// StartHotspotJSONLWriter streams each hotspot window as one JSON line (v1)
// tagged with runID.
func StartHotspotJSONLWriter(out io.Writer, runID string, bufSize int) (chan<- hotspot.Window, <-chan error) {
	return jsonlutil.Start[hotspot.Window](out, bufSize,
		func(enc *json.Encoder, w hotspot.Window) error {
			return enc.Encode(output.ToAPIHotspot(w, runID))
		},
		IsBrokenPipe,
	)
}

// StartVariantJSONLWriter streams each VCF bin as one JSON line (v1).
func StartVariantJSONLWriter(out io.Writer, bufSize int) (chan<- variant.Hotspot, <-chan error) {
	return jsonlutil.Start[variant.Hotspot](out, bufSize,
		func(enc *json.Encoder, h variant.Hotspot) error {
			return enc.Encode(output.ToAPIVariantHotspots([]variant.Hotspot{h})[0])
		},
		IsBrokenPipe,
	)
}

// WriteHotspotsJSONL writes res.Hotspots one per line.
func WriteHotspotsJSONL(w io.Writer, res *pipeline.Result) error {
	in, done := StartHotspotJSONLWriter(w, res.RunID, len(res.Hotspots))
	for _, hw := range res.Hotspots {
		in <- hw
	}
	close(in)
	return <-done
}

// WriteVariantsJSONL writes VCF bins one per line in the given order.
func WriteVariantsJSONL(w io.Writer, list []variant.Hotspot, _ Options) error {
	in, done := StartVariantJSONLWriter(w, len(list))
	for _, h := range list {
		in <- h
	}
	close(in)
	return <-done
}
