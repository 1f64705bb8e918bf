// Package writers selects an output format by name and streams results
// through it.
//
// Design:
//   - Rendering lives in internal/output; this package only dispatches.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
//   - A reader closing the pipe early (e.g. `head`) is not an error.
package writers
