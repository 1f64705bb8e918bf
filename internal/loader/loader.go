// Package loader turns input files into the in-memory sequence batch.
//
// A source that cannot be opened or parsed is logged, counted and skipped;
// the run continues with the remaining sources. Only a batch with no
// sequences at all is an error.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"snpscan/core/fasta"
	"snpscan/core/seq"
	"snpscan/internal/metrics"
)

// ErrNoSequences is returned when every source failed or was empty.
var ErrNoSequences = errors.New("no sequences loaded")

// Source kinds, also used as metric labels.
const (
	KindFASTA = "fasta"
	KindTable = "table"
)

// SourceError records one skipped source.
type SourceError struct {
	Path string
	Kind string
	Err  error
}

func (e SourceError) Error() string { return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err) }
func (e SourceError) Unwrap() error { return e.Err }

// Report summarizes one Load call.
type Report struct {
	Loaded int
	Failed []SourceError
}

// Loader is configured once per run.
type Loader struct {
	classes map[int]bool
	log     *slog.Logger
	metrics *metrics.Metrics
}

// New keeps table rows whose class is in classes; an empty list keeps all.
func New(classes []int, log *slog.Logger, m *metrics.Metrics) *Loader {
	if log == nil {
		log = slog.Default()
	}
	l := &Loader{log: log, metrics: m}
	if len(classes) > 0 {
		l.classes = make(map[int]bool, len(classes))
		for _, c := range classes {
			l.classes[c] = true
		}
	}
	return l
}

// Load reads table sources first, then FASTA sources, in argument order.
func (l *Loader) Load(ctx context.Context, fastaPaths, tablePaths []string) ([]seq.Record, Report, error) {
	var (
		recs []seq.Record
		rep  Report
	)
	try := func(kind, path string, read func() ([]seq.Record, error)) error {
		got, err := read()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			l.log.Warn("skipping input source", "kind", kind, "path", path, "error", err)
			l.metrics.Source(kind, "failed")
			rep.Failed = append(rep.Failed, SourceError{Path: path, Kind: kind, Err: err})
			return nil
		}
		l.log.Debug("loaded input source", "kind", kind, "path", path, "sequences", len(got))
		l.metrics.Source(kind, "ok")
		recs = append(recs, got...)
		return nil
	}

	for _, p := range tablePaths {
		if err := try(KindTable, p, func() ([]seq.Record, error) { return ReadTable(ctx, p, l.keep) }); err != nil {
			return nil, rep, err
		}
	}
	for _, p := range fastaPaths {
		if err := try(KindFASTA, p, func() ([]seq.Record, error) { return fasta.ReadFile(ctx, p) }); err != nil {
			return nil, rep, err
		}
	}
	rep.Loaded = len(recs)
	if len(recs) == 0 {
		return nil, rep, fmt.Errorf("%w (%d source(s) failed)", ErrNoSequences, len(rep.Failed))
	}
	return recs, rep, nil
}

func (l *Loader) keep(class int) bool {
	return l.classes == nil || l.classes[class]
}
