// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"snpscan/core/consensus"
	"snpscan/core/hotspot"
	"snpscan/core/interval"
	"snpscan/core/pathogen"
	"snpscan/core/regions"
	"snpscan/core/seq"
	"snpscan/core/snpctx"
	"snpscan/internal/config"
	"snpscan/internal/metrics"
)

// ErrNoSequences is returned by Run for an empty batch.
var ErrNoSequences = errors.New("pipeline: no sequences")

// Stage names used in logs and metrics.
const (
	StageSequences  = "sequences"
	StageCandidates = "candidates"
	StageRejected   = "rejected"
	StageUnstable   = "unstable"
	StageConserved  = "conserved"
	StageFiltered   = "filtered"
	StageUnique     = "unique"
	StageHotspots   = "hotspots"
)

// Summary holds the per-stage counts of one run.
type Summary struct {
	Sequences  int
	Candidates int
	Rejected   int
	Unstable   int
	Conserved  int
	Filtered   int
	Unique     int
	Hotspots   int
	MinCount   int // hotspot threshold actually applied
}

// Result bundles every stage output of one run. Records is the input
// batch, kept so writers can slice reference and alternate alleles.
type Result struct {
	RunID      string
	Records    []seq.Record
	Unstable   [][]interval.Interval // per sequence, in input order
	Conserved  []interval.Interval
	Candidates []consensus.Candidate
	Rejected   []consensus.Candidate
	Filtered   []int
	Unique     []int
	Contexts   map[int][]string
	Hotspots   []hotspot.Window
	Summary    Summary
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithMetrics attaches a metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// Pipeline is safe for concurrent Run calls.
type Pipeline struct {
	cfg        config.Config
	classifier *regions.Classifier
	analyzer   *consensus.Analyzer
	extractor  *snpctx.Extractor
	aggregator *hotspot.Aggregator
	workers    int

	log     *slog.Logger
	metrics *metrics.Metrics
}

// New validates cfg and builds every stage. Any error wraps the failing
// stage's sentinel or config.ErrInvalid.
func New(cfg config.Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{cfg: cfg, log: slog.Default()}
	for _, o := range opts {
		o(p)
	}

	var err error
	if p.classifier, err = regions.New(cfg.RegionRules()); err != nil {
		return nil, fmt.Errorf("build classifier: %w", err)
	}
	mode, err := cfg.PathogenMode()
	if err != nil {
		return nil, err
	}
	// Lenient (the default) never marks a candidate pathogenic; strict is opt-in.
	gate, err := pathogen.New(mode, cfg.PathogenPatterns())
	if err != nil {
		return nil, fmt.Errorf("build pathogenicity gate: %w", err)
	}
	if p.analyzer, err = consensus.New(cfg.ConsensusOptions(), gate); err != nil {
		return nil, fmt.Errorf("build consensus analyzer: %w", err)
	}
	cmode, err := cfg.ContextMode()
	if err != nil {
		return nil, err
	}
	if p.extractor, err = snpctx.New(cfg.Context.Radius, cmode); err != nil {
		return nil, fmt.Errorf("build context extractor: %w", err)
	}
	if p.aggregator, err = hotspot.New(cfg.Hotspot.WindowSize, cfg.Hotspot.MinCount); err != nil {
		return nil, fmt.Errorf("build hotspot aggregator: %w", err)
	}

	p.workers = cfg.Pipeline.Workers
	if p.workers <= 0 {
		p.workers = runtime.NumCPU()
	}
	return p, nil
}

// Run processes one batch. Sequences are compared column by column, so
// position i means the same locus in every record.
func (p *Pipeline) Run(ctx context.Context, recs []seq.Record) (res *Result, err error) {
	runID := uuid.NewString()
	log := p.log.With("run_id", runID)
	defer func() {
		switch {
		case errors.Is(err, ErrNoSequences):
			p.metrics.Run("empty")
		case err != nil:
			p.metrics.Run("error")
		default:
			p.metrics.Run("ok")
		}
	}()

	if len(recs) == 0 {
		return nil, ErrNoSequences
	}
	res = &Result{RunID: runID, Records: recs}
	seqs := seq.Seqs(recs)
	res.Summary.Sequences = len(seqs)
	p.observe(log, StageSequences, len(seqs), 0)

	t := time.Now()
	cons := p.analyzer.Analyze(seqs)
	res.Conserved, res.Candidates, res.Rejected = cons.Conserved, cons.Candidates, cons.Rejected
	res.Summary.Candidates = len(cons.Candidates)
	res.Summary.Rejected = len(cons.Rejected)
	res.Summary.Conserved = len(cons.Conserved)
	d := time.Since(t)
	p.observe(log, StageCandidates, res.Summary.Candidates, d)
	p.observe(log, StageRejected, res.Summary.Rejected, d)
	p.observe(log, StageConserved, res.Summary.Conserved, d)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t = time.Now()
	if res.Unstable, err = p.classify(ctx, seqs); err != nil {
		return nil, err
	}
	unstable := interval.Flatten(res.Unstable)
	res.Summary.Unstable = len(unstable)
	p.observe(log, StageUnstable, len(unstable), time.Since(t))

	t = time.Now()
	res.Filtered = interval.Filter(cons.Positions(), unstable, res.Conserved)
	res.Summary.Filtered = len(res.Filtered)
	p.observe(log, StageFiltered, len(res.Filtered), time.Since(t))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t = time.Now()
	uniq := p.extractor.Extract(res.Filtered, seqs)
	res.Unique, res.Contexts = uniq.Positions, uniq.Contexts
	res.Summary.Unique = len(res.Unique)
	p.observe(log, StageUnique, len(res.Unique), time.Since(t))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t = time.Now()
	agg := p.aggregator
	if p.cfg.Hotspot.Adaptive {
		mc := hotspot.AdaptiveMinCount(len(res.Unique), p.cfg.Hotspot.MinCount)
		if mc != agg.MinCount() {
			log.Debug("small panel, lowering hotspot threshold", "min_count", mc)
			if agg, err = hotspot.New(agg.Size(), mc); err != nil {
				return nil, err
			}
		}
	}
	res.Summary.MinCount = agg.MinCount()
	res.Hotspots = agg.Aggregate(res.Unique)
	if p.cfg.Hotspot.ExcludeUnstable {
		res.Hotspots = hotspot.FilterStable(res.Hotspots, unstable)
	}
	res.Summary.Hotspots = len(res.Hotspots)
	p.observe(log, StageHotspots, len(res.Hotspots), time.Since(t))

	return res, nil
}

// classify runs the region classifier over each sequence with bounded
// parallelism and tags intervals with their sequence index.
func (p *Pipeline) classify(ctx context.Context, seqs [][]byte) ([][]interval.Interval, error) {
	out := make([][]interval.Interval, len(seqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, s := range seqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ivs := p.classifier.Classify(s)
			for j := range ivs {
				ivs[j].Source = i
			}
			out[i] = ivs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Pipeline) observe(log *slog.Logger, stage string, n int, d time.Duration) {
	log.Info("stage complete", "stage", stage, "count", n, "elapsed", d)
	p.metrics.ObserveStage(stage, n, d)
}
