// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"snpscan/internal/config"
	"snpscan/internal/loader"
	"snpscan/internal/metrics"
	"snpscan/internal/pipeline"
	"snpscan/internal/variant"
	"snpscan/internal/writers"
)

// Exit codes shared by every command.
const (
	ExitOK        = 0
	ExitNoMatch   = 1
	ExitUsage     = 2
	ExitRuntime   = 3
	ExitCancelled = 130
)

// ExitError carries a process exit code. Err may be nil for silent exits
// such as "no hotspots found".
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// Exit wraps err with code; nil err and code 0 give nil.
func Exit(code int, err error) error {
	if code == ExitOK && err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// Code maps any error to an exit code. Cancellation wins over everything.
func Code(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCancelled
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitRuntime
}

// Options drive one pipeline run.
type Options struct {
	FASTA           []string
	Tables          []string
	Config          config.Config
	Format          string
	Header          bool
	MetricsFile     string
	NoMatchExitCode int
}

// Run loads every source, runs the pipeline and writes the result to
// stdout. The returned error is an *ExitError (or wraps context.Canceled).
func Run(ctx context.Context, stdout io.Writer, log *slog.Logger, o Options) error {
	if _, ok := writers.ResultWriters[o.Format]; !ok {
		return Exit(ExitUsage, fmt.Errorf("unsupported output %q (want one of %v)", o.Format, writers.ResultFormats()))
	}
	m := metrics.New()
	p, err := pipeline.New(o.Config, pipeline.WithLogger(log), pipeline.WithMetrics(m))
	if err != nil {
		return Exit(ExitUsage, err)
	}

	recs, rep, err := loader.New(o.Config.Input.Classes, log, m).Load(ctx, o.FASTA, o.Tables)
	if err != nil {
		return exitRuntime(err)
	}
	log.Debug("inputs loaded", "sequences", rep.Loaded, "failed_sources", len(rep.Failed))

	res, err := p.Run(ctx, recs)
	if err != nil {
		return exitRuntime(err)
	}

	outw := bufio.NewWriter(stdout)
	if err := writers.WriteResult(o.Format, outw, res, writers.Options{Header: o.Header}); err != nil {
		return Exit(ExitRuntime, fmt.Errorf("write %s: %w", o.Format, err))
	}
	if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		return Exit(ExitRuntime, err)
	}

	if o.MetricsFile != "" {
		if err := m.WriteTextfile(o.MetricsFile); err != nil {
			return Exit(ExitRuntime, fmt.Errorf("write metrics: %w", err))
		}
	}
	if res.Summary.Hotspots == 0 {
		log.Info("no hotspots found", "run_id", res.RunID)
		return Exit(o.NoMatchExitCode, nil)
	}
	return nil
}

// VariantOptions drive one VCF binning run. Exactly one of URL and File
// is set.
type VariantOptions struct {
	URL             string
	File            string
	Limit           int
	BinWidth        int
	Threshold       int
	Timeout         time.Duration
	Format          string
	Header          bool
	NoMatchExitCode int
	Client          *http.Client
}

// RunVariants fetches or reads a VCF, bins it and writes the dense bins.
func RunVariants(ctx context.Context, stdout io.Writer, log *slog.Logger, o VariantOptions) error {
	if _, ok := writers.VariantWriters[o.Format]; !ok {
		return Exit(ExitUsage, fmt.Errorf("unsupported output %q (want one of %v)", o.Format, writers.VariantFormats()))
	}
	if (o.URL == "") == (o.File == "") {
		return Exit(ExitUsage, errors.New("exactly one of --url and --file is required"))
	}
	if o.BinWidth <= 0 || o.Threshold < 1 {
		return Exit(ExitUsage, fmt.Errorf("bin width must be > 0 and threshold >= 1 (got %d, %d)", o.BinWidth, o.Threshold))
	}

	var (
		vs  []variant.Variant
		err error
	)
	if o.URL != "" {
		client := o.Client
		if client == nil {
			client = &http.Client{Timeout: o.Timeout}
		}
		log.Info("fetching variants", "url", o.URL, "limit", o.Limit)
		vs, err = variant.Fetch(ctx, client, o.URL, o.Limit)
	} else {
		vs, err = variant.ReadFile(ctx, o.File, o.Limit)
	}
	if err != nil {
		return exitRuntime(err)
	}

	bins, err := variant.Bin(vs, o.BinWidth, o.Threshold)
	if err != nil {
		return Exit(ExitUsage, err)
	}
	log.Info("variants binned", "variants", len(vs), "hotspots", len(bins))

	outw := bufio.NewWriter(stdout)
	if err := writers.WriteVariants(o.Format, outw, bins, writers.Options{Header: o.Header}); err != nil {
		return Exit(ExitRuntime, fmt.Errorf("write %s: %w", o.Format, err))
	}
	if err := outw.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		return Exit(ExitRuntime, err)
	}
	if len(bins) == 0 {
		return Exit(o.NoMatchExitCode, nil)
	}
	return nil
}

func exitRuntime(err error) error {
	if errors.Is(err, context.Canceled) {
		return Exit(ExitCancelled, err)
	}
	return Exit(ExitRuntime, err)
}
