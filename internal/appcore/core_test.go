package appcore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snpscan/internal/config"
)

const panelFASTA = `>a
ATGCATGCATGC
>b
ACGCATGCATGC
>c
ATGCATACATGC
>d
ATGCATGCGTGC
>e
ATGCATGCATTC
`

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func panelOptions(t *testing.T) Options {
	cfg := config.Default()
	cfg.Consensus.MinCoverage = 3
	cfg.Context.Radius = 3
	cfg.Context.Uniqueness = "permissive"
	cfg.Hotspot.WindowSize = 5
	cfg.Hotspot.MinCount = 2
	return Options{
		FASTA:           []string{writeFile(t, "panel.fa", panelFASTA)},
		Config:          cfg,
		Format:          "records",
		NoMatchExitCode: ExitNoMatch,
	}
}

func TestRunWritesRecordsAndMetrics(t *testing.T) {
	o := panelOptions(t)
	o.MetricsFile = filepath.Join(t.TempDir(), "snpscan.prom")
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), &out, discard(), o))

	assert.True(t, strings.HasPrefix(out.String(), "Hotspot Positions: 6,8\nReference: ATGCA\nAlternate: ATACA\n"))
	prom, err := os.ReadFile(o.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `snpscan_pipeline_stage_items{stage="hotspots"} 5`)
	assert.Contains(t, string(prom), `snpscan_loader_sources_total{kind="fasta",status="ok"} 1`)
}

func TestRunNoHotspots(t *testing.T) {
	o := panelOptions(t)
	o.Config.Context.Uniqueness = "strict"
	o.Format = "text"
	var out bytes.Buffer
	err := Run(context.Background(), &out, discard(), o)
	assert.Equal(t, ExitNoMatch, Code(err))
	assert.Contains(t, out.String(), "# hotspots")

	o.NoMatchExitCode = 0
	assert.NoError(t, Run(context.Background(), &out, discard(), o))
}

func TestRunUsageErrors(t *testing.T) {
	o := panelOptions(t)
	o.Format = "xml"
	assert.Equal(t, ExitUsage, Code(Run(context.Background(), io.Discard, discard(), o)))

	o = panelOptions(t)
	o.Config.Hotspot.MinCount = 0
	err := Run(context.Background(), io.Discard, discard(), o)
	assert.Equal(t, ExitUsage, Code(err))
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRunNoInput(t *testing.T) {
	o := panelOptions(t)
	o.FASTA = []string{filepath.Join(t.TempDir(), "missing.fa")}
	assert.Equal(t, ExitRuntime, Code(Run(context.Background(), io.Discard, discard(), o)))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, io.Discard, discard(), panelOptions(t))
	assert.Equal(t, ExitCancelled, Code(err))
}

func TestCode(t *testing.T) {
	assert.Equal(t, ExitOK, Code(nil))
	assert.Equal(t, ExitRuntime, Code(errors.New("x")))
	assert.Equal(t, 7, Code(Exit(7, nil)))
	assert.Nil(t, Exit(ExitOK, nil))
	assert.Equal(t, ExitCancelled, Code(Exit(ExitRuntime, context.Canceled)))
}

func vcfBody(n int) string {
	var b strings.Builder
	b.WriteString("#CHROM\tPOS\tID\tREF\tALT\n")
	for i := 0; i < n; i++ {
		b.WriteString("1\t10\t.\tA\tG\n")
	}
	return b.String()
}

func TestRunVariantsFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, vcfBody(3))
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := RunVariants(context.Background(), &out, discard(), VariantOptions{
		URL: srv.URL + "/x.vcf", Limit: 100, BinWidth: 100, Threshold: 3,
		Format: "text", Header: true, NoMatchExitCode: ExitNoMatch, Client: srv.Client(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Chromosome\tStart\tEnd\tSNP_Count\tDNA_String\n1\t0\t100\t3\tAGAGAG\n", out.String())
}

func TestRunVariantsArgs(t *testing.T) {
	base := VariantOptions{BinWidth: 10, Threshold: 1, Format: "text"}
	assert.Equal(t, ExitUsage, Code(RunVariants(context.Background(), io.Discard, discard(), base)))

	both := base
	both.URL, both.File = "http://x", "y"
	assert.Equal(t, ExitUsage, Code(RunVariants(context.Background(), io.Discard, discard(), both)))

	file := base
	file.File = writeFile(t, "few.vcf", vcfBody(1))
	file.Threshold = 2
	file.NoMatchExitCode = ExitNoMatch
	assert.Equal(t, ExitNoMatch, Code(RunVariants(context.Background(), io.Discard, discard(), file)))
}
