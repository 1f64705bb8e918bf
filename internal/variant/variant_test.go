package variant

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vcf = `##fileformat=VCFv4.2
#CHROM	POS	ID	REF	ALT	QUAL
1	100	rs1	A	G	.
1	150	rs2	C	T,G	.
short	row
2	20001	rs3	GA	G	.
`

func gz(t *testing.T, s string) []byte {
	t.Helper()
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return b.Bytes()
}

func TestCollectSkipsHeadersAndShortRows(t *testing.T) {
	vs, err := Collect(context.Background(), strings.NewReader(vcf), 0)
	require.NoError(t, err)
	require.Len(t, vs, 3)
	assert.Equal(t, Variant{Chrom: "1", Pos: 150, Ref: "C", Alt: "T,G"}, vs[1])
	assert.True(t, vs[0].IsSNV())
	assert.True(t, vs[1].IsSNV())
	assert.False(t, vs[2].IsSNV())
}

func TestCollectLimit(t *testing.T) {
	vs, err := Collect(context.Background(), strings.NewReader(vcf), 2)
	require.NoError(t, err)
	assert.Len(t, vs, 2)
}

func TestCollectBadPos(t *testing.T) {
	_, err := Collect(context.Background(), strings.NewReader("1\tx\t.\tA\tG\n"), 0)
	require.Error(t, err)
}

func TestFetchGzip(t *testing.T) {
	body := gz(t, vcf)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	vs, err := Fetch(context.Background(), srv.Client(), srv.URL+"/release.vcf.gz", 0)
	require.NoError(t, err)
	assert.Len(t, vs, 3)
}

func TestFetchPlain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(vcf))
	}))
	defer srv.Close()
	vs, err := Fetch(context.Background(), srv.Client(), srv.URL+"/x.vcf", 1)
	require.NoError(t, err)
	assert.Len(t, vs, 1)
}

func TestFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, err := Fetch(context.Background(), srv.Client(), srv.URL+"/missing.vcf.gz", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestReadFileGzip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x.vcf.gz")
	require.NoError(t, os.WriteFile(p, gz(t, vcf), 0o644))
	vs, err := ReadFile(context.Background(), p, 0)
	require.NoError(t, err)
	assert.Len(t, vs, 3)
}

func TestBin(t *testing.T) {
	vs := []Variant{
		{Chrom: "2", Pos: 5, Ref: "A", Alt: "C"},
		{Chrom: "1", Pos: 10, Ref: "A", Alt: "G"},
		{Chrom: "1", Pos: 99, Ref: "T", Alt: "C,G"},
		{Chrom: "1", Pos: 100, Ref: "G", Alt: "A"},
		{Chrom: "2", Pos: 7, Ref: "T", Alt: "A"},
	}
	bins, err := Bin(vs, 100, 2)
	require.NoError(t, err)
	require.Len(t, bins, 2)
	assert.Equal(t, Hotspot{Chrom: "1", Start: 0, End: 100, Count: 2, DNA: "AGTCG"}, bins[0])
	assert.Equal(t, Hotspot{Chrom: "2", Start: 0, End: 100, Count: 2, DNA: "ACTA"}, bins[1])

	_, err = Bin(vs, 0, 1)
	assert.Error(t, err)
	_, err = Bin(vs, 10, 0)
	assert.Error(t, err)
}
