package fasta

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snpscan/core/seq"
)

const plain = `>seq1 first record
ACGT
acgn
>seq2
NNnn

>empty
`

// writeGz creates a gzipped FASTA file without a .gz suffix, so detection
// has to go through the magic number.
func writeGz(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panel.fa")
	fh, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(fh)
	_, err = gw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, fh.Close())
	return path
}

func TestScanRecords(t *testing.T) {
	var got []seq.Record
	err := Scan(context.Background(), strings.NewReader(plain), "mem", func(r seq.Record) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "seq1", got[0].ID)
	assert.Equal(t, "ACGTacgn", string(got[0].Seq))
	assert.Equal(t, "NNnn", string(got[1].Seq))
	assert.Equal(t, "empty", got[2].ID)
	assert.Empty(t, got[2].Seq)
	assert.Equal(t, seq.ClassUnknown, got[0].Class)
	assert.Equal(t, "mem", got[0].Source)
}

func TestScanRejectsHeaderlessData(t *testing.T) {
	err := Scan(context.Background(), strings.NewReader("ACGT\n>x\nA\n"), "bad.fa", func(seq.Record) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.fa:1")
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := 0
	err := Scan(ctx, strings.NewReader(plain), "mem", func(seq.Record) error { n++; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}

func TestReadFileGzip(t *testing.T) {
	recs, err := ReadFile(context.Background(), writeGz(t, plain))
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.fa"))
	require.Error(t, err)
}

func TestReadStdin(t *testing.T) {
	orig := os.Stdin
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = r
	defer func() { os.Stdin = orig }()
	go func() {
		_, _ = io.WriteString(w, plain)
		_ = w.Close()
	}()
	recs, err := ReadFile(context.Background(), "-")
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestScanDropsInteriorWhitespace(t *testing.T) {
	var got []seq.Record
	err := Scan(context.Background(), strings.NewReader(">a\nAC GT\nA\tC\r\n"), "mem", func(r seq.Record) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ACGTAC", string(got[0].Seq))
	assert.Len(t, got[0].Seq, 6)
}

func TestDecompressStream(t *testing.T) {
	// a pipe cannot seek, so detection must work on buffered bytes only
	pr, pw := io.Pipe()
	go func() {
		gw := gzip.NewWriter(pw)
		_, _ = io.WriteString(gw, plain)
		_ = gw.Close()
		_ = pw.Close()
	}()
	r, err := Decompress(pr, false)
	require.NoError(t, err)
	var n int
	require.NoError(t, Scan(context.Background(), r, "pipe", func(seq.Record) error { n++; return nil }))
	assert.Equal(t, 3, n)
}

func TestDecompressPlainAndHint(t *testing.T) {
	r, err := Decompress(strings.NewReader(plain), false)
	require.NoError(t, err)
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, plain, string(b))

	_, err = Decompress(strings.NewReader(plain), true)
	assert.ErrorIs(t, err, ErrNotGzip)

	r, err = Decompress(strings.NewReader(""), true)
	require.NoError(t, err)
	b, err = io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestReadStdinGzip(t *testing.T) {
	orig := os.Stdin
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdin = r
	defer func() { os.Stdin = orig }()
	go func() {
		gw := gzip.NewWriter(w)
		_, _ = io.WriteString(gw, plain)
		_ = gw.Close()
		_ = w.Close()
	}()
	recs, err := ReadFile(context.Background(), "-")
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}
