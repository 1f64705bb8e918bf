package fasta

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"strings"
)

var gzipMagic = [2]byte{0x1f, 0x8b}

// ErrNotGzip is returned by Decompress when gzip was expected but the
// stream does not start with the gzip magic number.
var ErrNotGzip = errors.New("expected gzip data")

// Decompress sniffs the first two bytes of r and wraps it in a gzip reader
// when they match the gzip magic number. Nothing is seeked, so pipes and
// HTTP bodies work. With gzHint set, a non-empty stream lacking the magic
// number is an error instead of being passed through.
func Decompress(r io.Reader, gzHint bool) (io.Reader, error) {
	br := bufio.NewReader(r)
	sig, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(sig) == 2 && sig[0] == gzipMagic[0] && sig[1] == gzipMagic[1] {
		return gzip.NewReader(br)
	}
	if gzHint && len(sig) > 0 {
		return nil, ErrNotGzip
	}
	return br, nil
}

type readCloser struct {
	io.Reader
	close func() error
}

func (rc readCloser) Close() error { return rc.close() }

// Open returns a reader for path, "-" meaning stdin. Gzip input is detected
// through Decompress for files and stdin alike; a .gz suffix makes gzip
// mandatory. Closing does not close stdin.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		r, err := Decompress(os.Stdin, false)
		if err != nil {
			return nil, err
		}
		return readCloser{Reader: r, close: func() error { return nil }}, nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := Decompress(fh, strings.HasSuffix(path, ".gz"))
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	return readCloser{Reader: r, close: fh.Close}, nil
}
