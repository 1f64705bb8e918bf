// Package fasta reads FASTA input into seq.Records.
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"snpscan/core/seq"
)

// maxLine allows very long single-line sequences (64 MiB).
const maxLine = 64 * 1024 * 1024

// Scan parses FASTA from r and calls emit once per record. ASCII whitespace
// anywhere in sequence lines is dropped so column indices are not shifted;
// other symbols are kept as-is (no case folding). Cancellation is checked
// per line.
func Scan(ctx context.Context, r io.Reader, source string, emit func(seq.Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		id     string
		inRec  bool
		buf    = make([]byte, 0, 1<<16)
		lineNo int
	)
	flush := func() error {
		if !inRec {
			return nil
		}
		return emit(seq.Record{ID: id, Seq: append([]byte(nil), buf...), Source: source, Class: seq.ClassUnknown})
	}

	for sc.Scan() {
		lineNo++
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			id, inRec, buf = parseHeaderID(line[1:]), true, buf[:0]
			continue
		}
		if !inRec {
			return fmt.Errorf("fasta %s:%d: sequence data before first header", source, lineNo)
		}
		buf = appendResidues(buf, line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan %s: %w", source, err)
	}
	return flush()
}

// ReadFile loads every record of path (gzip and "-" handled by Open).
func ReadFile(ctx context.Context, path string) ([]seq.Record, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var recs []seq.Record
	err = Scan(ctx, rc, path, func(r seq.Record) error {
		recs = append(recs, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// appendResidues appends line to buf without spaces, tabs, CR, VT or FF.
func appendResidues(buf, line []byte) []byte {
	for _, b := range line {
		switch b {
		case ' ', '\t', '\r', '\v', '\f':
			continue
		}
		buf = append(buf, b)
	}
	return buf
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
