// internal/loader/table.go
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"snpscan/core/fasta"
	"snpscan/core/seq"
)

// ErrMissingColumn is returned for tables without sequence/class headers.
var ErrMissingColumn = errors.New("missing column")

// ReadTable loads a tab-delimited file whose header names a "sequence" and
// a "class" column. Row ids are "<file base name>_<row>", counting data rows
// from 0 before filtering. keep decides which class labels survive.
func ReadTable(ctx context.Context, path string, keep func(class int) bool) ([]seq.Record, error) {
	rc, err := fasta.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ParseTable(ctx, rc, path, keep)
}

// ParseTable is ReadTable over an open reader.
func ParseTable(ctx context.Context, r io.Reader, source string, keep func(class int) bool) ([]seq.Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: empty table", source)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: header: %w", source, err)
	}
	seqCol, classCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "sequence":
			seqCol = i
		case "class":
			classCol = i
		}
	}
	if seqCol < 0 || classCol < 0 {
		return nil, fmt.Errorf("%s: %w: need sequence and class, have %v", source, ErrMissingColumn, header)
	}

	base := filepath.Base(source)
	var out []seq.Record
	for row := 0; ; row++ {
		if row%1024 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", source, row, err)
		}
		if seqCol >= len(fields) || classCol >= len(fields) {
			return nil, fmt.Errorf("%s: row %d: %d fields, header has %d", source, row, len(fields), len(header))
		}
		class, err := strconv.Atoi(strings.TrimSpace(fields[classCol]))
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: class %q: %w", source, row, fields[classCol], err)
		}
		if keep != nil && !keep(class) {
			continue
		}
		out = append(out, seq.Record{
			ID:     fmt.Sprintf("%s_%d", base, row),
			Seq:    []byte(strings.TrimSpace(fields[seqCol])),
			Source: source,
			Class:  class,
		})
	}
	return out, nil
}
