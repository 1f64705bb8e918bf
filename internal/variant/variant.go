// Package variant reads raw (chrom, pos, ref, alt) tuples from VCF input,
// local or remote, and bins them into fixed genomic windows. It sits
// outside the sequence pipeline and shares only the output layer with it.
package variant

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// DefaultLimit caps how many records a fetch collects.
	DefaultLimit = 20000
	// DefaultBinWidth and DefaultBinThreshold match the reference run:
	// 10 kb bins holding at least 15 variants.
	DefaultBinWidth     = 10000
	DefaultBinThreshold = 15
)

// Variant is one VCF body row. Pos is 1-based as in the file; Alt keeps
// comma-separated alternates unsplit.
type Variant struct {
	Chrom string
	Pos   int
	Ref   string
	Alt   string
}

// IsSNV reports a single-base ref with single-base alternates only.
func (v Variant) IsSNV() bool {
	if len(v.Ref) != 1 {
		return false
	}
	for _, a := range strings.Split(v.Alt, ",") {
		if len(a) != 1 {
			return false
		}
	}
	return true
}

// Parse streams VCF rows from r into fn, skipping meta/header lines and
// rows with fewer than five columns. limit <= 0 means no limit. A row with
// an unparsable POS is an error.
func Parse(ctx context.Context, r io.Reader, limit int, fn func(Variant) error) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	n, lineNo := 0, 0
	for sc.Scan() {
		lineNo++
		if lineNo%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(strings.TrimSpace(line), "\t")
		if len(parts) < 5 {
			continue
		}
		pos, err := strconv.Atoi(parts[1])
		if err != nil {
			return n, fmt.Errorf("vcf line %d: pos %q: %w", lineNo, parts[1], err)
		}
		if err := fn(Variant{Chrom: parts[0], Pos: pos, Ref: parts[3], Alt: parts[4]}); err != nil {
			return n, err
		}
		n++
		if limit > 0 && n >= limit {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("vcf scan: %w", err)
	}
	return n, nil
}

// Collect is Parse into a slice.
func Collect(ctx context.Context, r io.Reader, limit int) ([]Variant, error) {
	var out []Variant
	_, err := Parse(ctx, r, limit, func(v Variant) error {
		out = append(out, v)
		return nil
	})
	return out, err
}
