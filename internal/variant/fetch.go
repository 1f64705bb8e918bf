// internal/variant/fetch.go
package variant

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"snpscan/core/fasta"
)

// Fetch streams a remote VCF (gzip detected by magic number) and returns up
// to limit variants. The body is only read as far as needed.
func Fetch(ctx context.Context, client *http.Client, url string, limit int) ([]Variant, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
	body, err := fasta.Decompress(resp.Body, strings.HasSuffix(url, ".gz"))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return Collect(ctx, body, limit)
}

// ReadFile parses a local VCF (plain, gzip or "-").
func ReadFile(ctx context.Context, path string, limit int) ([]Variant, error) {
	rc, err := fasta.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Collect(ctx, rc, limit)
}
