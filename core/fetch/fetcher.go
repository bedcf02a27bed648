// Package fetch implements the Fetcher interface.
// A source is "-" for stdin, an http(s) URL, or a path to a local file.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gaurav-prasanna/adfpipe/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "adfpipe/1.0 (https://github.com/gaurav-prasanna/adfpipe)"

	// Stdin is the source name that reads from standard input.
	Stdin = "-"
)

// SourceFetcher reads HTML from stdin, files or web pages.
type SourceFetcher struct {
	client *http.Client
	stdin  io.Reader
}

// New creates a SourceFetcher with a sensible HTTP timeout.
func New() *SourceFetcher {
	return &SourceFetcher{
		client: &http.Client{Timeout: defaultTimeout},
		stdin:  os.Stdin,
	}
}

// WithStdin replaces the reader used for the "-" source.
func (f *SourceFetcher) WithStdin(r io.Reader) *SourceFetcher {
	f.stdin = r
	return f
}

// IsURL reports whether source is fetched over HTTP.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Fetch reads the HTML content of the given source.
func (f *SourceFetcher) Fetch(ctx context.Context, source string) (*core.FetchResult, error) {
	switch {
	case source == Stdin:
		body, err := io.ReadAll(f.stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return &core.FetchResult{Source: source, HTML: string(body)}, nil

	case IsURL(source):
		return f.fetchURL(ctx, source)

	default:
		body, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}
		return &core.FetchResult{Source: source, HTML: string(body)}, nil
	}
}

func (f *SourceFetcher) fetchURL(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		Source:     url,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}
