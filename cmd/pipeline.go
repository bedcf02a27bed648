// Package cmd: shared pipeline.
// Runs one source through fetch, extract and convert for every command.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/gaurav-prasanna/adfpipe/core"
	"github.com/gaurav-prasanna/adfpipe/core/convert"
)

// pipeline holds the stages shared by every command.
type pipeline struct {
	fetcher   core.Fetcher
	extractor core.Extractor
	converter *convert.Converter
}

// process runs a single source through fetch → extract → convert.
func (p *pipeline) process(ctx context.Context, source string) (*core.Result, error) {
	// 1. Fetch
	fetched, err := p.fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	// 2. Extract the editor content
	content, err := p.extractor.Extract(fetched.HTML)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	// 3. Convert to ADF
	res := p.converter.Run(content)
	res.Meta = core.Meta{
		Source:      source,
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return res, nil
}
