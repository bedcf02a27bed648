// Package cmd: convert command.
// This is the main command that orchestrates the pipeline:
// fetch → extract → convert → render → write.
//
// It handles flag validation, renderer selection, and parallel conversion of
// several sources.
package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/adfpipe/core"
	"github.com/gaurav-prasanna/adfpipe/core/convert"
	"github.com/gaurav-prasanna/adfpipe/core/extract"
	"github.com/gaurav-prasanna/adfpipe/core/fetch"
	"github.com/gaurav-prasanna/adfpipe/core/output"
	"github.com/gaurav-prasanna/adfpipe/core/render"
)

// Flag variables.
var (
	flagJSON      bool
	flagText      bool
	flagMarkdown  bool
	flagPDF       bool
	flagSelector  string
	flagOutputDir string
	flagWorkers   int
	flagTitle     string
)

var convertCmd = &cobra.Command{
	Use:   "convert <source>...",
	Short: "Convert editor HTML to ADF JSON (or text, Markdown, PDF)",
	Long: `Convert reads editor HTML from each source, converts it to an Atlassian
Document Format document and writes it in the selected output format.

A source is "-" for stdin, an http(s) URL, or a file path. With a single
source and no --output_dir the result goes to stdout.

Examples:
  adfpipe convert description.html
  cat description.html | adfpipe convert - --text
  adfpipe convert a.html b.html c.html --output_dir ./out --workers 8
  adfpipe convert https://intranet/ticket/42 --selector ".ql-editor" --pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output ADF JSON (default)")
	convertCmd.Flags().BoolVar(&flagText, "text", false, "Output normalized wiki text")
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")

	addSourceFlags(convertCmd)
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: stdout)")
	convertCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Sources converted in parallel (default from config)")
	convertCmd.Flags().StringVar(&flagTitle, "title", "", "Title printed at the top of PDF output")
}

// addSourceFlags registers the flags that control how sources are read.
func addSourceFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagSelector, "selector", "", "CSS selector of the editor container inside a full page")
}

// newPipeline builds the shared stages from config and flags.
func newPipeline() *pipeline {
	selector := cfg.Convert.Selector
	if flagSelector != "" {
		selector = flagSelector
	}
	return &pipeline{
		fetcher:   fetch.New(),
		extractor: extract.New(selector),
		converter: convert.New(),
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	// --- Validate flags ---
	format, err := selectFormat()
	if err != nil {
		return err
	}
	renderer, err := selectRenderer(format)
	if err != nil {
		return err
	}

	outputDir := cfg.Output.Dir
	if flagOutputDir != "" {
		outputDir = flagOutputDir
	}
	if len(args) > 1 && outputDir == "" {
		return fmt.Errorf("--output_dir is required when converting more than one source")
	}

	workers := cfg.Convert.Workers
	if flagWorkers > 0 {
		workers = flagWorkers
	}

	writer, err := output.New(outputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	if writer.ToFiles() {
		if err := output.CheckUnique(args); err != nil {
			return err
		}
	}

	p := newPipeline()
	ctx := cmd.Context()

	var (
		mu     sync.Mutex
		failed int
	)

	var g errgroup.Group
	g.SetLimit(workers)

	for _, source := range args {
		g.Go(func() error {
			path, err := convertOne(ctx, p, renderer, writer, source)
			if err != nil {
				log.Error().Err(err).Str("source", source).Msg("Conversion failed")
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			if path != "" {
				fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d/%d sources failed", failed, len(args))
	}
	return nil
}

// convertOne processes a source through the pipeline and writes the result.
func convertOne(
	ctx context.Context,
	p *pipeline,
	renderer core.Renderer,
	writer *output.Writer,
	source string,
) (string, error) {
	res, err := p.process(ctx, source)
	if err != nil {
		return "", err
	}
	res.Meta.Title = flagTitle

	log.Debug().
		Str("source", source).
		Int("paragraphs", len(res.Document.Content)).
		Int("images", len(res.Refs.Images)).
		Int("links", len(res.Refs.Links)).
		Msg("Converted source")

	data, err := renderer.Render(res)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	return writer.Write(source, data, renderer.Extension())
}

// selectFormat checks that at most one output format flag is set and falls
// back to the configured format.
func selectFormat() (string, error) {
	formats := map[string]bool{
		"json":     flagJSON,
		"text":     flagText,
		"markdown": flagMarkdown,
		"pdf":      flagPDF,
	}

	selected := ""
	count := 0
	for name, set := range formats {
		if set {
			selected = name
			count++
		}
	}

	if count > 1 {
		return "", fmt.Errorf("only one output format allowed per run (got %d)", count)
	}
	if count == 0 {
		return cfg.Output.Format, nil
	}
	return selected, nil
}

// selectRenderer creates the Renderer for a format name.
func selectRenderer(format string) (core.Renderer, error) {
	switch format {
	case "json":
		return render.NewJSONRenderer(), nil
	case "text":
		return render.NewTextRenderer(), nil
	case "markdown":
		return render.NewMarkdownRenderer(), nil
	case "pdf":
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q: use --json, --text, --markdown or --pdf", format)
	}
}
