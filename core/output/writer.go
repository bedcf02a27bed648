// Package output handles file naming and writing for adfpipe outputs.
// Filenames are derived from the source: a file keeps its base name
// (bug-report.html → bug-report.json), a URL is flattened
// (https://example.com/t/42 → example_com_t_42.json) and stdin becomes
// "description".
package output

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const stdinName = "description"

// Writer writes rendered output to a directory, or to a stream when no
// directory is configured.
type Writer struct {
	OutputDir string
	Stream    io.Writer
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, output goes to os.Stdout.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		return &Writer{Stream: os.Stdout}, nil
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// ToFiles reports whether the writer creates files.
func (w *Writer) ToFiles() bool {
	return w.OutputDir != ""
}

// Write stores data for source and returns the path written, or "" when the
// data went to the stream.
func (w *Writer) Write(source string, data []byte, ext string) (string, error) {
	if !w.ToFiles() {
		if _, err := w.Stream.Write(data); err != nil {
			return "", fmt.Errorf("writing output: %w", err)
		}
		return "", nil
	}

	path := filepath.Join(w.OutputDir, FilenameFor(source)+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// FilenameFor derives a flat filename (without extension) from a source.
func FilenameFor(source string) string {
	if source == "-" || source == "" {
		return stdinName
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return filenameFromURL(source)
	}
	base := filepath.Base(source)
	return sanitize(strings.TrimSuffix(base, filepath.Ext(base)))
}

// CheckUnique fails when two sources map to the same filename, since the
// second write would replace the first.
func CheckUnique(sources []string) error {
	seen := make(map[string]string, len(sources))
	for _, src := range sources {
		name := FilenameFor(src)
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("sources %s and %s would both be written as %q", prev, src, name)
		}
		seen[name] = src
	}
	return nil
}

// filenameFromURL converts a URL into a flat filename.
// Example: https://example.com/docs/intro → example_com_docs_intro
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		// Fallback: sanitize the raw string.
		return sanitize(rawURL)
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces characters outside [A-Za-z0-9-] with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
