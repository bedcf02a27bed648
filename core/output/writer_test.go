package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilenameFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		want   string
	}{
		{"-", "description"},
		{"", "description"},
		{"bug-report.html", "bug-report"},
		{"/tmp/tickets/OPS 7.htm", "OPS_7"},
		{"https://example.com/t/42", "example_com_t_42"},
		{"https://example.com/", "example_com"},
		{"http://localhost:8080/browse/OPS-7", "localhost_8080_browse_OPS-7"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FilenameFor(tt.source))
		})
	}
}

func TestWriter_Stream(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := &Writer{Stream: &buf}

	path, err := w.Write("-", []byte("hello\n"), ".txt")
	require.NoError(t, err)

	assert.False(t, w.ToFiles())
	assert.Empty(t, path)
	assert.Equal(t, "hello\n", buf.String())
}

func TestWriter_Files(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out", "nested")
	w, err := New(dir)
	require.NoError(t, err)
	assert.True(t, w.ToFiles())

	path, err := w.Write("tickets/bug.html", []byte(`{"type":"doc"}`), ".json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bug.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"doc"}`, string(data))
}

func TestNew_StdoutWhenNoDir(t *testing.T) {
	t.Parallel()

	w, err := New("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, w.Stream)
}

func TestCheckUnique(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckUnique([]string{"a/bug.html", "b/crash.html", "https://example.com/bug"}))

	err := CheckUnique([]string{"a/bug.html", "b/other.html", "b/bug.htm"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `a/bug.html and b/bug.htm would both be written as "bug"`)
}
