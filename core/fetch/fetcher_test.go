package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_Stdin(t *testing.T) {
	t.Parallel()

	f := New().WithStdin(strings.NewReader("<p>from stdin</p>"))

	res, err := f.Fetch(context.Background(), Stdin)
	require.NoError(t, err)
	assert.Equal(t, "<p>from stdin</p>", res.HTML)
	assert.Equal(t, "-", res.Source)
	assert.Zero(t, res.StatusCode)
}

func TestFetch_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bug.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>file</p>"), 0o644))

	res, err := New().Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "<p>file</p>", res.HTML)

	_, err = New().Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFetch_URL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		assert.Contains(t, r.Header.Get("User-Agent"), "adfpipe/")
		_, _ = w.Write([]byte("<p>remote</p>"))
	}))
	t.Cleanup(srv.Close)

	res, err := New().Fetch(context.Background(), srv.URL+"/ticket")
	require.NoError(t, err)
	assert.Equal(t, "<p>remote</p>", res.HTML)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	_, err = New().Fetch(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	assert.True(t, IsURL("https://example.com"))
	assert.True(t, IsURL("http://example.com"))
	assert.False(t, IsURL("example.com"))
	assert.False(t, IsURL("-"))
}
