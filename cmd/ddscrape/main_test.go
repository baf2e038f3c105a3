package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	main "github.com/NakaSato/datadog-scraper/cmd/ddscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<html><head><title>Docs</title></head><body>
			<main><h1>Docs Home</h1><p>Start here.</p>
			<a href="/api/metrics">Metrics</a></main></body></html>`))
	})
	mux.HandleFunc("/api/metrics", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main><h1>Metrics API</h1>
			<p>Submit metrics.</p>
			<pre><code class="language-go">client.Submit()</code></pre>
			</main></body></html>`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("end to end scrape", func(t *testing.T) {
		t.Parallel()

		srv := testSite(t)
		out := filepath.Join(t.TempDir(), "docs")

		var stdout, stderr bytes.Buffer
		m := main.NewMain()
		err := m.Run(context.Background(),
			[]string{srv.URL + "/", "--max-depth", "2", "--delay", "0s", "--out", out},
			&stdout, &stderr)
		require.NoError(t, err, "stderr: %s", stderr.String())

		assert.Contains(t, stdout.String(), "2 pages fetched")
		assert.Contains(t, stdout.String(), "Extracted 2/2 documents")
		assert.Contains(t, stdout.String(), "Done.")

		assert.FileExists(t, filepath.Join(out, "documents.jsonl"))
		assert.FileExists(t, filepath.Join(out, "documents.json"))
		assert.FileExists(t, filepath.Join(out, "markdown", "INDEX.md"))
		assert.FileExists(t, filepath.Join(out, "markdown", "SUMMARY.md"))

		data, err := os.ReadFile(filepath.Join(out, "markdown", "api", "api-metrics.md"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "# Metrics API")
		assert.Contains(t, string(data), "```go")
	})

	t.Run("export failure is reported per format", func(t *testing.T) {
		t.Parallel()

		srv := testSite(t)

		// A plain file where the output directory should go makes every
		// writer fail.
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("in the way"), 0644))
		out := filepath.Join(blocker, "docs")

		var stdout, stderr bytes.Buffer
		m := main.NewMain()
		err := m.Run(context.Background(),
			[]string{srv.URL + "/", "--max-depth", "1", "--delay", "0s", "--out", out},
			&stdout, &stderr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "3 of 3 export formats failed")
		assert.Contains(t, stderr.String(), "export jsonl failed")
		assert.Contains(t, stderr.String(), "export markdown failed")
		assert.Contains(t, stderr.String(), "export relational failed")
	})

	t.Run("no arguments shows help and errors", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		m := main.NewMain()
		err := m.Run(context.Background(), nil, &stdout, &stderr)
		require.Error(t, err)
	})

	t.Run("help flag succeeds", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		m := main.NewMain()
		err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "ddscrape")
	})

	t.Run("invalid depth is rejected before any fetch", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		m := main.NewMain()
		err := m.Run(context.Background(),
			[]string{"https://docs.example.com/", "--max-depth", "0", "--out", t.TempDir()},
			&stdout, &stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "max depth")
	})
}
