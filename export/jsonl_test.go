package export_test

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/NakaSato/datadog-scraper/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("one parseable object per line", func(t *testing.T) {
		t.Parallel()

		records, edges, docs := corpus()
		enriched := export.Enrich(records, edges, docs)
		dir := t.TempDir()

		w := &export.JSONLWriter{}
		report := w.Write(enriched, export.Meta{BaseURL: "https://docs.example.com/", ExportedAt: fixedTime}, dir)
		require.NoError(t, report.Err)
		assert.Equal(t, 1, report.FilesWritten)
		assert.Greater(t, report.BytesWritten, 0)

		f, err := os.Open(filepath.Join(dir, export.JSONLFilename))
		require.NoError(t, err)
		defer f.Close()

		type line struct {
			ID       string `json:"id"`
			URL      string `json:"url"`
			Title    string `json:"title"`
			Content  string `json:"content"`
			Metadata struct {
				Category string `json:"category"`
				Depth    int    `json:"depth"`
			} `json:"metadata"`
		}

		var lines []line
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			var l line
			require.NoError(t, json.Unmarshal(scanner.Bytes(), &l), "line %d is not valid JSON", len(lines)+1)
			lines = append(lines, l)
		}
		require.NoError(t, scanner.Err())
		require.Len(t, lines, 3)

		// Ids are sequence numbers in normalized-URL order.
		assert.Equal(t, "doc_1", lines[0].ID)
		assert.Equal(t, "doc_2", lines[1].ID)
		assert.Equal(t, "doc_3", lines[2].ID)
		assert.Equal(t, "https://docs.example.com/", lines[0].URL)
		assert.Equal(t, "Documentation Home", lines[0].Title)
		assert.Equal(t, "general", lines[0].Metadata.Category)
		assert.Equal(t, "api", lines[1].Metadata.Category)
		assert.Equal(t, 1, lines[1].Metadata.Depth)

		// The failed page still gets a line, with empty content.
		assert.Equal(t, "https://docs.example.com/guides", lines[2].URL)
		assert.Empty(t, lines[2].Content)
	})

	t.Run("empty document set yields an empty file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := &export.JSONLWriter{}
		report := w.Write(nil, export.Meta{}, dir)
		require.NoError(t, report.Err)
		assert.Equal(t, 1, report.FilesWritten)
		assert.Equal(t, 0, report.BytesWritten)

		data := readFile(t, filepath.Join(dir, export.JSONLFilename))
		assert.Empty(t, data)
	})

	t.Run("unwritable directory is reported", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocked := filepath.Join(dir, "blocked")
		require.NoError(t, os.WriteFile(blocked, []byte("file in the way"), 0644))

		w := &export.JSONLWriter{}
		report := w.Write(nil, export.Meta{}, filepath.Join(blocked, "out"))
		require.Error(t, report.Err)
		assert.Equal(t, 0, report.FilesWritten)
	})
}
