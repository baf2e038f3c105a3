package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	scraper "github.com/NakaSato/datadog-scraper"
)

// JSONLFilename is the fixed artifact path of the line-delimited format,
// relative to the export directory.
const JSONLFilename = "documents.jsonl"

// Ensure JSONLWriter implements Writer at compile time.
var _ Writer = (*JSONLWriter)(nil)

// JSONLWriter emits one self-contained JSON object per document per
// line, parseable line-by-line with no shared wrapper. Document ids are
// sequence numbers in the enriched set's normalized-URL order, so they
// are stable across runs over the same corpus.
type JSONLWriter struct{}

// Name returns the format's manifest key.
func (w *JSONLWriter) Name() string { return "jsonl" }

type jsonlLine struct {
	ID       string        `json:"id"`
	URL      string        `json:"url"`
	Title    string        `json:"title"`
	Content  string        `json:"content"`
	Metadata jsonlMetadata `json:"metadata"`
}

type jsonlMetadata struct {
	Category  string    `json:"category"`
	Depth     int       `json:"depth"`
	Timestamp time.Time `json:"timestamp"`
}

// Write renders the line-delimited file under outDir.
func (w *JSONLWriter) Write(docs []scraper.ExportDocument, meta Meta, outDir string) scraper.FormatReport {
	var report scraper.FormatReport

	if err := os.MkdirAll(outDir, 0755); err != nil {
		report.Err = scraper.Errorf(scraper.EEXPORT, "jsonl: create output directory: %v", err)
		return report
	}

	path := filepath.Join(outDir, JSONLFilename)
	f, err := os.Create(path)
	if err != nil {
		report.Err = scraper.Errorf(scraper.EEXPORT, "jsonl: create %s: %v", path, err)
		return report
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	for i, d := range docs {
		line := jsonlLine{
			ID:      fmt.Sprintf("doc_%d", i+1),
			URL:     d.Record.NormalizedURL,
			Title:   d.Document.Title,
			Content: d.Document.BodyText,
			Metadata: jsonlMetadata{
				Category:  d.Category,
				Depth:     d.Record.Depth,
				Timestamp: d.Document.ExtractedAt.UTC(),
			},
		}
		b, err := json.Marshal(line)
		if err != nil {
			report.Err = scraper.Errorf(scraper.EEXPORT, "jsonl: marshal %s: %v", d.Record.NormalizedURL, err)
			return report
		}
		n, err := buf.Write(append(b, '\n'))
		report.BytesWritten += n
		if err != nil {
			report.Err = scraper.Errorf(scraper.EEXPORT, "jsonl: write %s: %v", path, err)
			return report
		}
	}
	if err := buf.Flush(); err != nil {
		report.Err = scraper.Errorf(scraper.EEXPORT, "jsonl: flush %s: %v", path, err)
		return report
	}

	report.FilesWritten = 1
	return report
}
