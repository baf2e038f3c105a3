package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	scraper "github.com/NakaSato/datadog-scraper"
)

// RelationalFilename is the single artifact of the relational format.
const RelationalFilename = "documents.json"

var _ Writer = (*RelationalWriter)(nil)

// RelationalWriter emits documents.json: every document with its full
// graph context (parent, children, child count) plus a collection-level
// metadata block, as one indented JSON object.
type RelationalWriter struct{}

func (w *RelationalWriter) Name() string { return "relational" }

type relationalMetadata struct {
	Category    string    `json:"category"`
	Depth       int       `json:"depth"`
	ParentURL   string    `json:"parentUrl,omitempty"`
	ChildURLs   []string  `json:"childUrls"`
	ChildCount  int       `json:"childCount"`
	WordCount   int       `json:"wordCount"`
	ContentHash string    `json:"contentHash,omitempty"`
	ScrapedAt   time.Time `json:"scrapedAt"`
	OK          bool      `json:"ok"`
	Error       string    `json:"error,omitempty"`
}

type relationalDocument struct {
	ID       string             `json:"id"`
	URL      string             `json:"url"`
	Title    string             `json:"title"`
	Content  string             `json:"content"`
	Metadata relationalMetadata `json:"metadata"`
}

type relationalFile struct {
	Documents []relationalDocument `json:"documents"`
	Metadata  struct {
		TotalDocuments int            `json:"totalDocuments"`
		Categories     map[string]int `json:"categories"`
		BaseURL        string         `json:"baseUrl"`
		ExportedAt     time.Time      `json:"exportedAt"`
	} `json:"metadata"`
}

// Write renders the relational file into outDir.
func (w *RelationalWriter) Write(docs []scraper.ExportDocument, meta Meta, outDir string) scraper.FormatReport {
	var report scraper.FormatReport

	out := relationalFile{Documents: make([]relationalDocument, 0, len(docs))}
	out.Metadata.TotalDocuments = len(docs)
	out.Metadata.Categories = make(map[string]int)
	out.Metadata.BaseURL = meta.BaseURL
	out.Metadata.ExportedAt = meta.ExportedAt

	for i, d := range docs {
		children := d.ChildURLs
		if children == nil {
			children = []string{}
		}
		out.Documents = append(out.Documents, relationalDocument{
			ID:      fmt.Sprintf("doc_%d", i+1),
			URL:     d.Record.NormalizedURL,
			Title:   d.Document.Title,
			Content: d.Document.BodyText,
			Metadata: relationalMetadata{
				Category:    d.Category,
				Depth:       d.Record.Depth,
				ParentURL:   d.Record.ParentURL,
				ChildURLs:   children,
				ChildCount:  d.ChildCount,
				WordCount:   d.Document.WordCount,
				ContentHash: d.Document.ContentHash,
				ScrapedAt:   d.Document.ExtractedAt.UTC(),
				OK:          d.Document.OK,
				Error:       d.Document.Error,
			},
		})
		out.Metadata.Categories[d.Category]++
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		report.Err = scraper.Errorf(scraper.EEXPORT, "relational: marshal: %v", err)
		return report
	}
	data = append(data, '\n')

	if err := os.MkdirAll(outDir, 0755); err != nil {
		report.Err = scraper.Errorf(scraper.EEXPORT, "relational: create %s: %v", outDir, err)
		return report
	}
	path := filepath.Join(outDir, RelationalFilename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		report.Err = scraper.Errorf(scraper.EEXPORT, "relational: write %s: %v", path, err)
		return report
	}
	report.FilesWritten = 1
	report.BytesWritten = len(data)
	return report
}
