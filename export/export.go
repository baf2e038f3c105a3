// Package export turns a crawl session's records, edges, and extracted
// documents into persisted artifacts: a line-delimited JSON file, a
// per-document markdown tree organized by category, and a single
// relational JSON document. Each writer reports its own success or
// failure; one writer failing never aborts the others.
package export

import (
	"net/url"
	"sort"
	"strings"
	"time"

	scraper "github.com/NakaSato/datadog-scraper"
)

// Meta is shared run metadata handed to every writer.
type Meta struct {
	BaseURL    string
	ExportedAt time.Time
}

// Writer renders one export format for an enriched document set.
// Implementations must not mutate the documents or any state other
// writers read.
type Writer interface {
	// Name returns the format's manifest key.
	Name() string

	// Write persists the format under outDir and reports what happened.
	// Failures are recorded in the report, not returned through a side
	// channel, so the pipeline can keep running the remaining writers.
	Write(docs []scraper.ExportDocument, meta Meta, outDir string) scraper.FormatReport
}

// Pipeline runs the enrichment step once and feeds the result to each
// configured writer.
type Pipeline struct {
	Writers []Writer

	// Now is the clock used for run metadata; nil means time.Now.
	Now func() time.Time
}

// NewPipeline creates a Pipeline with the three standard writers.
func NewPipeline() *Pipeline {
	return &Pipeline{
		Writers: []Writer{
			&JSONLWriter{},
			&MarkdownWriter{},
			&RelationalWriter{},
		},
	}
}

// ExportAll enriches the document set and renders every format under
// outDir. The returned manifest has one entry per writer; entries are
// independent, so a failed format leaves the others' reports intact.
func (p *Pipeline) ExportAll(records []scraper.URLRecord, edges []scraper.LinkEdge, docs []scraper.ContentDocument, outDir string) scraper.Manifest {
	enriched := Enrich(records, edges, docs)

	now := p.Now
	if now == nil {
		now = time.Now
	}
	meta := Meta{
		BaseURL:    baseURL(records),
		ExportedAt: now().UTC(),
	}

	manifest := make(scraper.Manifest, len(p.Writers))
	for _, w := range p.Writers {
		manifest[w.Name()] = w.Write(enriched, meta, outDir)
	}
	return manifest
}

// Enrich combines each URLRecord with its ContentDocument and the
// graph-derived metadata: category, child URLs, and child count. The
// result is sorted by normalized URL so document ids are stable across
// runs. Child URLs are filtered to URLs that have records of their own,
// keeping every entry resolvable.
func Enrich(records []scraper.URLRecord, edges []scraper.LinkEdge, docs []scraper.ContentDocument) []scraper.ExportDocument {
	tree := scraper.NewTree(records, edges)

	byURL := make(map[string]scraper.ContentDocument, len(docs))
	for _, d := range docs {
		byURL[d.URL] = d
	}

	sorted := make([]scraper.URLRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].NormalizedURL < sorted[j].NormalizedURL
	})

	var enriched []scraper.ExportDocument
	for _, rec := range sorted {
		doc, ok := byURL[rec.NormalizedURL]
		if !ok {
			continue
		}

		var children []string
		for _, child := range tree.ChildrenOf(rec.NormalizedURL) {
			if tree.Has(child) {
				children = append(children, child)
			}
		}

		enriched = append(enriched, scraper.ExportDocument{
			Record:     rec,
			Document:   doc,
			Category:   Categorize(rec.NormalizedURL),
			ChildURLs:  children,
			ChildCount: len(children),
		})
	}
	return enriched
}

// Categorize derives the coarse grouping for a URL from its first
// non-empty path segment; the root path maps to "general".
func Categorize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "general"
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			return strings.ToLower(seg)
		}
	}
	return "general"
}

// baseURL returns the normalized seed of the crawl (the depth-0 record).
func baseURL(records []scraper.URLRecord) string {
	for _, rec := range records {
		if rec.Depth == 0 {
			return rec.NormalizedURL
		}
	}
	return ""
}
