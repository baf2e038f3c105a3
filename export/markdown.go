package export

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	scraper "github.com/NakaSato/datadog-scraper"
)

// Fixed artifact paths of the structured-text format, relative to the
// export directory.
const (
	MarkdownDirname  = "markdown"
	IndexFilename    = "INDEX.md"
	SummaryFilename  = "SUMMARY.md"
	markdownFileMode = 0644
)

// maxSlugLen bounds filename slugs to a filesystem-safe length.
const maxSlugLen = 100

// Ensure MarkdownWriter implements Writer at compile time.
var _ Writer = (*MarkdownWriter)(nil)

// MarkdownWriter emits one markdown file per document into a directory
// tree keyed by category, plus an INDEX.md enumerating every document
// and a SUMMARY.md with aggregate counts. The writer stops at the first
// persistence error and records it in its report; earlier files remain
// on disk.
type MarkdownWriter struct{}

// Name returns the format's manifest key.
func (w *MarkdownWriter) Name() string { return "markdown" }

// Write renders the markdown tree under outDir.
func (w *MarkdownWriter) Write(docs []scraper.ExportDocument, meta Meta, outDir string) scraper.FormatReport {
	var report scraper.FormatReport

	root := filepath.Join(outDir, MarkdownDirname)
	if err := os.MkdirAll(root, 0755); err != nil {
		report.Err = scraper.Errorf(scraper.EEXPORT, "markdown: create %s: %v", root, err)
		return report
	}

	type indexEntry struct {
		title   string
		relPath string
		url     string
	}
	var entries []indexEntry
	categories := make(map[string]int)
	totalWords := 0
	used := make(map[string]bool)

	for _, d := range docs {
		dir := filepath.Join(root, d.Category)
		if err := os.MkdirAll(dir, 0755); err != nil {
			report.Err = scraper.Errorf(scraper.EEXPORT, "markdown: create %s: %v", dir, err)
			return report
		}

		slug := uniqueSlug(used, d.Category, Slugify(d.Record.NormalizedURL))
		relPath := d.Category + "/" + slug + ".md"

		body := renderDocument(d)
		path := filepath.Join(root, filepath.FromSlash(relPath))
		if err := os.WriteFile(path, []byte(body), markdownFileMode); err != nil {
			report.Err = scraper.Errorf(scraper.EEXPORT, "markdown: write %s: %v", path, err)
			return report
		}
		report.FilesWritten++
		report.BytesWritten += len(body)

		title := d.Document.Title
		if title == "" {
			title = d.Record.NormalizedURL
		}
		entries = append(entries, indexEntry{title: title, relPath: relPath, url: d.Record.NormalizedURL})
		categories[d.Category]++
		totalWords += d.Document.WordCount
	}

	var index strings.Builder
	index.WriteString("# Document Index\n\n")
	fmt.Fprintf(&index, "Total documents: %d\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&index, "- [%s](%s) — %s\n", e.title, e.relPath, e.url)
	}
	if err := w.writeAux(root, IndexFilename, index.String(), &report); err != nil {
		return report
	}

	var summary strings.Builder
	summary.WriteString("# Export Summary\n\n")
	fmt.Fprintf(&summary, "- Base URL: %s\n", meta.BaseURL)
	fmt.Fprintf(&summary, "- Exported at: %s\n", meta.ExportedAt.Format(time.RFC3339))
	fmt.Fprintf(&summary, "- Total documents: %d\n", len(entries))
	fmt.Fprintf(&summary, "- Total words: %d\n", totalWords)
	summary.WriteString("\n## Documents per category\n\n")
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&summary, "- %s: %d\n", name, categories[name])
	}
	if err := w.writeAux(root, SummaryFilename, summary.String(), &report); err != nil {
		return report
	}

	return report
}

// writeAux persists one of the tree-root files, accounting for it in the
// report.
func (w *MarkdownWriter) writeAux(root, name, content string, report *scraper.FormatReport) error {
	path := filepath.Join(root, name)
	if err := os.WriteFile(path, []byte(content), markdownFileMode); err != nil {
		report.Err = scraper.Errorf(scraper.EEXPORT, "markdown: write %s: %v", path, err)
		return err
	}
	report.FilesWritten++
	report.BytesWritten += len(content)
	return nil
}

// renderDocument formats one document: a fixed-order metadata block,
// a table of contents from the headings, the body text, then the code
// blocks fenced with their language tags.
func renderDocument(d scraper.ExportDocument) string {
	rec, doc := d.Record, d.Document

	parent := rec.ParentURL
	if parent == "" {
		parent = "none"
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "url: %s\n", rec.NormalizedURL)
	fmt.Fprintf(&b, "title: %s\n", doc.Title)
	fmt.Fprintf(&b, "category: %s\n", d.Category)
	fmt.Fprintf(&b, "depth: %d\n", rec.Depth)
	fmt.Fprintf(&b, "parent_url: %s\n", parent)
	fmt.Fprintf(&b, "word_count: %d\n", doc.WordCount)
	fmt.Fprintf(&b, "scraped_at: %s\n", doc.ExtractedAt.UTC().Format(time.RFC3339))
	b.WriteString("---\n\n")

	if doc.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	}

	if len(doc.Headings) > 0 {
		b.WriteString("## Contents\n\n")
		for _, h := range doc.Headings {
			indent := ""
			if h.Level > 1 {
				indent = strings.Repeat("  ", h.Level-1)
			}
			fmt.Fprintf(&b, "%s- %s\n", indent, h.Text)
		}
		b.WriteString("\n")
	}

	if doc.BodyText != "" {
		b.WriteString(doc.BodyText)
		b.WriteString("\n")
	}

	for _, cb := range doc.CodeBlocks {
		fmt.Fprintf(&b, "\n```%s\n%s\n```\n", cb.Language, strings.TrimRight(cb.Code, "\n"))
	}

	return b.String()
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a deterministic filename slug from a URL's path:
// lower-cased, unsafe characters and separators collapsed to single
// hyphens, truncated to a safe length. The root path yields "index".
func Slugify(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}

	s := slugUnsafe.ReplaceAllString(strings.ToLower(path), "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugLen {
		s = strings.Trim(s[:maxSlugLen], "-")
	}
	if s == "" {
		return "index"
	}
	return s
}

// uniqueSlug resolves slug collisions within a category directory by
// appending a numeric suffix.
func uniqueSlug(used map[string]bool, category, slug string) string {
	key := category + "/" + slug
	if !used[key] {
		used[key] = true
		return slug
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", slug, i)
		key = category + "/" + candidate
		if !used[key] {
			used[key] = true
			return candidate
		}
	}
}
