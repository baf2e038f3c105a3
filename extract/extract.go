// Package extract runs the per-page content extraction pass over the
// URLs discovered by a crawl. Extraction has no ordering dependency
// between documents, so fetches may be distributed across a bounded
// worker pool.
package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	scraper "github.com/NakaSato/datadog-scraper"
	"github.com/NakaSato/datadog-scraper/crawl"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// Runner extracts content for a set of URL records through an injected
// fetcher and extractor.
type Runner struct {
	Fetcher   scraper.Fetcher
	Extractor scraper.Extractor

	// Delay paces fetches the same way the crawler does.
	Delay time.Duration

	// Parallelism bounds the worker pool; values <= 1 run sequentially.
	Parallelism int
}

// ExtractAll produces exactly one ContentDocument per record, in record
// order. A page whose fetch or parse fails yields OK=false with a short
// error classification and empty content fields; it never aborts
// extraction for other pages.
func (r *Runner) ExtractAll(ctx context.Context, records []scraper.URLRecord) []scraper.ContentDocument {
	docs := make([]scraper.ContentDocument, len(records))

	pacer := crawl.NewPacer(r.Delay)

	g, gctx := errgroup.WithContext(ctx)
	limit := r.Parallelism
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, rec := range records {
		g.Go(func() error {
			docs[i] = r.extractOne(gctx, pacer, rec)
			return nil
		})
	}
	_ = g.Wait()

	return docs
}

// extractOne fetches and extracts a single page, classifying any failure
// into the document's Error field.
func (r *Runner) extractOne(ctx context.Context, pacer *crawl.Pacer, rec scraper.URLRecord) scraper.ContentDocument {
	doc := scraper.ContentDocument{
		URL:         rec.NormalizedURL,
		ExtractedAt: time.Now(),
	}

	if err := pacer.Wait(ctx); err != nil {
		doc.Error = scraper.ENETWORK
		return doc
	}

	body, err := r.Fetcher.Fetch(ctx, rec.NormalizedURL)
	if err != nil {
		doc.Error = scraper.ErrorCode(err)
		return doc
	}

	result, err := r.Extractor.Extract(rec.NormalizedURL, body)
	if err != nil {
		doc.Error = scraper.ErrorCode(err)
		return doc
	}

	doc.Title = result.Title
	doc.BodyText = result.BodyText
	doc.Headings = result.Headings
	doc.CodeBlocks = result.CodeBlocks
	doc.WordCount = wordCount(result.BodyText)
	doc.ContentHash = contentHash(result.BodyText)
	doc.OK = true
	return doc
}

// wordCount counts whitespace-delimited tokens.
func wordCount(text string) int {
	return len(strings.Fields(text))
}

// contentHash computes a hash of the body text using xxhash.
func contentHash(text string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(text))
}
