package main

import (
	"fmt"
	"sort"
	"time"

	scraper "github.com/NakaSato/datadog-scraper"
	"github.com/NakaSato/datadog-scraper/crawl"
	"github.com/NakaSato/datadog-scraper/export"
	"github.com/NakaSato/datadog-scraper/extract"
)

// Run executes the scrape command: crawl, extract, export.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	crawler := &crawl.Crawler{
		Fetcher: deps.Fetcher,
		Links:   deps.Links,
	}

	fmt.Fprintf(deps.Stdout, "Crawling %s (max depth %d)...\n", c.URL, c.MaxDepth)

	result, err := crawler.Crawl(deps.Ctx, crawl.Config{
		SeedURL:  c.URL,
		MaxDepth: c.MaxDepth,
		Delay:    c.Delay,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scraper.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawl %s: %d pages fetched, %d failed in %s\n",
		result.SessionID, result.Fetched, result.Failed, result.Duration.Round(time.Millisecond))

	runner := &extract.Runner{
		Fetcher:     deps.Fetcher,
		Extractor:   deps.Extractor,
		Delay:       c.Delay,
		Parallelism: c.Concurrency,
	}

	docs := runner.ExtractAll(deps.Ctx, result.Records)

	extracted := 0
	for _, d := range docs {
		if d.OK {
			extracted++
		}
	}
	fmt.Fprintf(deps.Stdout, "Extracted %d/%d documents\n", extracted, len(docs))

	pipeline := export.NewPipeline()
	manifest := pipeline.ExportAll(result.Records, result.Edges, docs, c.Out)

	names := make([]string, 0, len(manifest))
	for name := range manifest {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		report := manifest[name]
		if report.Err != nil {
			fmt.Fprintf(deps.Stderr, "export %s failed: %s\n", name, scraper.ErrorMessage(report.Err))
			continue
		}
		fmt.Fprintf(deps.Stdout, "export %s: %d files, %d bytes\n", name, report.FilesWritten, report.BytesWritten)
	}

	if failed := manifest.Failed(); len(failed) > 0 {
		return scraper.Errorf(scraper.EEXPORT, "%d of %d export formats failed", len(failed), len(manifest))
	}

	fmt.Fprintf(deps.Stdout, "Done. Output written to %s\n", c.Out)
	return nil
}
