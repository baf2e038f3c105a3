// Package mock provides function-field mock implementations of the
// scraper's core interfaces for use in tests.
package mock

import (
	"context"

	scraper "github.com/NakaSato/datadog-scraper"
)

var _ scraper.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of scraper.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ scraper.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of scraper.Extractor.
type Extractor struct {
	ExtractFn func(pageURL, html string) (*scraper.ExtractResult, error)
}

func (e *Extractor) Extract(pageURL, html string) (*scraper.ExtractResult, error) {
	return e.ExtractFn(pageURL, html)
}

var _ scraper.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of scraper.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, baseURL string) ([]string, error)
}

func (l *LinkExtractor) ExtractLinks(html, baseURL string) ([]string, error) {
	return l.ExtractLinksFn(html, baseURL)
}
