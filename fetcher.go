package scraper

import "context"

// Fetcher retrieves page bodies from URLs. It is the injected fetch
// capability of the pipeline: the crawler and the content extractor both
// depend on it rather than on a concrete HTTP client.
type Fetcher interface {
	// Fetch performs a single GET of the URL and returns the response
	// body. A transport failure or a non-2xx status yields an ENETWORK
	// error. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
