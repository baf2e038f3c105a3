// Package crawl implements the recursive link-discovery engine: a
// depth-first, deduplicated traversal of a documentation site's page
// graph that produces URL records and parent→child edges for the
// extraction and export stages.
package crawl

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	scraper "github.com/NakaSato/datadog-scraper"
)

// Config holds the parameters of one crawl invocation.
type Config struct {
	// SeedURL is the absolute URL the traversal starts from.
	SeedURL string

	// MaxDepth bounds the traversal: pages MaxDepth hops from the seed
	// are still fetched for their links, but their children are never
	// descended into. Must be >= 1.
	MaxDepth int

	// Delay is the pause enforced before each fetch except the first.
	// Must be >= 0.
	Delay time.Duration
}

// Validate returns ECONFIG if the configuration would be rejected before
// any fetch occurs.
func (c Config) Validate() error {
	if c.SeedURL == "" {
		return scraper.Errorf(scraper.ECONFIG, "seed URL required")
	}
	if c.MaxDepth < 1 {
		return scraper.Errorf(scraper.ECONFIG, "max depth must be >= 1, got %d", c.MaxDepth)
	}
	if c.Delay < 0 {
		return scraper.Errorf(scraper.ECONFIG, "delay must not be negative, got %s", c.Delay)
	}
	return nil
}

// Result holds the outcome of a crawl session.
type Result struct {
	// SessionID uniquely identifies the crawl session.
	SessionID string

	// SeedURL is the normalized seed the traversal started from.
	SeedURL string

	// Records lists one URLRecord per distinct normalized URL whose
	// fetch succeeded, in discovery order.
	Records []scraper.URLRecord

	// Edges lists the parent→child links discovered on fetched pages,
	// deduplicated by pair.
	Edges []scraper.LinkEdge

	// Fetched and Failed count page fetches by outcome.
	Fetched int
	Failed  int

	// Duration is the wall-clock time of the traversal.
	Duration time.Duration
}

// Crawler walks the link graph from a seed URL. The fetch capability and
// the link extraction are injected; the crawler owns only the traversal
// policy and the session state.
type Crawler struct {
	Fetcher scraper.Fetcher
	Links   scraper.LinkExtractor

	running atomic.Bool
}

// workItem is one pending page visit on the explicit traversal stack.
// Depth and parent are fixed here at first reservation, before the fetch.
type workItem struct {
	url    string
	depth  int
	parent string
}

// Crawl performs a depth-first traversal from cfg.SeedURL down to
// cfg.MaxDepth and returns the discovered records and edges.
//
// A URL is reserved exactly once per session; failed fetches stay
// reserved (no retry within the session) but produce no record and no
// outgoing edges. Links leaving the seed's host are discarded without
// reservation. Only one Crawl may be active per Crawler; an overlapping
// call fails with ECONFLICT.
func (c *Crawler) Crawl(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed, err := scraper.NormalizeURL(cfg.SeedURL)
	if err != nil {
		return nil, scraper.Errorf(scraper.ECONFIG, "seed URL: %s", scraper.ErrorMessage(err))
	}
	seedURL, err := url.Parse(seed)
	if err != nil {
		return nil, scraper.Errorf(scraper.ECONFIG, "seed URL %q: %v", seed, err)
	}

	if !c.running.CompareAndSwap(false, true) {
		return nil, scraper.Errorf(scraper.ECONFLICT, "a crawl session is already active")
	}
	defer c.running.Store(false)

	sess := newSession()
	pacer := NewPacer(cfg.Delay)
	start := time.Now()

	result := &Result{
		SessionID: sess.id,
		SeedURL:   seed,
	}

	stack := []workItem{{url: seed, depth: 0}}
	sess.tracker.TryReserve(seed)

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := pacer.Wait(ctx); err != nil {
			break
		}
		body, err := c.Fetcher.Fetch(ctx, item.url)
		if err != nil {
			// The URL stays reserved so it is not retried this session;
			// siblings continue.
			result.Failed++
			continue
		}
		result.Fetched++

		sess.addRecord(scraper.URLRecord{
			URL:           item.url,
			NormalizedURL: item.url,
			Depth:         item.depth,
			ParentURL:     item.parent,
			FirstSeenAt:   time.Now(),
		})

		links, err := c.Links.ExtractLinks(body, item.url)
		if err != nil {
			// A page whose links cannot be parsed contributes no edges.
			continue
		}

		children := c.resolveLinks(sess, seedURL, item, links, cfg.MaxDepth)

		// Push in reverse so pops follow document order of links.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	result.Records, result.Edges = sess.snapshot()
	result.Duration = time.Since(start)
	return result, nil
}

// resolveLinks normalizes a fetched page's outbound links, records edges,
// and returns the work items for first-reserved children within the depth
// bound, in document order.
func (c *Crawler) resolveLinks(sess *session, seedURL *url.URL, item workItem, links []string, maxDepth int) []workItem {
	var children []workItem
	for _, link := range links {
		u, err := url.Parse(link)
		if err != nil || u.Host != seedURL.Host {
			// Out-of-domain and unparseable links are discarded without
			// polluting the dedup state.
			continue
		}
		norm, err := scraper.NormalizeURL(link)
		if err != nil {
			continue
		}

		sess.addEdge(item.url, norm)

		if !sess.tracker.TryReserve(norm) {
			continue
		}
		if item.depth+1 > maxDepth {
			// Reserved so it is excluded from re-discovery, but never
			// fetched or recorded.
			continue
		}
		children = append(children, workItem{
			url:    norm,
			depth:  item.depth + 1,
			parent: item.url,
		})
	}
	return children
}
