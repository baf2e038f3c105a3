package scraper

import (
	"net/url"
	"strings"
	"time"
)

// NormalizeURL returns the canonical form of a URL used as the dedup key
// for a crawl session: the fragment is removed and trailing slashes are
// collapsed (path "/x/" becomes "/x"; the root path is left alone).
// Query strings and letter case are preserved. The function is
// idempotent.
//
// Returns EINVALID if the input cannot be parsed as an absolute URL.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "malformed URL %q: %v", raw, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", Errorf(EINVALID, "URL %q is not absolute", raw)
	}

	u.Fragment = ""
	u.RawFragment = ""
	for len(u.Path) > 1 && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
		u.RawPath = strings.TrimSuffix(u.RawPath, "/")
	}

	return u.String(), nil
}

// URLRecord represents the first discovery of a distinct normalized URL
// during a crawl session. Records are immutable once created: depth and
// parent are fixed at first discovery, and later-discovered paths to the
// same URL do not overwrite them.
type URLRecord struct {
	URL           string    `json:"url"`
	NormalizedURL string    `json:"normalizedUrl"`
	Depth         int       `json:"depth"`
	ParentURL     string    `json:"parentUrl,omitempty"`
	FirstSeenAt   time.Time `json:"firstSeenAt"`
}

// LinkEdge represents a directed parent→child link discovered while
// fetching the parent's page. Both endpoints are normalized URLs. Multiple
// edges may point at the same child; only one URLRecord exists per child.
type LinkEdge struct {
	Parent string `json:"parent"`
	Child  string `json:"child"`
}
