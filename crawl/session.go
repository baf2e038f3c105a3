package crawl

import (
	"sync"

	scraper "github.com/NakaSato/datadog-scraper"
	"github.com/google/uuid"
)

// Tracker sizing for a crawl session.
const (
	// trackerExpectedURLs is the expected number of URLs for Bloom filter sizing.
	trackerExpectedURLs = 10000
	// trackerFalsePositiveRate is the acceptable negative-cache false positive rate.
	trackerFalsePositiveRate = 0.01
)

// session holds all mutable state of one crawl invocation: the record
// map, the edge set, and the dedup tracker. A session is created per
// Crawl call and discarded with it; there is no module-level shared
// state. Inserts are mutex-guarded so a concurrent traversal mode needs
// no further discipline; after the crawl completes the structures are
// only read.
type session struct {
	id      string
	tracker *Tracker

	mu        sync.Mutex
	records   map[string]scraper.URLRecord
	order     []string
	edges     map[scraper.LinkEdge]struct{}
	edgeOrder []scraper.LinkEdge
}

func newSession() *session {
	return &session{
		id:      uuid.New().String(),
		tracker: NewTracker(trackerExpectedURLs, trackerFalsePositiveRate),
		records: make(map[string]scraper.URLRecord),
		edges:   make(map[scraper.LinkEdge]struct{}),
	}
}

// addRecord stores a URLRecord keyed by normalized URL. The first write
// wins; records are immutable thereafter.
func (s *session) addRecord(rec scraper.URLRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.NormalizedURL]; ok {
		return
	}
	s.records[rec.NormalizedURL] = rec
	s.order = append(s.order, rec.NormalizedURL)
}

// addEdge stores a parent→child edge, deduplicated by pair. Self-edges
// are dropped. Returns true if the edge was new.
func (s *session) addEdge(parent, child string) bool {
	if parent == child {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := scraper.LinkEdge{Parent: parent, Child: child}
	if _, ok := s.edges[e]; ok {
		return false
	}
	s.edges[e] = struct{}{}
	s.edgeOrder = append(s.edgeOrder, e)
	return true
}

// snapshot returns the records in discovery order and the edges in
// insertion order.
func (s *session) snapshot() ([]scraper.URLRecord, []scraper.LinkEdge) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]scraper.URLRecord, 0, len(s.order))
	for _, u := range s.order {
		records = append(records, s.records[u])
	}
	edges := make([]scraper.LinkEdge, len(s.edgeOrder))
	copy(edges, s.edgeOrder)
	return records, edges
}
