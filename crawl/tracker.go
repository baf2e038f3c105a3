package crawl

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Tracker is the dedup gate for a crawl session: the first reservation
// of a normalized URL wins, every later attempt loses. TryReserve is the
// single authoritative check-and-set, so concurrent crawl branches can
// never double-reserve a URL.
//
// The exact membership set is a map; a Bloom filter sits in front of it
// as a negative cache so the common "never seen" case skips the map
// lookup. The map stays authoritative, which keeps reservations exact
// despite the filter's false positives.
type Tracker struct {
	mu   sync.Mutex
	fast *bloom.BloomFilter
	seen map[string]struct{}
}

// NewTracker creates a Tracker sized for n expected URLs with the given
// false positive rate for the negative cache.
func NewTracker(n uint, fpRate float64) *Tracker {
	return &Tracker{
		fast: bloom.NewWithEstimates(n, fpRate),
		seen: make(map[string]struct{}),
	}
}

// TryReserve atomically reserves a normalized URL. It returns true on
// the first reservation for this session and false ever after.
func (t *Tracker) TryReserve(normalized string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.fast.TestString(normalized) {
		if _, ok := t.seen[normalized]; ok {
			return false
		}
	}
	t.fast.AddString(normalized)
	t.seen[normalized] = struct{}{}
	return true
}

// Reserved reports whether a normalized URL has been reserved.
func (t *Tracker) Reserved(normalized string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.seen[normalized]
	return ok
}

// Count returns the number of reservations made so far.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}
