package scraper

// Tree is the queryable link structure derived from a crawl session's
// records and edges. Parent and depth answers come from the records
// (first discovery is authoritative); children come from the full edge
// set, so a URL reachable from several parents appears in each parent's
// child list. A Tree is purely derived and immutable once built.
type Tree struct {
	children map[string][]string
	parents  map[string]string
	depths   map[string]int
}

// NewTree builds a Tree from the records and edges of a completed crawl.
func NewTree(records []URLRecord, edges []LinkEdge) *Tree {
	t := &Tree{
		children: make(map[string][]string, len(records)),
		parents:  make(map[string]string, len(records)),
		depths:   make(map[string]int, len(records)),
	}
	for _, rec := range records {
		t.depths[rec.NormalizedURL] = rec.Depth
		if rec.ParentURL != "" {
			t.parents[rec.NormalizedURL] = rec.ParentURL
		}
	}
	for _, e := range edges {
		t.children[e.Parent] = append(t.children[e.Parent], e.Child)
	}
	return t
}

// ChildrenOf returns the child URLs linked from url, in discovery order.
// Unknown URLs return nil.
func (t *Tree) ChildrenOf(url string) []string {
	kids := t.children[url]
	if len(kids) == 0 {
		return nil
	}
	out := make([]string, len(kids))
	copy(out, kids)
	return out
}

// ParentOf returns the parent that first discovered url. The second
// result is false for the seed and for unknown URLs.
func (t *Tree) ParentOf(url string) (string, bool) {
	p, ok := t.parents[url]
	return p, ok
}

// DepthOf returns the link-hop distance of url from the seed. The second
// result is false for unknown URLs.
func (t *Tree) DepthOf(url string) (int, bool) {
	d, ok := t.depths[url]
	return d, ok
}

// Has reports whether a URLRecord exists for url.
func (t *Tree) Has(url string) bool {
	_, ok := t.depths[url]
	return ok
}
