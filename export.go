package scraper

import "sort"

// ExportDocument is the derived, read-only view of one page at export
// time: its URLRecord and ContentDocument combined with graph-derived
// metadata. ExportDocuments are computed on demand and never persisted
// as independent mutable entities.
type ExportDocument struct {
	Record   URLRecord
	Document ContentDocument

	// Category is the coarse grouping derived from the URL's first
	// non-empty path segment ("general" for the root path).
	Category string

	// ChildURLs lists this page's linked children that have URLRecords
	// of their own; edges to URLs that were never recorded are omitted
	// so every entry resolves to an existing record.
	ChildURLs  []string
	ChildCount int
}

// FormatReport is one export writer's account of what it produced.
// A writer that fails part-way reports the error here; other writers
// are unaffected.
type FormatReport struct {
	FilesWritten int
	BytesWritten int
	Err          error
}

// Manifest maps format names to their reports for one export run.
type Manifest map[string]FormatReport

// Failed returns the names of formats that recorded an error, sorted.
// An empty result means every format succeeded.
func (m Manifest) Failed() []string {
	var names []string
	for name, r := range m {
		if r.Err != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
