package scraper

import "time"

// Heading is one heading element (levels 1-6) in document order.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// CodeBlock is one preformatted code element in document order.
// Language is a best-effort tag derived from a language-* class name;
// "unknown" when no tag is present.
type CodeBlock struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// ContentDocument is the extracted, structured representation of one
// page's content. Exactly one exists per URLRecord after an extraction
// pass; a failed fetch or parse yields OK=false with Error populated and
// all content fields empty.
type ContentDocument struct {
	URL         string      `json:"url"`
	Title       string      `json:"title"`
	BodyText    string      `json:"bodyText"`
	Headings    []Heading   `json:"headings"`
	CodeBlocks  []CodeBlock `json:"codeBlocks"`
	WordCount   int         `json:"wordCount"`
	ContentHash string      `json:"contentHash,omitempty"`
	ExtractedAt time.Time   `json:"extractedAt"`
	OK          bool        `json:"ok"`
	Error       string      `json:"error,omitempty"`
}

// ExtractResult holds the content parts produced by an Extractor before
// they are assembled into a ContentDocument.
type ExtractResult struct {
	Title      string
	BodyText   string
	Headings   []Heading
	CodeBlocks []CodeBlock
}

// Extractor reduces a page's HTML to its structured content parts:
// structural chrome (navigation, header, footer, script, style) is
// removed, the title and body text are normalized, and headings and code
// blocks are collected in document order.
type Extractor interface {
	// Extract processes raw HTML fetched from pageURL. Unparseable input
	// degrades to a raw-text best effort rather than failing outright.
	Extract(pageURL, html string) (*ExtractResult, error)
}

// LinkExtractor extracts outbound hyperlinks from HTML.
type LinkExtractor interface {
	// ExtractLinks returns the absolute URLs of all links within the base
	// URL's host, resolved against baseURL, in document order. Links to
	// other hosts and non-HTTP schemes are discarded.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
