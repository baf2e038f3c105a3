package goquery

import (
	"strings"

	scraper "github.com/NakaSato/datadog-scraper"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Ensure Extractor implements scraper.Extractor at compile time.
var _ scraper.Extractor = (*Extractor)(nil)

// chromeSelector matches structural page chrome removed before any text
// extraction.
const chromeSelector = "nav, header, footer, script, style, iframe"

// mainCandidates are tried in order to locate the main content
// container; the document body is the final fallback.
var mainCandidates = []string{
	"main",
	"article",
	"div.content, div.main, div.article",
	"#content, #main",
}

// Extractor reduces a documentation page to its structured content:
// title, whitespace-normalized body text, ordered headings, and ordered
// code blocks with best-effort language tags.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML fetched from pageURL. Input that cannot be
// parsed as HTML degrades to a raw-text best effort instead of failing.
func (e *Extractor) Extract(pageURL, rawHTML string) (*scraper.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return &scraper.ExtractResult{BodyText: rawText(rawHTML)}, nil
	}

	doc.Find(chromeSelector).Remove()

	main := mainContent(doc)

	return &scraper.ExtractResult{
		Title:      extractTitle(doc),
		BodyText:   blockText(main.Nodes),
		Headings:   extractHeadings(main),
		CodeBlocks: extractCodeBlocks(main),
	}, nil
}

// mainContent returns the first matching content container, falling back
// to the document body.
func mainContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range mainCandidates {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}

// extractTitle returns the first h1's text, else the title metadata,
// else the empty string.
func extractTitle(doc *goquery.Document) string {
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		return collapseSpaces(h1.Text())
	}
	if title := doc.Find("title").First(); title.Length() > 0 {
		return collapseSpaces(title.Text())
	}
	return ""
}

// extractHeadings returns every heading element under the content
// container with its level, in document order.
func extractHeadings(sel *goquery.Selection) []scraper.Heading {
	var headings []scraper.Heading
	sel.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		if len(name) != 2 {
			return
		}
		headings = append(headings, scraper.Heading{
			Level: int(name[1] - '0'),
			Text:  collapseSpaces(s.Text()),
		})
	})
	return headings
}

// extractCodeBlocks returns every preformatted block under the content
// container in document order. The language comes from a language-*
// class on the inner code element (or the pre itself); "unknown" when
// absent.
func extractCodeBlocks(sel *goquery.Selection) []scraper.CodeBlock {
	var blocks []scraper.CodeBlock
	sel.Find("pre").Each(func(_ int, pre *goquery.Selection) {
		target := pre
		if code := pre.Find("code").First(); code.Length() > 0 {
			target = code
		}
		blocks = append(blocks, scraper.CodeBlock{
			Language: codeLanguage(target, pre),
			Code:     target.Text(),
		})
	})
	return blocks
}

// codeLanguage scans the class attributes of the given selections for a
// language-* convention tag.
func codeLanguage(sels ...*goquery.Selection) string {
	for _, s := range sels {
		class, ok := s.Attr("class")
		if !ok {
			continue
		}
		for _, c := range strings.Fields(class) {
			if lang, ok := strings.CutPrefix(c, "language-"); ok && lang != "" {
				return lang
			}
		}
	}
	return "unknown"
}

// blockElements delimit paragraph breaks in the rendered body text.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figure": true, "form": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "hr": true, "li": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}

// blockText renders the visible text of the given nodes with runs of
// whitespace collapsed to single spaces and paragraph breaks preserved
// as single newlines.
func blockText(nodes []*html.Node) string {
	var lines []string
	var cur strings.Builder

	flush := func() {
		if line := collapseSpaces(cur.String()); line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			cur.WriteString(n.Data)
			cur.WriteByte(' ')
			return
		}
		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			flush()
		}
	}

	for _, n := range nodes {
		walk(n)
	}
	flush()

	return strings.Join(lines, "\n")
}

// rawText is the degraded extraction path for input the HTML parser
// rejects: visible text tokens only, whitespace-normalized.
func rawText(input string) string {
	z := html.NewTokenizer(strings.NewReader(input))
	var b strings.Builder
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.Write(z.Text())
			b.WriteByte(' ')
		}
	}
	return collapseSpaces(b.String())
}

// collapseSpaces trims the string and collapses runs of whitespace to
// single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
