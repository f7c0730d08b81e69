package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/JakeFAU/blog-summarizer/internal/blog"
)

// DOM extracts content from a parsed goquery document. It tolerates markup the
// regex extractor mangles (attributes containing '>', unterminated tags).
type DOM struct{}

// NewDOM returns the goquery-backed extractor.
func NewDOM() DOM {
	return DOM{}
}

// Extract falls back to the regex extractor when the document cannot be parsed.
func (DOM) Extract(html string) blog.Content {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Regex{}.Extract(html)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = blog.DefaultTitle
	}

	doc.Find("script, style, noscript, template").Remove()
	var parts []string
	doc.Find("title, body").Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, nodeText(s))
	})
	return blog.Content{
		Title: title,
		Text:  NormalizeWhitespace(strings.Join(parts, " ")),
	}
}

// nodeText joins text nodes with spaces so adjacent block elements do not fuse.
func nodeText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
			b.WriteByte(' ')
			return
		}
		b.WriteString(nodeText(c))
		b.WriteByte(' ')
	})
	return b.String()
}

// New selects an extractor by mode name ("regex" or "dom").
func New(mode string) blog.Extractor {
	if mode == "dom" {
		return NewDOM()
	}
	return NewRegex()
}
