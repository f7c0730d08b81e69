// Package extract pulls a title and readable text out of raw HTML.
//
// The regex extractor is deliberately not an HTML parser: it removes script and
// style blocks, replaces every other tag with a space, and collapses whitespace.
// Malformed markup can leak into the text.
package extract

import (
	"regexp"
	"strings"

	"github.com/JakeFAU/blog-summarizer/internal/blog"
)

var (
	scriptBlock = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleBlock  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	anyTag      = regexp.MustCompile(`<[^>]+>`)
	whitespace  = regexp.MustCompile(`\s+`)
	titleTag    = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
)

// Regex extracts content with regular expressions.
type Regex struct{}

// NewRegex returns the regex extractor.
func NewRegex() Regex {
	return Regex{}
}

// Extract returns the page title (or blog.DefaultTitle) and the normalized text.
func (Regex) Extract(html string) blog.Content {
	return blog.Content{
		Title: Title(html),
		Text:  Text(html),
	}
}

// Title returns the trimmed text of the first <title> element.
func Title(html string) string {
	m := titleTag.FindStringSubmatch(html)
	if len(m) < 2 {
		return blog.DefaultTitle
	}
	title := strings.TrimSpace(m[1])
	if title == "" {
		return blog.DefaultTitle
	}
	return title
}

// Text strips scripts, styles, and tags and collapses whitespace.
func Text(html string) string {
	text := scriptBlock.ReplaceAllString(html, "")
	text = styleBlock.ReplaceAllString(text, "")
	text = anyTag.ReplaceAllString(text, " ")
	return NormalizeWhitespace(text)
}

// NormalizeWhitespace collapses runs of whitespace to one space and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
