// Package summarize produces short summaries of extracted blog text.
package summarize

import (
	"context"
	"regexp"
	"strings"

	"github.com/JakeFAU/blog-summarizer/internal/blog"
)

// fallbackRunes is how much text is kept when no sentence boundary exists.
const fallbackRunes = 200

var sentence = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Static is an extractive summarizer: the first two sentences of the text.
type Static struct{}

// NewStatic returns the extractive summarizer.
func NewStatic() Static {
	return Static{}
}

// Summarize never fails; the page title is passed through unchanged.
func (Static) Summarize(_ context.Context, content blog.Content) (blog.Summary, error) {
	return blog.Summary{Title: content.Title, Text: FirstSentences(content.Text, 2)}, nil
}

// FirstSentences joins the first n sentence-terminated segments. With no
// terminator in text it returns the first 200 characters followed by "...".
func FirstSentences(text string, n int) string {
	matches := sentence.FindAllString(text, n)
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		if p := strings.TrimSpace(m); p != "" {
			parts = append(parts, p)
		}
	}
	if joined := strings.TrimSpace(strings.Join(parts, " ")); joined != "" {
		return joined
	}
	return truncateRunes(text, fallbackRunes) + "..."
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
