package blog

import (
	"net/http"
	"time"
)

// DefaultTitle is used when a page carries no <title>.
const DefaultTitle = "Blog Post"

// FetchRequest describes a single page retrieval.
type FetchRequest struct {
	URL     string
	Headers http.Header
}

// FetchResponse captures the raw page returned by a Fetcher.
type FetchResponse struct {
	URL          string
	StatusCode   int
	Headers      http.Header
	Body         []byte
	Duration     time.Duration
	UsedHeadless bool
}

// Content is the plain text and title pulled out of a page.
type Content struct {
	Title string
	Text  string
}

// Summary is the output of a Summarizer. Title may differ from the page title
// when the generator proposes its own.
type Summary struct {
	Title string
	Text  string
}

// SummaryRecord is the row written to the summaries store.
type SummaryRecord struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	SummaryUrdu string `json:"summary_urdu"`
}

// BlogPostRecord is the document written to the archive store.
type BlogPostRecord struct {
	URL       string    `bson:"url" json:"url"`
	Title     string    `bson:"title" json:"title"`
	FullText  string    `bson:"fullText" json:"fullText"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Notification is published once both records are stored.
type Notification struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
