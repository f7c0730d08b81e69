package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/JakeFAU/blog-summarizer/internal/blog"
	"github.com/JakeFAU/blog-summarizer/internal/llm"
)

const maxTitleRunes = 80

const promptTemplate = `Summarize the following blog post. Respond with a JSON object only, ` +
	`with exactly two keys: "title" (a short title, at most 80 characters) and ` +
	`"summary" (two to four plain sentences). Do not wrap the JSON in markdown.

%s`

var (
	codeFence    = regexp.MustCompile("(?m)^\\s*```[a-zA-Z]*\\s*$")
	jsonObject   = regexp.MustCompile(`(?s)\{.*\}`)
	titleField   = regexp.MustCompile(`(?s)"title"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	summaryField = regexp.MustCompile(`(?s)"summary"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

// LLM asks a language model for a JSON title and summary.
type LLM struct {
	client llm.Client
}

// NewLLM wraps client.
func NewLLM(client llm.Client) *LLM {
	return &LLM{client: client}
}

// Summarize falls back to the page title when the model proposes none.
func (s *LLM) Summarize(ctx context.Context, content blog.Content) (blog.Summary, error) {
	if s.client == nil {
		return blog.Summary{}, llm.ErrMissingAPIKey
	}
	raw, err := s.client.Complete(ctx, fmt.Sprintf(promptTemplate, content.Text))
	if err != nil {
		return blog.Summary{}, fmt.Errorf("summarize: %w", err)
	}
	title, summary := ParseResponse(raw)
	if summary == "" {
		return blog.Summary{}, errors.New("summarize: model returned an empty summary")
	}
	if title == "" {
		title = content.Title
	}
	return blog.Summary{Title: title, Text: summary}, nil
}

// ParseResponse reads the model's JSON answer, tolerating code fences, prose
// around the object, and broken JSON. Returned fields are cleaned and the title
// is capped at 80 characters.
func ParseResponse(raw string) (title, summary string) {
	body := strings.TrimSpace(codeFence.ReplaceAllString(raw, ""))

	var parsed struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
	}
	candidate := body
	if obj := jsonObject.FindString(body); obj != "" {
		candidate = obj
	}
	if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
		title, summary = parsed.Title, parsed.Summary
	} else {
		title = unescapeField(titleField, body)
		summary = unescapeField(summaryField, body)
		if title == "" && summary == "" {
			summary = body
		}
	}

	title = truncateRunes(cleanField(title), maxTitleRunes)
	summary = cleanField(summary)
	return title, summary
}

func unescapeField(re *regexp.Regexp, body string) string {
	m := re.FindStringSubmatch(body)
	if len(m) < 2 {
		return ""
	}
	var s string
	if err := json.Unmarshal([]byte(`"`+m[1]+`"`), &s); err != nil {
		return m[1]
	}
	return s
}

const artifactTrim = "\"'`[]{} \t\r\n"

// cleanField strips quote, bracket, and code-fence debris left around a field.
func cleanField(s string) string {
	s = strings.ReplaceAll(s, "```", "")
	s = strings.Trim(s, artifactTrim)
	return strings.Join(strings.Fields(s), " ")
}
