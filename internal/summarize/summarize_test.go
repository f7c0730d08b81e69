package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/blog-summarizer/internal/blog"
	"github.com/JakeFAU/blog-summarizer/internal/llm"
)

func TestFirstSentences_TakesFirstTwo(t *testing.T) {
	t.Parallel()

	got := FirstSentences("Go is fun. Channels are neat!  Is this third? Yes.", 2)
	require.Equal(t, "Go is fun. Channels are neat!", got)
}

func TestFirstSentences_SingleSentence(t *testing.T) {
	t.Parallel()

	got := FirstSentences("  Only one sentence here.  trailing words", 2)
	require.Equal(t, "Only one sentence here.", got)
}

func TestFirstSentences_RepeatedTerminators(t *testing.T) {
	t.Parallel()

	got := FirstSentences("Wait... what?! Really.", 2)
	require.Equal(t, "Wait... what?!", got)
}

func TestFirstSentences_NoTerminatorFallsBack(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("word ", 100)
	got := FirstSentences(text, 2)

	require.True(t, strings.HasSuffix(got, "..."))
	require.Equal(t, text[:200]+"...", got)
}

func TestFirstSentences_ShortTextWithoutTerminator(t *testing.T) {
	t.Parallel()

	require.Equal(t, "short text...", FirstSentences("short text", 2))
}

func TestFirstSentences_FallbackCountsRunes(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("é", 250)
	got := FirstSentences(text, 2)

	require.Equal(t, 203, utf8.RuneCountInString(got))
}

func TestStaticSummarize_PassesTitleThrough(t *testing.T) {
	t.Parallel()

	got, err := NewStatic().Summarize(context.Background(), blog.Content{Title: "Foo", Text: "Hello. World!"})
	require.NoError(t, err)
	require.Equal(t, blog.Summary{Title: "Foo", Text: "Hello. World!"}, got)
}

type fakeClient struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeClient) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func TestLLMSummarize_ParsesJSON(t *testing.T) {
	t.Parallel()

	client := &fakeClient{reply: `{"title":"Concurrency in Go","summary":"Goroutines are cheap. Channels coordinate them."}`}
	got, err := NewLLM(client).Summarize(context.Background(), blog.Content{Title: "page", Text: "full text body"})

	require.NoError(t, err)
	require.Equal(t, "Concurrency in Go", got.Title)
	require.Equal(t, "Goroutines are cheap. Channels coordinate them.", got.Text)
	require.Contains(t, client.prompt, "full text body")
}

func TestLLMSummarize_FallsBackToPageTitle(t *testing.T) {
	t.Parallel()

	client := &fakeClient{reply: `{"title":"","summary":"Something happened."}`}
	got, err := NewLLM(client).Summarize(context.Background(), blog.Content{Title: "Page Title", Text: "x"})

	require.NoError(t, err)
	require.Equal(t, "Page Title", got.Title)
}

func TestLLMSummarize_PropagatesClientError(t *testing.T) {
	t.Parallel()

	client := &fakeClient{err: errors.New("503 unavailable")}
	_, err := NewLLM(client).Summarize(context.Background(), blog.Content{Text: "x"})

	require.ErrorContains(t, err, "503 unavailable")
}

func TestLLMSummarize_MissingKey(t *testing.T) {
	t.Parallel()

	_, err := NewLLM(llm.Unconfigured{}).Summarize(context.Background(), blog.Content{Text: "x"})
	require.ErrorIs(t, err, llm.ErrMissingAPIKey)
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		raw         string
		wantTitle   string
		wantSummary string
	}{
		{
			name:        "code fenced json",
			raw:         "```json\n{\"title\": \"Fenced\", \"summary\": \"Inside a fence.\"}\n```",
			wantTitle:   "Fenced",
			wantSummary: "Inside a fence.",
		},
		{
			name:        "prose around json",
			raw:         "Sure! Here it is: {\"title\": \"Wrapped\", \"summary\": \"Text.\"} Hope this helps.",
			wantTitle:   "Wrapped",
			wantSummary: "Text.",
		},
		{
			name:        "broken json uses regex fallback",
			raw:         `{"title": "Broken \"quoted\" title", "summary": "Still readable.", }`,
			wantTitle:   `Broken "quoted" title`,
			wantSummary: "Still readable.",
		},
		{
			name:        "plain text becomes summary",
			raw:         "Just a plain summary with no structure.",
			wantTitle:   "",
			wantSummary: "Just a plain summary with no structure.",
		},
		{
			name:        "bracket and quote artifacts",
			raw:         `{"title": "[\"Artifacts\"]", "summary": "\"Quoted summary.\""}`,
			wantTitle:   "Artifacts",
			wantSummary: "Quoted summary.",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			title, summary := ParseResponse(tc.raw)
			require.Equal(t, tc.wantTitle, title)
			require.Equal(t, tc.wantSummary, summary)
		})
	}
}

func TestParseResponse_TruncatesTitle(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("t", 120)
	title, _ := ParseResponse(`{"title":"` + long + `","summary":"s."}`)
	require.Equal(t, 80, utf8.RuneCountInString(title))
}

func TestNewSelectsMode(t *testing.T) {
	t.Parallel()

	require.IsType(t, Static{}, New("static", nil))
	require.IsType(t, &LLM{}, New("llm", &fakeClient{}))
}
