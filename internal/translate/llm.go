package translate

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/JakeFAU/blog-summarizer/internal/blog"
	"github.com/JakeFAU/blog-summarizer/internal/config"
	"github.com/JakeFAU/blog-summarizer/internal/llm"
)

const promptTemplate = `Translate the following text to Urdu. Provide a clean, well-formatted ` +
	`translation without HTML entities, arrows, or special characters. Format it as natural Urdu text:

%s`

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	leadingDash   = regexp.MustCompile(`(?m)^\s*[-–—]\s*`)
)

// LLM translates through a language model.
type LLM struct {
	client llm.Client
}

// NewLLM wraps client.
func NewLLM(client llm.Client) *LLM {
	return &LLM{client: client}
}

// Translate cleans the input, asks the model, and cleans the answer.
func (t *LLM) Translate(ctx context.Context, text string) (string, error) {
	if t.client == nil {
		return "", llm.ErrMissingAPIKey
	}
	raw, err := t.client.Complete(ctx, fmt.Sprintf(promptTemplate, CleanInput(text)))
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	out := CleanOutput(raw)
	if out == "" {
		return "", errors.New("translate: model returned an empty translation")
	}
	return out, nil
}

// CleanInput decodes HTML entities, drops arrows, and collapses whitespace.
func CleanInput(text string) string {
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, "→", "")
	text = strings.ReplaceAll(text, " ", " ")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// CleanOutput strips arrows, leading dashes, and stray entities from model output.
func CleanOutput(text string) string {
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, "→", "")
	text = leadingDash.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(leadingDash.ReplaceAllString(text, ""))
}

// New selects a translator by mode. The llm client is only used in llm mode.
func New(mode string, client llm.Client) blog.Translator {
	if mode == config.ModeLLM {
		return NewLLM(client)
	}
	return NewDictionary()
}
