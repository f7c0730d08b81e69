package summarize

import (
	"github.com/JakeFAU/blog-summarizer/internal/blog"
	"github.com/JakeFAU/blog-summarizer/internal/config"
	"github.com/JakeFAU/blog-summarizer/internal/llm"
)

// New selects a summarizer by mode. The llm client is only used in llm mode.
func New(mode string, client llm.Client) blog.Summarizer {
	if mode == config.ModeLLM {
		return NewLLM(client)
	}
	return NewStatic()
}
