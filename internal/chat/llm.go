package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/csheth/studydesk/internal/catalog"
	"github.com/csheth/studydesk/internal/llm"
)

// DefaultPrompt stands in for the composer text when only an image or a
// selection was staged.
const DefaultPrompt = "请帮我解答这道题目"

// LLMAnswerer answers through a language model, feeding it the text of the
// page being viewed.
type LLMAnswerer struct {
	Client   llm.Client
	PageText func(d catalog.Document, page int) (string, error)
}

// Name implements Answerer.
func (a LLMAnswerer) Name() string {
	if a.Client == nil {
		return "llm"
	}
	return a.Client.Name()
}

// Answer implements Answerer.
func (a LLMAnswerer) Answer(ctx context.Context, c Context) (Reply, error) {
	if a.Client == nil {
		return Reply{}, fmt.Errorf("no language model configured")
	}
	req := llm.Request{
		Question: questionFor(c),
		Search:   c.Mode == ModeSearch,
	}
	var source *Source
	if c.Document != nil {
		req.Title = c.Document.Name
		if c.Page > 0 {
			source = &Source{Document: c.Document.Name, Page: c.Page}
			if a.PageText != nil {
				text, err := a.PageText(*c.Document, c.Page)
				if err != nil {
					log.Printf("[chat] page text unavailable for %s p%d: %v", c.Document.Name, c.Page, err)
				}
				req.Material = text
			}
		}
	}
	content, err := a.Client.Answer(ctx, req)
	if err != nil {
		return Reply{}, fmt.Errorf("answer: %w", err)
	}
	return Reply{Content: content, Source: source}, nil
}

func questionFor(c Context) string {
	var parts []string
	if sel := strings.TrimSpace(c.Selection.Text); sel != "" {
		parts = append(parts, fmt.Sprintf("Selected passage: %q", sel))
	}
	if c.Image != nil {
		parts = append(parts, "Attached image: "+c.Image.Label()+" (not visible to you; rely on the text).")
	}
	text := strings.TrimSpace(c.Text)
	if text == "" {
		text = DefaultPrompt
	}
	parts = append(parts, text)
	return strings.Join(parts, "\n")
}
