package chat

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// DefaultAnswerDelay is how long the simulated assistant "thinks".
const DefaultAnswerDelay = time.Second

const fallbackDocument = "数据结构课件"

// Simulated produces canned answers after a fixed delay.
type Simulated struct {
	Delay time.Duration
	// PickPage chooses a page when a search answer has no page to cite.
	PickPage func() int
}

// Name implements Answerer.
func (Simulated) Name() string {
	return "simulated"
}

// Answer implements Answerer.
func (s Simulated) Answer(ctx context.Context, c Context) (Reply, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Reply{}, ctx.Err()
		case <-timer.C:
		}
	}

	if c.Mode == ModeSearch {
		name := fallbackDocument
		page := c.Page
		if c.Document != nil {
			name = c.Document.Name
		}
		if page < 1 {
			page = s.pickPage()
		}
		return Reply{
			Content: fmt.Sprintf("已在课件第%d页找到相关内容。这个知识点在\"%s\"中有详细讲解。", page, name),
			Source:  &Source{Document: name, Page: page},
		}, nil
	}

	var source *Source
	if c.Document != nil && c.Page > 0 {
		source = &Source{Document: c.Document.Name, Page: c.Page}
	}
	if sel := strings.TrimSpace(c.Selection.Text); sel != "" {
		return Reply{
			Content: fmt.Sprintf("关于\"%s\"的解释：\n\n这部分内容涉及到重要的核心概念。根据课件内容，建议你复习相关章节的基础知识。", sel),
			Source:  source,
		}, nil
	}
	return Reply{
		Content: "根据题目内容，这道题考查的是核心知识点。让我为你详细解答...\n\n解题思路：\n1. 首先理解题目要求\n2. 应用相关公式或算法\n3. 得出结论",
		Source:  source,
	}, nil
}

func (s Simulated) pickPage() int {
	if s.PickPage != nil {
		return s.PickPage()
	}
	return rand.Intn(50) + 1
}
