package llm

import (
	"strings"
	"testing"
)

func TestBuildPromptRequiresQuestion(t *testing.T) {
	if _, err := buildPrompt(Request{Question: "   "}); err == nil {
		t.Fatal("expected empty question error")
	}
}

func TestBuildPromptSearchMode(t *testing.T) {
	prompt, err := buildPrompt(Request{Title: "OS.pdf", Question: "page replacement", Search: true})
	if err != nil {
		t.Fatalf("build prompt: %v", err)
	}
	if !strings.Contains(prompt, "Topic: page replacement") {
		t.Fatalf("search prompt missing topic: %s", prompt)
	}
	if !strings.Contains(prompt, "(no text available for this page)") {
		t.Fatalf("search prompt should note missing material: %s", prompt)
	}
}

func TestExtractQuestionContextPrefersMatchingSentences(t *testing.T) {
	content := "Stacks are LIFO. Queues are FIFO. Heaps keep the minimum on top."
	got := extractQuestionContext(content, "How do queues work?", 1000)
	if got != "Queues are FIFO." {
		t.Fatalf("unexpected context %q", got)
	}
}

func TestRoughSentenceSplitHandlesCJKPunctuation(t *testing.T) {
	got := roughSentenceSplit("二叉树是一种树。每个节点最多两个孩子！")
	if len(got) != 2 {
		t.Fatalf("expected two sentences, got %#v", got)
	}
}
