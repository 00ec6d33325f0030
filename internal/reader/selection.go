package reader

import (
	"fmt"
	"strings"
)

const (
	placeholderRunes   = 20
	defaultPlaceholder = "输入你的问题或上传题目图片..."
)

// Selection stages text picked in the preview for the next chat message.
type Selection struct {
	text string
}

// Capture stages raw as given. Blank selections are ignored and leave the
// staged text alone.
func (s *Selection) Capture(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	s.text = raw
	return true
}

// Clear drops the staged text.
func (s *Selection) Clear() {
	s.text = ""
}

// Text is the staged text, empty when nothing is staged.
func (s *Selection) Text() string {
	return s.text
}

// Staged reports whether text is staged.
func (s *Selection) Staged() bool {
	return s.text != ""
}

// Placeholder is the composer hint for the staged text.
func (s *Selection) Placeholder() string {
	if s.text == "" {
		return defaultPlaceholder
	}
	runes := []rune(s.text)
	if len(runes) > placeholderRunes {
		runes = runes[:placeholderRunes]
	}
	return fmt.Sprintf("关于\"%s...\"的问题", string(runes))
}
