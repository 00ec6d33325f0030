package llm

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

func clipText(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func buildPrompt(req Request) (string, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return "", fmt.Errorf("question cannot be empty")
	}
	material := extractQuestionContext(req.Material, question, maxMaterialChars)
	if req.Search {
		return buildSearchPrompt(req.Title, material, question), nil
	}
	return buildAnswerPrompt(req.Title, material, question), nil
}

func buildAnswerPrompt(title, material, question string) string {
	builder := strings.Builder{}
	builder.WriteString("You are a patient university tutor helping a student prepare for exams.\n")
	builder.WriteString("Explain step by step. Prefer the course material when it is relevant and say so when it is not.\n")
	builder.WriteString("Answer in the language the student used.\n\n")
	if title != "" {
		builder.WriteString("Document: " + title + "\n\n")
	}
	if material != "" {
		builder.WriteString("Course material:\n")
		builder.WriteString(material)
		builder.WriteString("\n\n")
	}
	builder.WriteString("Question: " + question + "\nAnswer:")
	return builder.String()
}

func buildSearchPrompt(title, material, question string) string {
	builder := strings.Builder{}
	builder.WriteString("You are a study assistant that locates topics in course material.\n")
	builder.WriteString("Quote the most relevant passage from the material and name where it appears. Do not invent content.\n\n")
	if title != "" {
		builder.WriteString("Document: " + title + "\n\n")
	}
	builder.WriteString("Course material:\n")
	if material == "" {
		builder.WriteString("(no text available for this page)")
	} else {
		builder.WriteString(material)
	}
	builder.WriteString("\n\nTopic: " + question + "\nPassage:")
	return builder.String()
}

func extractQuestionContext(content, question string, limit int) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}
	keywords := questionKeywords(question)
	if len(keywords) == 0 {
		return clipText(content, limit)
	}

	sentences := roughSentenceSplit(content)
	var matches []string
	totalLen := 0

	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for keyword := range keywords {
			if strings.Contains(lower, keyword) {
				matches = append(matches, sentence)
				totalLen += len(sentence)
				break
			}
		}
		if totalLen >= limit {
			break
		}
	}

	if len(matches) == 0 {
		return clipText(content, limit)
	}

	return clipText(strings.Join(matches, " "), limit)
}

func questionKeywords(question string) map[string]struct{} {
	question = strings.ToLower(question)
	question = whitespaceRe.ReplaceAllString(question, " ")
	tokens := strings.FieldsFunc(question, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	stopwords := map[string]struct{}{
		"what": {}, "why": {}, "how": {}, "is": {}, "the": {}, "a": {}, "an": {}, "of": {},
		"does": {}, "do": {}, "in": {}, "on": {}, "for": {}, "are": {}, "be": {},
		"explain": {}, "please": {}, "this": {}, "that": {},
	}
	keywords := map[string]struct{}{}
	for _, token := range tokens {
		if len(token) < 3 {
			continue
		}
		if _, skip := stopwords[token]; skip {
			continue
		}
		keywords[token] = struct{}{}
	}
	return keywords
}

func roughSentenceSplit(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		switch r {
		case '.', '!', '?', '。', '！', '？', '\n':
			if sentence := strings.TrimSpace(current.String()); sentence != "" {
				sentences = append(sentences, sentence)
			}
			current.Reset()
		}
	}
	if tail := strings.TrimSpace(current.String()); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}
