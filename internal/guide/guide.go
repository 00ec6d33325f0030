// Package guide builds a three-pass review plan for an upcoming exam.
package guide

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/csheth/studydesk/internal/exam"
)

// Step represents one actionable recommendation in the review workflow.
type Step struct {
	Title       string
	Description string
}

// Metadata carries just enough context for personalizing plan steps.
type Metadata struct {
	Exam     string
	DaysLeft int
	// Pending lists material types that are still being processed.
	Pending []string
	// Weakest lists the question types with the lowest match ratio.
	Weakest []string
	Topics  []string
}

const maxWeakest = 2

// ForExam derives the plan for e as seen at now.
func ForExam(e exam.Exam, now time.Time) []Step {
	countdown := exam.CountdownTo(now, e.Date)
	meta := Metadata{Exam: e.Name, DaysLeft: countdown.Days, Topics: e.KeyTopics}
	if countdown.Past {
		meta.DaysLeft = -1
	}
	for _, m := range e.Materials {
		if !m.Integrated() {
			meta.Pending = append(meta.Pending, m.Type)
		}
	}
	meta.Weakest = weakest(e.QuestionBank, maxWeakest)
	return Build(meta)
}

// weakest orders question types by matched/count and keeps the first n that
// are not fully covered.
func weakest(bank []exam.QuestionType, n int) []string {
	ranked := make([]exam.QuestionType, 0, len(bank))
	for _, q := range bank {
		if q.Count > 0 && q.Matched < q.Count {
			ranked = append(ranked, q)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Matched*ranked[j].Count < ranked[j].Matched*ranked[i].Count
	})
	out := make([]string, 0, n)
	for _, q := range ranked {
		if len(out) == n {
			break
		}
		out = append(out, q.Type)
	}
	return out
}

// Build returns the review checklist: read, practice, review, then pacing.
func Build(meta Metadata) []Step {
	name := strings.TrimSpace(meta.Exam)
	if name == "" {
		name = "本次考试"
	}

	read := fmt.Sprintf("通读%s的课件和课本，标出不熟悉的概念，遇到问题直接在学习助手里提问。", name)
	if len(meta.Pending) > 0 {
		read += fmt.Sprintf("%s仍在处理中，整合后再补读。", strings.Join(meta.Pending, "、"))
	}
	practice := "按题库顺序完成练习，错题对照原文页码复习。"
	if len(meta.Weakest) > 0 {
		practice = fmt.Sprintf("优先练习匹配率最低的题型：%s，错题对照原文页码复习。", strings.Join(meta.Weakest, "、"))
	}
	review := "回看往年题，整理自己的错题清单。"
	if len(meta.Topics) > 0 {
		review = fmt.Sprintf("逐个回顾重点：%s，每个重点能独立讲清楚再划掉。", strings.Join(meta.Topics, "、"))
	}

	return []Step{
		{Title: "第一轮 · 通读资料", Description: read},
		{Title: "第二轮 · 专项练习", Description: practice},
		{Title: "第三轮 · 重点回顾", Description: review},
		{Title: "时间安排", Description: pacing(meta.DaysLeft)},
	}
}

func pacing(days int) string {
	switch {
	case days < 0:
		return "考试已结束，整理错题留作参考。"
	case days < 3:
		return "时间紧张，直接从重点回顾开始，再做一遍往年题。"
	}
	first := days * 2 / 5
	second := days * 2 / 5
	third := days - first - second
	return fmt.Sprintf("剩余 %d 天：约 %d 天通读、%d 天练习、%d 天回顾。", days, first, second, third)
}
