// Package exam holds the exam-prep overview data: dates, material status,
// question bank coverage and the documents an exam's reader browses.
package exam

import (
	"fmt"
	"time"

	"github.com/csheth/studydesk/internal/catalog"
)

// Material processing states.
const (
	StatusIntegrated = "已整合"
	StatusProcessing = "处理中"
)

// DateLayout is the calendar format exam dates are written in.
const DateLayout = "2006-01-02"

// Material summarises one category of uploaded material.
type Material struct {
	Type   string `toml:"type"`
	Count  int    `toml:"count"`
	Status string `toml:"status"`
}

// Integrated reports whether the material has been processed.
func (m Material) Integrated() bool {
	return m.Status == StatusIntegrated
}

// QuestionType is one row of the question bank.
type QuestionType struct {
	Type    string `toml:"type"`
	Count   int    `toml:"count"`
	Matched int    `toml:"matched"`
}

// Exam is one upcoming exam.
type Exam struct {
	Key          string
	Name         string
	Date         time.Time
	Materials    []Material
	QuestionBank []QuestionType
	KeyTopics    []string
	Documents    *catalog.Static
}

// Coverage totals the question bank. Percent is rounded down and is 0 for an
// empty bank.
func (e Exam) Coverage() (matched, total, percent int) {
	for _, q := range e.QuestionBank {
		matched += q.Matched
		total += q.Count
	}
	if total > 0 {
		percent = matched * 100 / total
	}
	return matched, total, percent
}

// Countdown is the time left before an exam.
type Countdown struct {
	Text    string
	Past    bool
	Days    int
	Hours   int
	Minutes int
}

// CountdownTo describes the time from now until date.
func CountdownTo(now, date time.Time) Countdown {
	diff := date.Sub(now)
	if diff <= 0 {
		return Countdown{Text: "已结束", Past: true}
	}
	days := int(diff / (24 * time.Hour))
	hours := int(diff % (24 * time.Hour) / time.Hour)
	minutes := int(diff % time.Hour / time.Minute)

	c := Countdown{Days: days, Hours: hours, Minutes: minutes}
	switch {
	case days > 0:
		c.Text = fmt.Sprintf("%d天%d小时", days, hours)
	case hours > 0:
		c.Text = fmt.Sprintf("%d小时%d分钟", hours, minutes)
	default:
		c.Text = fmt.Sprintf("%d分钟", minutes)
	}
	return c
}

// ParseDate reads a calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("exam: bad date %q: %w", s, err)
	}
	return t, nil
}
