package exam

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdownTo(t *testing.T) {
	exam := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		now  time.Time
		want Countdown
	}{
		{"past", exam.Add(time.Minute), Countdown{Text: "已结束", Past: true}},
		{"exactly now", exam, Countdown{Text: "已结束", Past: true}},
		{"days", exam.Add(-(3*24*time.Hour + 5*time.Hour + 10*time.Minute)), Countdown{Text: "3天5小时", Days: 3, Hours: 5, Minutes: 10}},
		{"hours", exam.Add(-(2*time.Hour + 30*time.Minute)), Countdown{Text: "2小时30分钟", Hours: 2, Minutes: 30}},
		{"minutes", exam.Add(-(42*time.Minute + 30*time.Second)), Countdown{Text: "42分钟", Minutes: 42}},
		{"under a minute", exam.Add(-30 * time.Second), Countdown{Text: "0分钟"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CountdownTo(tc.now, exam))
		})
	}
}

func TestCoverage(t *testing.T) {
	exams := Demo()
	require.Len(t, exams, 2)

	matched, total, percent := exams[0].Coverage()
	assert.Equal(t, 178, matched)
	assert.Equal(t, 195, total)
	assert.Equal(t, 91, percent)

	_, _, percent = Exam{}.Coverage()
	assert.Equal(t, 0, percent)
}

func TestDemoExamsHaveDocuments(t *testing.T) {
	for _, e := range Demo() {
		assert.NotEmpty(t, e.KeyTopics, e.Key)
		require.NotNil(t, e.Documents, e.Key)
		assert.Len(t, e.Documents.Categories(), 4, e.Key)
	}
	assert.False(t, Demo()[0].Materials[3].Integrated())
	assert.True(t, Demo()[1].Materials[3].Integrated())
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.toml")
	content := `
[[exam]]
key = "net"
name = "计算机网络期末考试"
date = "2025-12-01"
topics = ["TCP", "路由"]

  [[exam.material]]
  type = "课件"
  count = 4
  status = "已整合"

  [[exam.question]]
  type = "选择题"
  count = 10
  matched = 5

  [[exam.category]]
  name = "课件"

    [[exam.category.document]]
    name = "第1章.pptx"
    pages = 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	exams, err := LoadTOML(path)
	require.NoError(t, err)
	require.Len(t, exams, 1)
	e := exams[0]
	assert.Equal(t, "net", e.Key)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), e.Date)
	assert.Equal(t, []string{"TCP", "路由"}, e.KeyTopics)
	_, _, percent := e.Coverage()
	assert.Equal(t, 50, percent)
	assert.Equal(t, 1, e.Documents.Len())
}

func TestLoadTOMLRejectsBadDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[exam]]\nname = \"x\"\ndate = \"soon\"\n"), 0o644))
	_, err := LoadTOML(path)
	assert.Error(t, err)
}

func TestLoadTOMLRejectsDuplicateKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.toml")
	content := "[[exam]]\nkey = \"a\"\ndate = \"2025-01-01\"\n[[exam]]\nkey = \"a\"\ndate = \"2025-01-02\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	_, err := LoadTOML(path)
	assert.Error(t, err)
}
