package tui

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/csheth/studydesk/internal/catalog"
	"github.com/csheth/studydesk/internal/chat"
	"github.com/csheth/studydesk/internal/exam"
	"github.com/csheth/studydesk/internal/reader"
	"github.com/csheth/studydesk/internal/timer"
)

const (
	testWidth  = 120
	testHeight = 32
)

var testNow = time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)

// echoAnswerer replies immediately and records what it was asked.
type echoAnswerer struct {
	asked *[]chat.Context
}

func (echoAnswerer) Name() string { return "echo" }

func (a echoAnswerer) Answer(_ context.Context, c chat.Context) (chat.Reply, error) {
	if a.asked != nil {
		*a.asked = append(*a.asked, c)
	}
	return chat.Reply{Content: "answer: " + c.Text}, nil
}

func newTestModel(t *testing.T) (*model, *timer.Manual, *[]chat.Context) {
	t.Helper()
	cat, err := catalog.NewStatic(catalog.Category{
		Name:      "课件",
		Documents: []catalog.Document{{Name: "A.pdf", TotalPages: 3}, {Name: "B.pdf", TotalPages: 30}},
	})
	require.NoError(t, err)
	clock := timer.NewManual()
	asked := &[]chat.Context{}
	m := New(Config{
		Catalog:   cat,
		Exams:     exam.Demo(),
		Answerer:  echoAnswerer{asked: asked},
		Scheduler: clock,
		Now:       func() time.Time { return testNow },
	}).(*model)
	m.Update(tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	return m, clock, asked
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends k and drains whatever work it started.
func press(m *model, k tea.KeyMsg) {
	_, cmd := m.Update(k)
	drain(m, cmd)
}

func mouse(m *model, typ tea.MouseEventType, x, y int) {
	_, cmd := m.Update(tea.MouseMsg{X: x, Y: y, Type: typ})
	drain(m, cmd)
}

// advance moves the fake clock and feeds due messages back in.
func advance(m *model, clock *timer.Manual, d time.Duration) {
	for _, msg := range clock.Advance(d) {
		_, cmd := m.Update(msg)
		drain(m, cmd)
	}
}

// drain runs cmd and every command it leads to. Only messages produced by
// the app's own jobs are fed back; cursor blinks and spinner frames would
// otherwise loop on real timers.
func drain(m *model, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if cmds, ok := expand(msg); ok {
			queue = append(queue, cmds...)
			continue
		}
		switch msg.(type) {
		case jobSignalMsg, jobResultEnvelope, chat.AnswerMsg, reader.ImageMsg, pageTextMsg,
			timer.FiredMsg, uploadTickMsg, uploadResetMsg:
			_, follow := m.Update(msg)
			queue = append(queue, follow)
		}
	}
}

// expand unpacks batch and sequence messages.
func expand(msg tea.Msg) ([]tea.Cmd, bool) {
	if msg == nil {
		return nil, false
	}
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice {
		return nil, false
	}
	cmds := make([]tea.Cmd, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		cmd, ok := v.Index(i).Interface().(tea.Cmd)
		if !ok {
			return nil, false
		}
		cmds = append(cmds, cmd)
	}
	return cmds, true
}

// openFirstDocument opens A.pdf from the catalog.
func openFirstDocument(t *testing.T, m *model) {
	t.Helper()
	press(m, key(tea.KeyEnter))
	doc := m.learning.ctrl.Viewer().Document()
	require.NotNil(t, doc)
	require.Equal(t, "A.pdf", doc.Name)
}

func center(r rect) (int, int) {
	return r.x + r.w/2, r.y + r.h/2
}

func plain(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
