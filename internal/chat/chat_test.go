package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/studydesk/internal/attach"
	"github.com/csheth/studydesk/internal/catalog"
	"github.com/csheth/studydesk/internal/llm"
)

type failingAnswerer struct{}

func (failingAnswerer) Name() string { return "failing" }

func (failingAnswerer) Answer(context.Context, Context) (Reply, error) {
	return Reply{}, errors.New("backend offline")
}

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestSessionAppendsAnswerAfterUserMessage(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := NewSession(Simulated{}, WithClock(func() time.Time { return fixed }))

	id := s.AppendUserMessage("什么是栈？", nil)
	cmd := s.RequestAnswer(Context{Text: "什么是栈？"})
	assert.True(t, s.Pending())

	msg := runCmd(t, cmd)
	answer, ok := msg.(AnswerMsg)
	require.True(t, ok)
	assert.Equal(t, id, answer.Request)
	require.True(t, s.Update(msg))
	assert.False(t, s.Pending())

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "解题思路")
	assert.Equal(t, fixed, msgs[1].At)
}

func TestSessionIgnoresOtherSessions(t *testing.T) {
	a := NewSession(Simulated{})
	b := NewSession(Simulated{})
	a.AppendUserMessage("hi", nil)
	msg := runCmd(t, a.RequestAnswer(Context{Text: "hi"}))

	assert.False(t, b.Update(msg))
	assert.Empty(t, b.Messages())
	assert.False(t, b.Update(tea.KeyMsg{}))
}

func TestClosedSessionDropsLateAnswers(t *testing.T) {
	s := NewSession(Simulated{})
	s.AppendUserMessage("hi", nil)
	msg := runCmd(t, s.RequestAnswer(Context{Text: "hi"}))

	s.Close()
	assert.True(t, s.Update(msg))
	assert.Len(t, s.Messages(), 1)
	assert.False(t, s.Pending())
	assert.Nil(t, s.RequestAnswer(Context{Text: "again"}))
}

func TestSessionWithoutAnswererOnlyLogs(t *testing.T) {
	s := NewSession(nil)
	s.AppendUserMessage("hi", nil)
	assert.Nil(t, s.RequestAnswer(Context{Text: "hi"}))
	assert.Equal(t, "", s.AnswererName())
	assert.Len(t, s.Messages(), 1)
}

func TestSessionRecordsAnswerErrors(t *testing.T) {
	s := NewSession(failingAnswerer{})
	s.AppendUserMessage("hi", nil)
	require.True(t, s.Update(runCmd(t, s.RequestAnswer(Context{Text: "hi"}))))

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "backend offline", msgs[1].Err)
}

func TestSessionRoutesJobsThroughLauncher(t *testing.T) {
	launched := 0
	launcher := func(run func(context.Context) (tea.Msg, error)) tea.Cmd {
		launched++
		return func() tea.Msg {
			msg, _ := run(context.Background())
			return msg
		}
	}
	s := NewSession(Simulated{}, WithLauncher(launcher))
	s.AppendUserMessage("hi", nil)
	runCmd(t, s.RequestAnswer(Context{Text: "hi"}))
	assert.Equal(t, 1, launched)
}

func TestToggleModeStampsRequests(t *testing.T) {
	s := NewSession(Simulated{PickPage: func() int { return 7 }})
	assert.Equal(t, ModeGenerate, s.Mode())
	assert.Equal(t, ModeSearch, s.ToggleMode())
	assert.Equal(t, "search", s.Mode().String())

	s.AppendUserMessage("哈希表", nil)
	require.True(t, s.Update(runCmd(t, s.RequestAnswer(Context{Text: "哈希表"}))))
	msgs := s.Messages()
	require.Len(t, msgs, 2)
	require.NotNil(t, msgs[1].Source)
	assert.Equal(t, Source{Document: "数据结构课件", Page: 7}, *msgs[1].Source)

	s.SetMode(ModeGenerate)
	assert.Equal(t, ModeSearch, s.ToggleMode())
	assert.Equal(t, ModeGenerate, s.ToggleMode())
}

func TestWithMessagesSeedsLog(t *testing.T) {
	greeting := Message{ID: "greeting", Role: RoleAssistant, Content: "你好"}
	s := NewSession(Simulated{}, WithMessages(greeting))
	require.Len(t, s.Messages(), 1)

	msgs := s.Messages()
	msgs[0].Content = "mutated"
	assert.Equal(t, "你好", s.Messages()[0].Content)
}

func TestSimulatedAnswers(t *testing.T) {
	doc := &catalog.Document{Category: "课件", Name: "A.pdf", TotalPages: 10}

	t.Run("selection", func(t *testing.T) {
		reply, err := Simulated{}.Answer(context.Background(), Context{
			Selection: SelectionContext{Text: "二叉树"},
			Document:  doc,
			Page:      3,
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(reply.Content, "关于\"二叉树\"的解释"))
		require.NotNil(t, reply.Source)
		assert.Equal(t, 3, reply.Source.Page)
	})

	t.Run("search cites current page", func(t *testing.T) {
		reply, err := Simulated{}.Answer(context.Background(), Context{Mode: ModeSearch, Document: doc, Page: 4})
		require.NoError(t, err)
		assert.Contains(t, reply.Content, "第4页")
		assert.Equal(t, &Source{Document: "A.pdf", Page: 4}, reply.Source)
	})

	t.Run("no document no source", func(t *testing.T) {
		reply, err := Simulated{}.Answer(context.Background(), Context{Text: "hi"})
		require.NoError(t, err)
		assert.Nil(t, reply.Source)
	})

	t.Run("delay honours cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Simulated{Delay: time.Hour}.Answer(ctx, Context{Text: "hi"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

type recordingClient struct {
	got llm.Request
	err error
}

func (c *recordingClient) Name() string { return "recording" }

func (c *recordingClient) Answer(_ context.Context, req llm.Request) (string, error) {
	c.got = req
	return "answer", c.err
}

func TestLLMAnswererBuildsRequest(t *testing.T) {
	client := &recordingClient{}
	doc := &catalog.Document{Category: "课本", Name: "OS.pdf", TotalPages: 5}
	a := LLMAnswerer{
		Client: client,
		PageText: func(d catalog.Document, page int) (string, error) {
			return "page text", nil
		},
	}
	reply, err := a.Answer(context.Background(), Context{
		Selection: SelectionContext{Text: "页面置换"},
		Image:     &attach.Image{Name: "q.png", MIME: "image/png", Width: 4, Height: 4},
		Document:  doc,
		Page:      2,
		Mode:      ModeSearch,
	})
	require.NoError(t, err)
	assert.Equal(t, "answer", reply.Content)
	assert.Equal(t, &Source{Document: "OS.pdf", Page: 2}, reply.Source)
	assert.Equal(t, "OS.pdf", client.got.Title)
	assert.Equal(t, "page text", client.got.Material)
	assert.True(t, client.got.Search)
	assert.Contains(t, client.got.Question, "页面置换")
	assert.Contains(t, client.got.Question, DefaultPrompt)
	assert.Equal(t, "recording", a.Name())
}

func TestLLMAnswererWrapsErrors(t *testing.T) {
	client := &recordingClient{err: errors.New("boom")}
	_, err := LLMAnswerer{Client: client}.Answer(context.Background(), Context{Text: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	_, err = LLMAnswerer{}.Answer(context.Background(), Context{Text: "hi"})
	assert.Error(t, err)
}
