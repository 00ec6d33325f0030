// Package chat keeps the message log of one study session and runs answer
// generation for each submission.
package chat

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/csheth/studydesk/internal/attach"
	"github.com/csheth/studydesk/internal/catalog"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MessageID identifies a message within the log.
type MessageID string

// Mode picks how answers are produced.
type Mode int

const (
	// ModeGenerate asks for a worked explanation.
	ModeGenerate Mode = iota
	// ModeSearch points the student at the material that covers the question.
	ModeSearch
)

func (m Mode) String() string {
	if m == ModeSearch {
		return "search"
	}
	return "generate"
}

// SelectionContext is text captured from the document viewer.
type SelectionContext struct {
	Text string
}

// Source cites the document page an answer relies on.
type Source struct {
	Document string
	Page     int
}

// Context is everything staged for one submission.
type Context struct {
	Text      string
	Image     *attach.Image
	Selection SelectionContext
	Document  *catalog.Document
	Page      int
	Mode      Mode
}

// Message is one entry in the visible log.
type Message struct {
	ID      MessageID
	Role    Role
	Content string
	Image   *attach.Image
	Source  *Source
	Err     string
	At      time.Time
}

// Reply is what an Answerer produces.
type Reply struct {
	Content string
	Source  *Source
}

// Answerer generates replies for submissions.
type Answerer interface {
	Answer(ctx context.Context, c Context) (Reply, error)
	Name() string
}

// Launcher turns an answer job into a command. Hosts use it to route jobs
// through their own bookkeeping.
type Launcher func(run func(context.Context) (tea.Msg, error)) tea.Cmd

// AnswerMsg carries a finished answer back to the session that asked.
type AnswerMsg struct {
	SessionID string
	Request   MessageID
	Reply     Reply
	Err       error
}

// Session is the message log of one viewing session.
type Session struct {
	id       string
	answerer Answerer
	launch   Launcher
	now      func() time.Time
	messages []Message
	pending  int
	mode     Mode
	closed   bool
}

// Option customises a Session.
type Option func(*Session)

// WithLauncher routes answer jobs through l.
func WithLauncher(l Launcher) Option {
	return func(s *Session) {
		if l != nil {
			s.launch = l
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMessages seeds the log, for example with a greeting exchange.
func WithMessages(msgs ...Message) Option {
	return func(s *Session) {
		s.messages = append(s.messages, msgs...)
	}
}

// NewSession returns an empty session answering through a.
func NewSession(a Answerer, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		answerer: a,
		launch:   runInline,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func runInline(run func(context.Context) (tea.Msg, error)) tea.Cmd {
	return func() tea.Msg {
		msg, _ := run(context.Background())
		return msg
	}
}

// ID identifies the session in AnswerMsg values.
func (s *Session) ID() string {
	return s.id
}

// AnswererName reports which backend answers, or "" when none is wired.
func (s *Session) AnswererName() string {
	if s.answerer == nil {
		return ""
	}
	return s.answerer.Name()
}

// AppendUserMessage adds the student's message to the log.
func (s *Session) AppendUserMessage(text string, image *attach.Image) MessageID {
	id := MessageID(uuid.NewString())
	s.messages = append(s.messages, Message{
		ID:      id,
		Role:    RoleUser,
		Content: text,
		Image:   image,
		At:      s.now(),
	})
	return id
}

// RequestAnswer starts answer generation for c. The reply is appended when
// its AnswerMsg reaches Update.
func (s *Session) RequestAnswer(c Context) tea.Cmd {
	if s.closed || s.answerer == nil {
		return nil
	}
	c.Mode = s.mode
	var request MessageID
	if n := len(s.messages); n > 0 && s.messages[n-1].Role == RoleUser {
		request = s.messages[n-1].ID
	}
	s.pending++
	answerer := s.answerer
	sessionID := s.id
	return s.launch(func(ctx context.Context) (tea.Msg, error) {
		reply, err := answerer.Answer(ctx, c)
		return AnswerMsg{SessionID: sessionID, Request: request, Reply: reply, Err: err}, err
	})
}

// Update appends answers addressed to this session. It reports whether msg
// was consumed.
func (s *Session) Update(msg tea.Msg) bool {
	answer, ok := msg.(AnswerMsg)
	if !ok || answer.SessionID != s.id {
		return false
	}
	if s.closed {
		log.Printf("[chat] dropped answer for closed session %s", s.id)
		return true
	}
	if s.pending > 0 {
		s.pending--
	}
	entry := Message{
		ID:      MessageID(uuid.NewString()),
		Role:    RoleAssistant,
		Content: answer.Reply.Content,
		Source:  answer.Reply.Source,
		At:      s.now(),
	}
	if answer.Err != nil {
		entry.Err = answer.Err.Error()
	}
	s.messages = append(s.messages, entry)
	return true
}

// Messages returns the log in arrival order.
func (s *Session) Messages() []Message {
	return append([]Message(nil), s.messages...)
}

// Pending reports whether answers are outstanding.
func (s *Session) Pending() bool {
	return s.pending > 0 && !s.closed
}

// Mode returns the answer mode used for new requests.
func (s *Session) Mode() Mode {
	return s.mode
}

// SetMode changes the answer mode for new requests.
func (s *Session) SetMode(mode Mode) {
	s.mode = mode
}

// ToggleMode flips between generate and search.
func (s *Session) ToggleMode() Mode {
	if s.mode == ModeSearch {
		s.mode = ModeGenerate
	} else {
		s.mode = ModeSearch
	}
	return s.mode
}

// Close tears the session down; answers that arrive later are dropped.
func (s *Session) Close() {
	s.closed = true
	s.pending = 0
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	return s.closed
}
