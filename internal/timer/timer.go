// Package timer schedules single delayed actions for Bubble Tea models.
//
// A Timer never runs code on its own goroutine: scheduling returns a tea.Cmd
// that later delivers a FiredMsg to Update, and the owner asks the Timer
// whether that message is still the live firing. Rescheduling or cancelling
// bumps an internal tag so superseded firings are recognised and dropped.
package timer

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler turns a delay into a command that delivers msg once the delay
// has elapsed.
type Scheduler interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

type teaScheduler struct{}

func (teaScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

// Real schedules through tea.Tick.
var Real Scheduler = teaScheduler{}

// FiredMsg is delivered when a scheduled delay elapses.
type FiredMsg struct {
	ID  int64
	tag int64
}

var lastID int64

// Timer holds at most one pending delayed action.
type Timer struct {
	id      int64
	tag     int64
	pending bool
	stopped bool
	sched   Scheduler
}

// New returns an idle Timer. A nil scheduler falls back to Real.
func New(sched Scheduler) *Timer {
	if sched == nil {
		sched = Real
	}
	return &Timer{
		id:    atomic.AddInt64(&lastID, 1),
		sched: sched,
	}
}

// ID identifies the timer in FiredMsg values.
func (t *Timer) ID() int64 {
	return t.id
}

// Pending reports whether a scheduled firing is still live.
func (t *Timer) Pending() bool {
	return t.pending
}

// Stopped reports whether the timer was torn down.
func (t *Timer) Stopped() bool {
	return t.stopped
}

// Schedule replaces any pending firing with a new one after d. It returns nil
// once the timer has been stopped.
func (t *Timer) Schedule(d time.Duration) tea.Cmd {
	if t.stopped {
		return nil
	}
	t.tag++
	t.pending = true
	return t.sched.After(d, FiredMsg{ID: t.id, tag: t.tag})
}

// Cancel drops the pending firing, if any.
func (t *Timer) Cancel() {
	if t.pending {
		t.tag++
	}
	t.pending = false
}

// Stop cancels the timer for good. Later Schedule calls are no-ops and
// in-flight firings are ignored.
func (t *Timer) Stop() {
	t.Cancel()
	t.stopped = true
}

// Fire reports whether msg is this timer's live firing and, if so, clears
// the pending handle. A firing is accepted at most once.
func (t *Timer) Fire(msg tea.Msg) bool {
	fired, ok := msg.(FiredMsg)
	if !ok || fired.ID != t.id {
		return false
	}
	if t.stopped || !t.pending || fired.tag != t.tag {
		return false
	}
	t.pending = false
	return true
}
