package timer

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Manual is a Scheduler driven by simulated time. Deliveries are registered
// when After is called; Advance returns the messages that became due.
type Manual struct {
	now   time.Duration
	seq   int
	queue []manualEntry
}

type manualEntry struct {
	due time.Duration
	seq int
	msg tea.Msg
}

// NewManual returns a Manual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// After registers msg for delivery d after the current simulated time. The
// returned command is inert; the message is only produced by Advance.
func (m *Manual) After(d time.Duration, msg tea.Msg) tea.Cmd {
	m.seq++
	m.queue = append(m.queue, manualEntry{due: m.now + d, seq: m.seq, msg: msg})
	return func() tea.Msg { return nil }
}

// Now reports the simulated time elapsed since creation.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending reports how many deliveries have not been released yet.
func (m *Manual) Pending() int {
	return len(m.queue)
}

// Advance moves the clock forward by d and returns due messages in firing
// order.
func (m *Manual) Advance(d time.Duration) []tea.Msg {
	m.now += d
	sort.SliceStable(m.queue, func(i, j int) bool {
		if m.queue[i].due == m.queue[j].due {
			return m.queue[i].seq < m.queue[j].seq
		}
		return m.queue[i].due < m.queue[j].due
	})
	var due []tea.Msg
	rest := m.queue[:0]
	for _, entry := range m.queue {
		if entry.due <= m.now {
			due = append(due, entry.msg)
			continue
		}
		rest = append(rest, entry)
	}
	m.queue = rest
	return due
}
