package reader

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/studydesk/internal/timer"
)

// DefaultHideDelay is how long the filmstrip lingers after the pointer leaves.
const DefaultHideDelay = 3000 * time.Millisecond

// Filmstrip is the transient page strip. It owns a single hide timer.
type Filmstrip struct {
	visible bool
	delay   time.Duration
	hide    *timer.Timer
}

// NewFilmstrip returns a hidden filmstrip whose hide timer runs on sched.
// A non-positive delay falls back to DefaultHideDelay.
func NewFilmstrip(sched timer.Scheduler, delay time.Duration) *Filmstrip {
	if delay <= 0 {
		delay = DefaultHideDelay
	}
	return &Filmstrip{delay: delay, hide: timer.New(sched)}
}

// Visible reports whether the strip is shown.
func (f *Filmstrip) Visible() bool {
	return f.visible
}

// HidePending reports whether a hide is scheduled.
func (f *Filmstrip) HidePending() bool {
	return f.hide.Pending()
}

// Delay is the default hide delay.
func (f *Filmstrip) Delay() time.Duration {
	return f.delay
}

// RequestShow shows the strip and cancels any scheduled hide.
func (f *Filmstrip) RequestShow() {
	if f.hide.Stopped() {
		return
	}
	f.visible = true
	f.hide.Cancel()
}

// RequestHide schedules the strip to hide after delay, replacing any earlier
// schedule. A hidden strip schedules nothing.
func (f *Filmstrip) RequestHide(delay time.Duration) tea.Cmd {
	if !f.visible {
		return nil
	}
	if delay <= 0 {
		delay = f.delay
	}
	return f.hide.Schedule(delay)
}

// Dismiss hides the strip immediately.
func (f *Filmstrip) Dismiss() {
	f.visible = false
	f.hide.Cancel()
}

// Update applies hide timer firings. It reports whether msg belonged to this
// strip's timer, live or stale.
func (f *Filmstrip) Update(msg tea.Msg) bool {
	fired, ok := msg.(timer.FiredMsg)
	if !ok || fired.ID != f.hide.ID() {
		return false
	}
	if f.hide.Fire(msg) {
		f.visible = false
	}
	return true
}

// Close dismisses the strip for good; later firings and requests are ignored.
func (f *Filmstrip) Close() {
	f.Dismiss()
	f.hide.Stop()
}

// Thumbnail is one page button in the strip.
type Thumbnail struct {
	Page    int
	Current bool
}

// Thumbnails lists one entry per page of the viewed document. It is computed
// from the viewer on every call.
func Thumbnails(v *Viewer) []Thumbnail {
	total := v.TotalPages()
	if total < 1 {
		return nil
	}
	thumbs := make([]Thumbnail, total)
	for i := range thumbs {
		thumbs[i] = Thumbnail{Page: i + 1, Current: i+1 == v.Page()}
	}
	return thumbs
}
