package tuitest

import "time"

// Step is one scripted interaction. Input is written after Delay.
type Step struct {
	Delay time.Duration
	Input []byte
}

var (
	KeyEnter = []byte{'\r'}
	KeyTab   = []byte{'\t'}
	KeyEsc   = []byte{27}
	KeyCtrlC = []byte{3}
	KeyCtrlL = []byte{12}
	KeyCtrlR = []byte{18}
	KeyUp    = []byte("\x1b[A")
	KeyDown  = []byte("\x1b[B")
	KeyRight = []byte("\x1b[C")
	KeyLeft  = []byte("\x1b[D")
)

// Type returns a step that types s after delay.
func Type(delay time.Duration, s string) Step {
	return Step{Delay: delay, Input: []byte(s)}
}

// Press returns a step that sends key after delay.
func Press(delay time.Duration, key []byte) Step {
	return Step{Delay: delay, Input: key}
}

// X10 mouse encoding, as read by Bubble Tea: ESC [ M then button, column
// and row, each offset by 32 with 1-based coordinates.
const (
	mouseOffset  = 32
	mouseLeft    = 0
	mouseRelease = 3
	mouseMotion  = 32
)

func mouseSeq(button, x, y int) []byte {
	return []byte{27, '[', 'M', byte(button + mouseOffset), byte(x + 1 + mouseOffset), byte(y + 1 + mouseOffset)}
}

// Click presses and releases the left button at the zero-based cell x, y.
func Click(delay time.Duration, x, y int) Step {
	seq := append(mouseSeq(mouseLeft, x, y), mouseSeq(mouseRelease, x, y)...)
	return Step{Delay: delay, Input: seq}
}

// Hover moves the pointer to x, y with no button held.
func Hover(delay time.Duration, x, y int) Step {
	return Step{Delay: delay, Input: mouseSeq(mouseMotion|mouseRelease, x, y)}
}
