package tuitest

import (
	"bytes"
	"io"
)

// terminalQueries are the probes Bubble Tea and termenv send at start-up,
// paired with the replies a plain xterm would give. Without replies the
// program stalls until its own query timeout.
var terminalQueries = []struct {
	query []byte
	reply []byte
}{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

const (
	responderWindow = 256
	responderTail   = 64
)

type responder struct {
	w       io.Writer
	pending []byte
}

func newResponder(w io.Writer) *responder {
	return &responder{w: w}
}

// Feed scans program output for queries and answers each one once.
func (r *responder) Feed(chunk []byte) {
	r.pending = append(r.pending, chunk...)
	for r.answerNext() {
	}
	if len(r.pending) > responderWindow {
		r.pending = append([]byte(nil), r.pending[len(r.pending)-responderTail:]...)
	}
}

// answerNext replies to the earliest query in the buffer.
func (r *responder) answerNext() bool {
	first, at := -1, -1
	for i, q := range terminalQueries {
		idx := bytes.Index(r.pending, q.query)
		if idx >= 0 && (at < 0 || idx < at) {
			first, at = i, idx
		}
	}
	if first < 0 {
		return false
	}
	r.pending = r.pending[at+len(terminalQueries[first].query):]
	_, _ = r.w.Write(terminalQueries[first].reply)
	return true
}
