package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/csheth/studydesk/internal/reader"
)

// rect is a screen region in terminal cells.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return r.w > 0 && r.h > 0 && x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (r rect) inner() rect {
	if r.w < 2 || r.h < 2 {
		return rect{}
	}
	return rect{x: r.x + 1, y: r.y + 1, w: r.w - 2, h: r.h - 2}
}

// pageLayout is the geometry of one frame. View renders from it and the mouse
// handler hit-tests against it, so the two always agree.
type pageLayout struct {
	width  int
	height int

	tabLearning rect
	tabExam     rect
	back        rect
	body        rect

	left    rect
	chat    rect
	preview rect

	leftToggle  rect
	rightToggle rect
	uploadLine  rect
	catalogList rect

	modeGenerate rect
	modeSearch   rect
	transcript   rect
	stagedLine   rect
	stagedRemove rect
	composer     rect

	previewHeader  rect
	navPrev        rect
	navNext        rect
	surface        rect
	selectionLine  rect
	selectionClear rect

	strip rect
}

func computeLayout(width, height int, panes reader.Layout) pageLayout {
	if width < minScreenWidth {
		width = minScreenWidth
	}
	if height < minScreenHeight {
		height = minScreenHeight
	}
	l := pageLayout{width: width, height: height}

	x := lipgloss.Width(titleText()) + 2
	l.tabLearning = rect{x: x, y: 0, w: runewidth.StringWidth(labelLearningTab), h: 1}
	x += l.tabLearning.w + 1
	l.tabExam = rect{x: x, y: 0, w: runewidth.StringWidth(labelExamTab), h: 1}
	x += l.tabExam.w + 2
	l.back = rect{x: x, y: 0, w: runewidth.StringWidth(labelBack), h: 1}

	l.body = rect{x: 0, y: headerHeight, w: width, h: height - headerHeight - footerHeight}

	leftW := leftPaneWidth
	if panes.LeftCollapsed {
		leftW = collapsedPaneWidth
	}
	previewW := width * 2 / 5
	if previewW < minPreviewWidth {
		previewW = minPreviewWidth
	}
	if panes.RightCollapsed {
		previewW = collapsedPaneWidth
	}
	chatW := width - leftW - previewW
	if chatW < minChatWidth {
		previewW -= minChatWidth - chatW
		if previewW < collapsedPaneWidth {
			previewW = collapsedPaneWidth
		}
		chatW = width - leftW - previewW
	}

	l.left = rect{x: 0, y: l.body.y, w: leftW, h: l.body.h}
	l.chat = rect{x: leftW, y: l.body.y, w: chatW, h: l.body.h}
	l.preview = rect{x: leftW + chatW, y: l.body.y, w: previewW, h: l.body.h}

	li := l.left.inner()
	if panes.LeftCollapsed {
		l.leftToggle = rect{x: li.x, y: li.y, w: 1, h: 1}
	} else {
		l.leftToggle = rect{x: li.x + li.w - 1, y: li.y, w: 1, h: 1}
		l.uploadLine = rect{x: li.x, y: li.y + 1, w: li.w, h: 1}
		l.catalogList = rect{x: li.x, y: li.y + 2, w: li.w, h: li.h - 2}
	}

	ci := l.chat.inner()
	mx := ci.x + runewidth.StringWidth(labelChatTitle) + 2
	l.modeGenerate = rect{x: mx, y: ci.y, w: runewidth.StringWidth(labelModeAI), h: 1}
	mx += l.modeGenerate.w + 1
	l.modeSearch = rect{x: mx, y: ci.y, w: runewidth.StringWidth(labelModeSearch), h: 1}
	l.transcript = rect{x: ci.x, y: ci.y + 1, w: ci.w, h: ci.h - 4}
	l.stagedLine = rect{x: ci.x, y: ci.y + ci.h - 3, w: ci.w, h: 1}
	l.stagedRemove = rect{x: ci.x + ci.w - 3, y: l.stagedLine.y, w: 3, h: 1}
	l.composer = rect{x: ci.x, y: ci.y + ci.h - 2, w: ci.w, h: 1}

	pi := l.preview.inner()
	l.rightToggle = rect{x: pi.x, y: pi.y, w: 1, h: 1}
	if !panes.RightCollapsed {
		l.previewHeader = rect{x: pi.x, y: pi.y, w: pi.w, h: 2}
		navW := runewidth.StringWidth(labelNavNext)
		l.navNext = rect{x: pi.x + pi.w - navW, y: pi.y + 1, w: navW, h: 1}
		l.navPrev = rect{x: l.navNext.x - 1 - navW, y: pi.y + 1, w: navW, h: 1}
		l.surface = rect{x: pi.x, y: pi.y + 2, w: pi.w, h: pi.h - 3}
		l.selectionLine = rect{x: pi.x, y: pi.y + pi.h - 1, w: pi.w, h: 1}
		l.selectionClear = rect{x: pi.x + pi.w - 3, y: l.selectionLine.y, w: 3, h: 1}
	}

	l.strip = rect{x: 0, y: l.body.y + l.body.h - filmstripHeight, w: width, h: filmstripHeight}
	return l
}

// overviewList is where the exam overview lists its exams, one per row.
func (l pageLayout) overviewList(count int) rect {
	inner := l.body.inner()
	if count > inner.h-1 {
		count = inner.h - 1
	}
	return rect{x: inner.x, y: inner.y + 1, w: inner.w, h: count}
}

type thumbCell struct {
	page    int
	current bool
	area    rect
}

func thumbLabel(page int) string {
	return "[" + strconv.Itoa(page) + "]"
}

// filmstripCells lays the page buttons out on the strip's middle row. When
// they do not all fit, the window slides so the current page stays visible.
func filmstripCells(thumbs []reader.Thumbnail, strip rect) []thumbCell {
	if len(thumbs) == 0 || strip.h < 2 {
		return nil
	}
	avail := strip.w - 2
	widths := make([]int, len(thumbs))
	current := 0
	for i, t := range thumbs {
		widths[i] = len(thumbLabel(t.Page))
		if t.Current {
			current = i
		}
	}
	span := func(from, to int) int {
		total := 0
		for i := from; i <= to; i++ {
			total += widths[i]
			if i > from {
				total++
			}
		}
		return total
	}
	start := 0
	for start < current && span(start, current) > avail {
		start++
	}
	end := start
	for end+1 < len(thumbs) && span(start, end+1) <= avail {
		end++
	}
	cells := make([]thumbCell, 0, end-start+1)
	x := strip.x + 1
	for i := start; i <= end; i++ {
		if span(start, i) > avail {
			break
		}
		cells = append(cells, thumbCell{
			page:    thumbs[i].Page,
			current: thumbs[i].Current,
			area:    rect{x: x, y: strip.y + 1, w: widths[i], h: 1},
		})
		x += widths[i] + 1
	}
	return cells
}

// fitLine truncates or pads s to exactly width cells.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		s = truncate.StringWithTail(s, uint(width), "…")
		if lipgloss.Width(s) > width {
			s = truncate.String(s, uint(width))
		}
	}
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// fitLines clips lines to a width×height block.
func fitLines(lines []string, width, height int) []string {
	out := make([]string, height)
	for i := 0; i < height; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = fitLine(line, width)
	}
	return out
}

// splitRight places right at the end of a width-cell line starting with left.
func splitRight(left, right string, width int) string {
	rw := lipgloss.Width(right)
	if rw >= width {
		return fitLine(right, width)
	}
	return fitLine(left, width-rw) + right
}

// overlayBottom replaces base's lines from row on with overlay's lines.
func overlayBottom(base, overlay string, row int) string {
	lines := strings.Split(base, "\n")
	for i, line := range strings.Split(overlay, "\n") {
		idx := row + i
		if idx < 0 || idx >= len(lines) {
			continue
		}
		lines[idx] = line
	}
	return strings.Join(lines, "\n")
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func previewText(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

// wrapText word-wraps s to width, then hard-wraps what is still too long.
// Chinese text has no spaces to break on.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wrap.String(wordwrap.String(s, width), width)
}
