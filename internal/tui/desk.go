package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/studydesk/internal/catalog"
	"github.com/csheth/studydesk/internal/chat"
	"github.com/csheth/studydesk/internal/reader"
)

type catalogLine struct {
	text string
	doc  int // index into desk.docs, -1 for a category header
}

// desk is one reader session: the controller, its chat session, and the
// view state the terminal needs on top of them.
type desk struct {
	title   string
	ctrl    *reader.Controller
	session *chat.Session

	docs   []catalog.Document
	lines  []catalogLine
	cursor int
	offset int

	lineCursor   int
	pageOffset   int
	highlighting bool
	anchor       int
	dragging     bool

	seen        int
	seenPending bool
}

func newDesk(title string, cat catalog.Catalog, session *chat.Session, opts reader.Options) *desk {
	d := &desk{
		title:   title,
		ctrl:    reader.New(cat, session, opts),
		session: session,
		seen:    -1,
	}
	for _, category := range d.ctrl.Catalog() {
		d.lines = append(d.lines, catalogLine{text: category.Name, doc: -1})
		for _, doc := range category.Documents {
			d.lines = append(d.lines, catalogLine{
				text: fmt.Sprintf("%s  %d页", doc.Name, doc.TotalPages),
				doc:  len(d.docs),
			})
			d.docs = append(d.docs, doc)
		}
	}
	return d
}

// update hands msg to the controller and the chat session.
func (d *desk) update(msg tea.Msg) bool {
	if d.ctrl.Update(msg) {
		return true
	}
	return d.session.Update(msg)
}

func (d *desk) close() {
	d.ctrl.Close()
	d.session.Close()
}

func (d *desk) moveCursor(delta int) {
	if len(d.docs) == 0 {
		return
	}
	d.cursor += delta
	if d.cursor < 0 {
		d.cursor = 0
	}
	if d.cursor >= len(d.docs) {
		d.cursor = len(d.docs) - 1
	}
}

// selectCursor opens the document under the catalog cursor.
func (d *desk) selectCursor() error {
	if d.cursor < 0 || d.cursor >= len(d.docs) {
		return nil
	}
	d.resetPreviewCursor()
	return d.ctrl.SelectDocument(d.docs[d.cursor])
}

func (d *desk) resetPreviewCursor() {
	d.lineCursor = 0
	d.pageOffset = 0
	d.highlighting = false
	d.dragging = false
}

// selectedDocIndex is the docs index of the viewed document, or -1.
func (d *desk) selectedDocIndex() int {
	doc := d.ctrl.Viewer().Document()
	if doc == nil {
		return -1
	}
	for i, candidate := range d.docs {
		if candidate.Same(*doc) {
			return i
		}
	}
	return -1
}

// lineOfDoc is the catalog line showing docs[idx].
func (d *desk) lineOfDoc(idx int) int {
	for i, line := range d.lines {
		if line.doc == idx {
			return i
		}
	}
	return 0
}

// ensureCursorVisible scrolls the catalog so the cursor row is on screen.
func (d *desk) ensureCursorVisible(height int) {
	if height <= 0 {
		return
	}
	line := d.lineOfDoc(d.cursor)
	if line < d.offset {
		d.offset = line
		if d.offset > 0 && d.lines[d.offset-1].doc < 0 {
			d.offset--
		}
	}
	if line >= d.offset+height {
		d.offset = line - height + 1
	}
}

// pageLines is the text shown for the current page, wrapped to width.
func (d *desk) pageLines(cache map[pageKey]pageTextEntry, width int) []string {
	doc := d.ctrl.Viewer().Document()
	if doc == nil {
		return nil
	}
	page := d.ctrl.Viewer().Page()
	if doc.Path != "" {
		entry, ok := cache[pageKey{path: doc.Path, page: page}]
		switch {
		case !ok || entry.loading:
			return []string{"正在提取页面文本…"}
		case entry.err != nil:
			return []string{"无法读取本页：" + entry.err.Error()}
		case strings.TrimSpace(entry.text) != "":
			return strings.Split(wrapText(entry.text, width), "\n")
		}
	}
	return []string{
		"",
		doc.Name,
		fmt.Sprintf("第 %d 页预览", page),
		"",
		"选中文字可以直接提问",
	}
}

// ensureLineVisible scrolls the page surface so the line cursor is on screen.
func (d *desk) ensureLineVisible(height int) {
	if height <= 0 {
		return
	}
	if d.lineCursor < d.pageOffset {
		d.pageOffset = d.lineCursor
	}
	if d.lineCursor >= d.pageOffset+height {
		d.pageOffset = d.lineCursor - height + 1
	}
}

func (d *desk) clampLineCursor(count int) {
	if count <= 0 {
		d.lineCursor = 0
		return
	}
	if d.lineCursor >= count {
		d.lineCursor = count - 1
	}
	if d.lineCursor < 0 {
		d.lineCursor = 0
	}
}

// selectionRange is the highlighted line span, ordered.
func (d *desk) selectionRange() (int, int, bool) {
	if !d.highlighting {
		return 0, 0, false
	}
	start, end := d.anchor, d.lineCursor
	if start > end {
		start, end = end, start
	}
	return start, end, true
}

// selectedText joins the highlighted lines.
func (d *desk) selectedText(lines []string) string {
	start, end, ok := d.selectionRange()
	if !ok || len(lines) == 0 {
		return ""
	}
	if end >= len(lines) {
		end = len(lines) - 1
	}
	if start > end {
		return ""
	}
	return strings.TrimSpace(strings.Join(lines[start:end+1], "\n"))
}
