package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/studydesk/internal/chat"
)

const wheelStep = 3

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	d := m.activeDesk()
	if d == nil {
		return m.handleOverviewMouse(msg)
	}
	l := m.geometry()
	if msg.Type == tea.MouseLeft && d.dragging {
		// A held button reports further motion as repeated presses.
		msg.Type = tea.MouseMotion
	}
	switch msg.Type {
	case tea.MouseMotion:
		cmd := m.updateHover(d, l, msg.X, msg.Y)
		if d.dragging && l.surface.contains(msg.X, msg.Y) {
			d.lineCursor = d.pageOffset + msg.Y - l.surface.y
			d.clampLineCursor(len(d.pageLines(m.pageText, l.surface.w)))
		}
		return m, cmd
	case tea.MouseRelease:
		if d.dragging {
			d.dragging = false
			text := d.selectedText(d.pageLines(m.pageText, l.surface.w))
			d.highlighting = false
			if d.ctrl.CaptureSelection(text) {
				m.infoMessage = "已选中内容，可直接提问。"
			}
		}
		return m, nil
	case tea.MouseWheelUp, tea.MouseWheelDown:
		m.scroll(d, l, msg)
		return m, nil
	case tea.MouseLeft:
		return m.handleClick(d, l, msg.X, msg.Y)
	}
	return m, nil
}

// updateHover turns pointer motion into enter/leave transitions on the region
// that keeps the filmstrip open: the next-page button, the page surface and
// the strip itself while it is shown.
func (m *model) updateHover(d *desk, l pageLayout, x, y int) tea.Cmd {
	inside := l.navNext.contains(x, y) || l.surface.contains(x, y) ||
		(d.ctrl.FilmstripShown() && l.strip.contains(x, y))
	if inside == m.hover {
		return nil
	}
	m.hover = inside
	if inside {
		d.ctrl.PointerEnter()
		return nil
	}
	return d.ctrl.PointerLeave()
}

func (m *model) scroll(d *desk, l pageLayout, msg tea.MouseMsg) {
	up := msg.Type == tea.MouseWheelUp
	switch {
	case l.transcript.contains(msg.X, msg.Y):
		if up {
			m.chatView.LineUp(wheelStep)
		} else {
			m.chatView.LineDown(wheelStep)
		}
	case l.catalogList.contains(msg.X, msg.Y):
		if up {
			d.offset -= wheelStep
		} else {
			d.offset += wheelStep
		}
		if limit := len(d.lines) - l.catalogList.h; d.offset > limit {
			d.offset = limit
		}
		if d.offset < 0 {
			d.offset = 0
		}
	case l.surface.contains(msg.X, msg.Y):
		if up {
			d.pageOffset -= wheelStep
		} else {
			d.pageOffset += wheelStep
		}
		if limit := len(d.pageLines(m.pageText, l.surface.w)) - l.surface.h; d.pageOffset > limit {
			d.pageOffset = limit
		}
		if d.pageOffset < 0 {
			d.pageOffset = 0
		}
	}
}

func (m *model) handleClick(d *desk, l pageLayout, x, y int) (tea.Model, tea.Cmd) {
	if d.ctrl.FilmstripShown() {
		if l.strip.contains(x, y) {
			for _, cell := range filmstripCells(d.ctrl.Thumbnails(), l.strip) {
				if !cell.area.contains(x, y) {
					continue
				}
				if err := d.ctrl.SelectThumbnail(cell.page); err != nil {
					m.errorMessage = err.Error()
					return m, nil
				}
				return m, m.afterNavigate(d)
			}
			return m, nil
		}
		d.ctrl.ClickOutside()
	}

	switch {
	case l.tabLearning.contains(x, y):
		return m, m.switchTab(tabLearning)
	case l.tabExam.contains(x, y):
		return m, m.switchTab(tabExam)
	case m.tab == tabExam && l.back.contains(x, y):
		m.closeExamReader()
	case l.leftToggle.contains(x, y):
		d.ctrl.ToggleLeft()
	case l.rightToggle.contains(x, y):
		d.ctrl.ToggleRight()
	case m.tab == tabLearning && l.uploadLine.contains(x, y):
		return m, m.startUpload()
	case l.catalogList.contains(x, y):
		idx := d.offset + y - l.catalogList.y
		m.setFocus(focusCatalog)
		if idx >= 0 && idx < len(d.lines) && d.lines[idx].doc >= 0 {
			d.cursor = d.lines[idx].doc
			return m, m.openDocument(d)
		}
	case l.modeGenerate.contains(x, y):
		d.session.SetMode(chat.ModeGenerate)
	case l.modeSearch.contains(x, y):
		d.session.SetMode(chat.ModeSearch)
	case l.stagedRemove.contains(x, y) && d.ctrl.Image() != nil:
		d.ctrl.DetachImage()
	case l.composer.contains(x, y), l.transcript.contains(x, y):
		m.setFocus(focusComposer)
	case l.navPrev.contains(x, y):
		if d.ctrl.PrevPage() {
			return m, m.afterNavigate(d)
		}
	case l.navNext.contains(x, y):
		if d.ctrl.NextPage() {
			return m, m.afterNavigate(d)
		}
	case l.selectionClear.contains(x, y) && d.ctrl.Selection().Staged():
		d.ctrl.ClearSelection()
	case l.surface.contains(x, y):
		m.setFocus(focusPreview)
		if !d.ctrl.Viewer().Viewing() {
			return m, nil
		}
		line := d.pageOffset + y - l.surface.y
		count := len(d.pageLines(m.pageText, l.surface.w))
		if line >= count {
			return m, nil
		}
		d.anchor = line
		d.lineCursor = line
		d.highlighting = true
		d.dragging = true
	}
	return m, nil
}

func (m *model) handleOverviewMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.MouseLeft {
		return m, nil
	}
	l := m.geometry()
	switch {
	case l.tabLearning.contains(msg.X, msg.Y):
		return m, m.switchTab(tabLearning)
	case l.tabExam.contains(msg.X, msg.Y):
		return m, nil
	}
	list := l.overviewList(len(m.config.Exams))
	if !list.contains(msg.X, msg.Y) {
		return m, nil
	}
	idx := msg.Y - list.y
	if idx == m.examIdx {
		m.openExamReader()
		return m, nil
	}
	m.examIdx = idx
	return m, nil
}
