package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/studydesk/internal/chat"
	"github.com/csheth/studydesk/internal/exam"
	"github.com/csheth/studydesk/internal/guide"
)

func titleText() string {
	return "Study Desk"
}

func (m *model) View() string {
	l := m.geometry()
	d := m.activeDesk()

	var body string
	switch {
	case m.helpVisible:
		body = m.helpBody(l)
	case d != nil:
		body = m.deskView(d, l)
	default:
		body = m.overviewView(l)
	}
	frame := strings.Join([]string{m.headerView(l), body, m.footerView(l)}, "\n")
	if d != nil && !m.helpVisible && d.ctrl.FilmstripShown() {
		frame = overlayBottom(frame, m.filmstripView(d, l), l.strip.y)
	}
	return frame
}

func (m *model) headerView(l pageLayout) string {
	learning, examTab := inactiveTabStyle, inactiveTabStyle
	if m.tab == tabLearning {
		learning = activeTabStyle
	} else {
		examTab = activeTabStyle
	}
	parts := titleStyle.Render(titleText()) + "  " +
		learning.Render(labelLearningTab) + " " + examTab.Render(labelExamTab) + "  "
	if m.tab == tabExam && m.examDesk != nil {
		parts += buttonStyle.Render(labelBack) + "  " + helperStyle.Render(m.examDesk.title)
	} else {
		parts += taglineStyle.Render(heroTagline)
	}
	return fitLine(parts, l.width)
}

func (m *model) footerView(l pageLayout) string {
	status := fitLine(m.sessionMeterView(), l.width)
	var message string
	switch {
	case m.errorMessage != "":
		message = errorStyle.Render(m.errorMessage)
	case m.anyPending():
		message = m.spinner.View() + " " + helperStyle.Render("AI 正在思考…")
	default:
		message = helperStyle.Render(m.infoMessage)
	}
	return status + "\n" + fitLine(message, l.width)
}

func (m *model) sessionMeterView() string {
	stats := []string{}
	if d := m.activeDesk(); d != nil {
		stats = append(stats, "模式 "+modeLabel(d.session.Mode()))
		if doc := d.ctrl.Viewer().Document(); doc != nil {
			stats = append(stats, fmt.Sprintf("%s %d/%d", doc.Name, d.ctrl.Viewer().Page(), doc.TotalPages))
		}
		stats = append(stats, fmt.Sprintf("消息 %d", len(d.session.Messages())))
		if name := d.session.AnswererName(); name != "" {
			stats = append(stats, name)
		}
	} else {
		stats = append(stats, fmt.Sprintf("考试 %d", len(m.config.Exams)))
	}
	if jobBadges := m.jobStatusBadges(); len(jobBadges) > 0 {
		stats = append(stats, jobBadges...)
	}
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func renderPane(lines []string, r rect, focused bool) string {
	style := paneStyle
	if focused {
		style = focusedPaneStyle
	}
	inner := r.inner()
	return style.Render(strings.Join(fitLines(lines, inner.w, inner.h), "\n"))
}

func (m *model) deskView(d *desk, l pageLayout) string {
	left := renderPane(m.catalogLines(d, l), l.left, m.focus == focusCatalog)
	middle := renderPane(m.chatLines(d, l), l.chat, m.focus == focusComposer)
	right := renderPane(m.previewLines(d, l), l.preview, m.focus == focusPreview)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, middle, right)
}

func (m *model) catalogLines(d *desk, l pageLayout) []string {
	if d.ctrl.Layout().LeftCollapsed {
		return []string{buttonStyle.Render(labelExpandL)}
	}
	inner := l.left.inner()
	title := labelCatalog
	if m.tab == tabExam {
		title = d.title
	}
	lines := []string{splitRight(sectionHeaderStyle.Render(title), buttonStyle.Render(labelCollapseL), inner.w)}

	switch {
	case m.tab != tabLearning:
		lines = append(lines, helperStyle.Render("b/Esc 返回概览"))
	case m.upload.percent > 0:
		m.progress.Width = inner.w
		lines = append(lines, m.progress.ViewAs(float64(m.upload.percent)/100))
	default:
		lines = append(lines, helperStyle.Render("[u] 上传课件/电子课本"))
	}

	if len(d.lines) == 0 {
		return append(lines, helperStyle.Render("暂无资料"))
	}
	viewed := d.selectedDocIndex()
	end := d.offset + l.catalogList.h
	if end > len(d.lines) {
		end = len(d.lines)
	}
	for _, line := range d.lines[d.offset:end] {
		if line.doc < 0 {
			lines = append(lines, categoryStyle.Render(line.text))
			continue
		}
		marker := "  "
		if line.doc == d.cursor && m.focus == focusCatalog {
			marker = "▸ "
		}
		text := fitLine(line.text, inner.w-2)
		if line.doc == viewed {
			text = activeDocStyle.Render(text)
		}
		lines = append(lines, marker+text)
	}
	return lines
}

func (m *model) chatLines(d *desk, l pageLayout) []string {
	inner := l.chat.inner()
	generate, search := inactiveTabStyle, inactiveTabStyle
	if d.session.Mode() == chat.ModeSearch {
		search = activeTabStyle
	} else {
		generate = activeTabStyle
	}
	lines := []string{sectionHeaderStyle.Render(labelChatTitle) + "  " +
		generate.Render(labelModeAI) + " " + search.Render(labelModeSearch)}

	m.chatView.Width = l.transcript.w
	m.chatView.Height = l.transcript.h
	messages := d.session.Messages()
	m.chatView.SetContent(m.transcript(d, l.transcript.w))
	if len(messages) != d.seen || d.session.Pending() != d.seenPending {
		m.chatView.GotoBottom()
		d.seen = len(messages)
		d.seenPending = d.session.Pending()
	}
	lines = append(lines, fitLines(strings.Split(m.chatView.View(), "\n"), l.transcript.w, l.transcript.h)...)

	lines = append(lines, m.stagedLine(d, inner.w))
	if m.prompt != promptNone {
		m.promptInput.Width = inner.w - lipgloss.Width(m.promptInput.Prompt) - 1
		lines = append(lines, m.promptInput.View(), helperStyle.Render("Enter 确认 • Esc 取消"))
		return lines
	}
	m.composer.Width = inner.w - lipgloss.Width(m.composer.Prompt) - 1
	lines = append(lines, m.composer.View(), helperStyle.Render(composerHelp))
	return lines
}

func (m *model) stagedLine(d *desk, width int) string {
	if img := d.ctrl.Image(); img != nil {
		return splitRight(stagedStyle.Render("📎 "+img.Label()), buttonStyle.Render(labelRemove), width)
	}
	if d.ctrl.Selection().Staged() {
		return stagedStyle.Render("已选中：" + previewText(d.ctrl.Selection().Text(), width))
	}
	return ""
}

func (m *model) transcript(d *desk, width int) string {
	if width < 4 {
		width = 4
	}
	var cb contentBuilder
	for i, msg := range d.session.Messages() {
		if i > 0 {
			cb.WriteRune('\n')
		}
		label := userLabelStyle.Render("你")
		if msg.Role == chat.RoleAssistant {
			label = aiLabelStyle.Render("AI")
		}
		cb.WriteString(label + " " + helperStyle.Render(msg.At.Format("15:04")) + "\n")
		if msg.Image != nil {
			cb.WriteString(stagedStyle.Render("  📎 "+msg.Image.Label()) + "\n")
		}
		if msg.Err != "" {
			cb.WriteString(errorStyle.Render(indentMultiline(wrapText(msg.Err, width-2), "  ")) + "\n")
			continue
		}
		cb.WriteString(indentMultiline(wrapText(msg.Content, width-2), "  ") + "\n")
		if msg.Source != nil {
			cb.WriteString(sourceStyle.Render(fmt.Sprintf("  %s · P%d", msg.Source.Document, msg.Source.Page)) + "\n")
		}
	}
	if d.session.Pending() {
		cb.WriteString("\n" + m.spinner.View() + " " + helperStyle.Render("正在思考…"))
	}
	return strings.TrimRight(cb.String(), "\n")
}

func (m *model) previewLines(d *desk, l pageLayout) []string {
	if d.ctrl.Layout().RightCollapsed {
		return []string{buttonStyle.Render(labelExpandR)}
	}
	inner := l.preview.inner()
	viewer := d.ctrl.Viewer()
	doc := viewer.Document()
	if doc == nil {
		lines := []string{buttonStyle.Render(labelCollapseR) + " " + sectionHeaderStyle.Render("预览"), ""}
		for i := 0; i < l.surface.h/2-1; i++ {
			lines = append(lines, "")
		}
		hint := "请从左侧选择要预览的文档"
		pad := (inner.w - lipgloss.Width(hint)) / 2
		if pad < 0 {
			pad = 0
		}
		return append(lines, strings.Repeat(" ", pad)+helperStyle.Render(hint))
	}

	lines := []string{buttonStyle.Render(labelCollapseR) + " " + badgeStyle.Render(doc.Category) + " " + doc.Name}
	prev, next := buttonStyle, buttonStyle
	if viewer.Page() <= 1 {
		prev = disabledButtonStyle
	}
	if viewer.Page() >= viewer.TotalPages() {
		next = disabledButtonStyle
	}
	lines = append(lines, splitRight(
		helperStyle.Render(fmt.Sprintf("第 %d / %d 页", viewer.Page(), viewer.TotalPages())),
		prev.Render(labelNavPrev)+" "+next.Render(labelNavNext),
		inner.w,
	))

	page := d.pageLines(m.pageText, l.surface.w)
	d.clampLineCursor(len(page))
	d.ensureLineVisible(l.surface.h)
	start, end, highlighted := d.selectionRange()
	for i := d.pageOffset; i < len(page) && i < d.pageOffset+l.surface.h; i++ {
		line := fitLine(page[i], l.surface.w)
		switch {
		case highlighted && i >= start && i <= end:
			line = selectionLineStyle.Render(line)
		case m.focus == focusPreview && i == d.lineCursor:
			line = currentLineStyle.Render(line)
		}
		lines = append(lines, line)
	}
	for len(lines) < 2+l.surface.h {
		lines = append(lines, "")
	}

	if d.ctrl.Selection().Staged() {
		lines = append(lines, splitRight(
			stagedStyle.Render("已选中："+previewText(d.ctrl.Selection().Text(), inner.w)),
			buttonStyle.Render(labelRemove),
			inner.w,
		))
	} else {
		lines = append(lines, helperStyle.Render("v 高亮 • y 选中 • → 翻页"))
	}
	return lines
}

// filmstripView renders the strip: a rule, the page buttons and a hint.
func (m *model) filmstripView(d *desk, l pageLayout) string {
	rule := filmstripRuleStyle.Render(strings.Repeat("─", l.strip.w))
	var row strings.Builder
	x := l.strip.x
	for _, cell := range filmstripCells(d.ctrl.Thumbnails(), l.strip) {
		row.WriteString(strings.Repeat(" ", cell.area.x-x))
		style := thumbStyle
		if cell.current {
			style = currentThumbStyle
		}
		row.WriteString(style.Render(thumbLabel(cell.page)))
		x = cell.area.x + cell.area.w
	}
	hint := helperStyle.Render("点击页码跳转 • Esc 关闭")
	return strings.Join([]string{
		fitLine(rule, l.strip.w),
		fitLine(row.String(), l.strip.w),
		fitLine(hint, l.strip.w),
	}, "\n")
}

func (m *model) overviewView(l pageLayout) string {
	inner := l.body.inner()
	lines := []string{sectionHeaderStyle.Render("考试列表")}
	if len(m.config.Exams) == 0 {
		lines = append(lines, helperStyle.Render("暂无考试安排"))
		return renderPane(lines, l.body, true)
	}
	list := l.overviewList(len(m.config.Exams))
	for i, e := range m.config.Exams[:list.h] {
		marker := "  "
		if i == m.examIdx {
			marker = "▸ "
		}
		countdown := exam.CountdownTo(m.now, e.Date)
		style := countdownStyle
		if countdown.Past {
			style = pastStyle
		}
		lines = append(lines, fmt.Sprintf("%s%s  %s  %s", marker, e.Name,
			helperStyle.Render(e.Date.Format(exam.DateLayout)), style.Render(countdown.Text)))
	}
	lines = append(lines, "")
	lines = append(lines, m.examDetail(m.config.Exams[m.examIdx], inner.w)...)
	return renderPane(lines, l.body, true)
}

func (m *model) examDetail(e exam.Exam, width int) []string {
	lines := []string{sectionHeaderStyle.Render(e.Name), helperStyle.Render("资料状态")}
	for _, mat := range e.Materials {
		status := processingStyle.Render(mat.Status)
		if mat.Integrated() {
			status = integratedStyle.Render(mat.Status)
		}
		lines = append(lines, fmt.Sprintf("  %s %d 份  %s", mat.Type, mat.Count, status))
	}

	matched, total, percent := e.Coverage()
	lines = append(lines, "", helperStyle.Render(fmt.Sprintf("题库匹配 %d/%d (%d%%)", matched, total, percent)))
	barWidth := width - 4
	if barWidth > 40 {
		barWidth = 40
	}
	m.progress.Width = barWidth
	ratio := 0.0
	if total > 0 {
		ratio = float64(matched) / float64(total)
	}
	lines = append(lines, "  "+m.progress.ViewAs(ratio))
	for _, q := range e.QuestionBank {
		lines = append(lines, fmt.Sprintf("  %s %d/%d", q.Type, q.Matched, q.Count))
	}
	if len(e.KeyTopics) > 0 {
		lines = append(lines, "", "重点："+strings.Join(e.KeyTopics, " • "))
	}
	lines = append(lines, "", sectionHeaderStyle.Render("复习计划"))
	for _, step := range guide.ForExam(e, m.now) {
		lines = append(lines, "  "+buttonStyle.Render(step.Title))
		lines = append(lines, strings.Split(indentMultiline(wrapText(step.Description, width-4), "    "), "\n")...)
	}
	lines = append(lines, "", helperStyle.Render("Enter 打开文档阅读 • 1 返回学习助手"))
	return lines
}

func (m *model) helpBody(l pageLayout) string {
	body := lipgloss.JoinVertical(lipgloss.Left, m.keyLegendView(), m.helpView())
	return strings.Join(fitLines(strings.Split(body, "\n"), l.body.w, l.body.h), "\n")
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"Tab", "切换焦点"},
		{"↑/↓", "选择资料"},
		{"Enter", "打开/发送"},
		{"←/→", "翻页"},
		{"g", "跳转页码"},
		{"v/y", "高亮/选中"},
		{"x", "清除选中"},
		{"Ctrl+L/R", "折叠面板"},
		{"1/2", "切换标签"},
		{"u", "上传"},
		{"?", "帮助"},
		{"Ctrl+C", "退出"},
	}
	rows := []string{sectionHeaderStyle.Render("快捷键")}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := i + columns
		if end > len(hints) {
			end = len(hints)
		}
		var cells []string
		for _, hint := range hints[i:end] {
			key := keyStyle.Render(hint.Key)
			desc := keyDescStyle.Render(" " + hint.Description + "  ")
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func (m *model) helpView() string {
	lines := []string{
		sectionHeaderStyle.Render("使用说明"),
		helperStyle.Render("• 鼠标移到预览区或下一页按钮上会显示页面胶卷，移开 3 秒后自动隐藏。"),
		helperStyle.Render("• 点击胶卷中的页码直接跳转，点击胶卷以外的位置或按 Esc 关闭。"),
		helperStyle.Render("• 在预览区拖动或用 v / y 选中文字，提问时会一并发送。"),
		helperStyle.Render("• Ctrl+O 附加题目图片，Ctrl+T 在 AI生成 与 智能检索 之间切换。"),
	}
	return helpBoxStyle.Render(strings.Join(lines, "\n"))
}
