package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/studydesk/internal/catalog"
	"github.com/csheth/studydesk/internal/chat"
	"github.com/csheth/studydesk/internal/exam"
	"github.com/csheth/studydesk/internal/reader"
	"github.com/csheth/studydesk/internal/timer"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Catalog     catalog.Catalog
	Exams       []exam.Exam
	Answerer    chat.Answerer
	HideDelay   time.Duration
	UploadTick  time.Duration
	UploadReset time.Duration
	// Scheduler drives every delayed message; nil means tea.Tick.
	Scheduler timer.Scheduler
	Now       func() time.Time
}

type clockTickMsg struct{}

type uploadTickMsg struct {
	gen int
}

type uploadResetMsg struct {
	gen int
}

type uploadState struct {
	gen     int
	percent int
	active  bool
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Scheduler == nil {
		config.Scheduler = timer.Real
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.Catalog == nil {
		config.Catalog = catalog.Demo()
	}
	if config.UploadTick <= 0 {
		config.UploadTick = defaultUploadTick
	}
	if config.UploadReset <= 0 {
		config.UploadReset = time.Second
	}

	composer := textinput.New()
	composer.Prompt = "› "
	composer.CharLimit = 500

	promptInput := textinput.New()
	promptInput.CharLimit = 256

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(40, 10)
	vp.MouseWheelEnabled = true

	m := &model{
		config:      config,
		jobs:        newJobBus(),
		width:       100,
		height:      30,
		composer:    composer,
		promptInput: promptInput,
		spinner:     spin,
		chatView:    vp,
		progress:    progress.New(progress.WithDefaultGradient()),
		pageText:    map[pageKey]pageTextEntry{},
		now:         config.Now(),
		infoMessage: "选择左侧资料开始学习，Tab 切换焦点，? 查看帮助。",
	}
	m.learning = newDesk("学习助手", config.Catalog, m.newSession(greeting(config.Now())...), m.readerOptions())
	m.composer.Placeholder = m.learning.ctrl.Placeholder()
	return m
}

type model struct {
	config Config
	jobs   *jobBus

	width  int
	height int

	tab      tab
	focus    focusArea
	learning *desk
	examDesk *desk
	examIdx  int

	composer    textinput.Model
	promptInput textinput.Model
	prompt      promptKind
	spinner     spinner.Model
	spinning    bool
	chatView    viewport.Model
	progress    progress.Model

	pageText map[pageKey]pageTextEntry
	upload   uploadState
	hover    bool
	now      time.Time

	helpVisible  bool
	infoMessage  string
	errorMessage string
}

func greeting(at time.Time) []chat.Message {
	return []chat.Message{
		{ID: "greeting-question", Role: chat.RoleUser, Content: "请解释什么是二叉搜索树？", At: at},
		{
			ID:   "greeting-answer",
			Role: chat.RoleAssistant,
			Content: "二叉搜索树（Binary Search Tree，BST）是一种特殊的二叉树数据结构，具有以下性质：\n\n" +
				"1. 左子树的所有节点值小于根节点值\n2. 右子树的所有节点值大于根节点值\n3. 左右子树也都是二叉搜索树\n\n" +
				"这种结构使得查找、插入和删除操作的平均时间复杂度为 O(log n)。",
			Source: &chat.Source{Document: "数据结构与算法-第三章.pdf", Page: 23},
			At:     at,
		},
	}
}

func (m *model) newSession(seed ...chat.Message) *chat.Session {
	opts := []chat.Option{chat.WithLauncher(m.answerLauncher()), chat.WithClock(m.config.Now)}
	if len(seed) > 0 {
		opts = append(opts, chat.WithMessages(seed...))
	}
	return chat.NewSession(m.config.Answerer, opts...)
}

func (m *model) readerOptions() reader.Options {
	return reader.Options{Scheduler: m.config.Scheduler, HideDelay: m.config.HideDelay}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.scheduleClock())
}

func (m *model) scheduleClock() tea.Cmd {
	return m.config.Scheduler.After(clockInterval, clockTickMsg{})
}

// activeDesk is the reader session on screen, or nil on the exam overview.
func (m *model) activeDesk() *desk {
	if m.tab == tabLearning {
		return m.learning
	}
	return m.examDesk
}

func (m *model) desks() []*desk {
	out := []*desk{m.learning}
	if m.examDesk != nil {
		out = append(out, m.examDesk)
	}
	return out
}

// deliver hands msg to whichever desk owns it.
func (m *model) deliver(msg tea.Msg) bool {
	for _, d := range m.desks() {
		if d.update(msg) {
			return true
		}
	}
	return false
}

func (m *model) anyPending() bool {
	for _, d := range m.desks() {
		if d.session.Pending() {
			return true
		}
	}
	return false
}

func (m *model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *model) geometry() pageLayout {
	panes := reader.Layout{}
	if d := m.activeDesk(); d != nil {
		panes = *d.ctrl.Layout()
	}
	return computeLayout(m.width, m.height, panes)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	m.syncComposer()
	return next, cmd
}

// syncComposer keeps the composer hint in step with the active desk's
// staged selection.
func (m *model) syncComposer() {
	if d := m.activeDesk(); d != nil {
		m.composer.Placeholder = d.ctrl.Placeholder()
	}
}

func (m *model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case jobSignalMsg:
		m.jobs.Track(msg.Snapshot)
		return m, nil
	case jobResultEnvelope:
		m.jobs.Track(msg.Snapshot)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case spinner.TickMsg:
		if m.anyPending() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		m.spinning = false
		return m, nil
	case clockTickMsg:
		m.now = m.config.Now()
		return m, m.scheduleClock()
	case uploadTickMsg:
		return m, m.advanceUpload(msg)
	case uploadResetMsg:
		if msg.gen == m.upload.gen && !m.upload.active {
			m.upload.percent = 0
		}
		return m, nil
	case pageTextMsg:
		m.pageText[msg.key] = pageTextEntry{text: msg.text, err: msg.err}
		return m, nil
	case chat.AnswerMsg:
		if m.deliver(msg) && msg.Err != nil {
			m.errorMessage = fmt.Sprintf("回答失败：%v", msg.Err)
		}
		return m, nil
	case reader.ImageMsg:
		if !m.deliver(msg) {
			return m, nil
		}
		if d := m.activeDesk(); d == nil || d.ctrl.ID() != msg.ControllerID || !d.ctrl.Alive() {
			return m, nil
		}
		if msg.Err != nil {
			m.errorMessage = fmt.Sprintf("图片读取失败：%v", msg.Err)
			return m, nil
		}
		m.errorMessage = ""
		m.infoMessage = "已附加图片 " + msg.Image.Label()
		return m, nil
	case timer.FiredMsg:
		m.deliver(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	var composerCmd, promptCmd tea.Cmd
	m.composer, composerCmd = m.composer.Update(msg)
	m.promptInput, promptCmd = m.promptInput.Update(msg)
	return m, tea.Batch(composerCmd, promptCmd)
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.prompt != promptNone {
		return m.handlePromptKey(key)
	}
	d := m.activeDesk()
	switch key.String() {
	case "ctrl+l":
		if d != nil {
			d.ctrl.ToggleLeft()
		}
		return m, nil
	case "ctrl+r":
		if d != nil {
			d.ctrl.ToggleRight()
		}
		return m, nil
	case "tab":
		if d != nil {
			m.cycleFocus()
		}
		return m, nil
	}
	if d != nil && m.focus == focusComposer {
		return m.handleComposerKey(d, key)
	}
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.helpVisible = !m.helpVisible
		return m, nil
	case "1":
		return m, m.switchTab(tabLearning)
	case "2":
		return m, m.switchTab(tabExam)
	}
	if m.helpVisible && key.Type == tea.KeyEsc {
		m.helpVisible = false
		return m, nil
	}
	if d == nil {
		return m.handleOverviewKey(key)
	}
	if m.focus == focusPreview {
		return m.handlePreviewKey(d, key)
	}
	return m.handleCatalogKey(d, key)
}

func (m *model) cycleFocus() {
	m.setFocus((m.focus + 1) % 3)
}

func (m *model) setFocus(f focusArea) {
	m.focus = f
	if f == focusComposer {
		m.composer.Focus()
		return
	}
	m.composer.Blur()
}

// switchTab changes tab. The desk being left loses hover and its filmstrip.
func (m *model) switchTab(t tab) tea.Cmd {
	if t == m.tab {
		return nil
	}
	var cmd tea.Cmd
	if d := m.activeDesk(); d != nil {
		if m.hover {
			cmd = d.ctrl.PointerLeave()
		}
		d.ctrl.DismissFilmstrip()
	}
	m.hover = false
	m.tab = t
	m.setFocus(focusCatalog)
	if d := m.activeDesk(); d != nil {
		d.seen = -1
	}
	if t == tabExam && m.examDesk == nil {
		m.infoMessage = "↑/↓ 选择考试，Enter 打开文档阅读。"
	} else {
		m.infoMessage = ""
	}
	return cmd
}

func (m *model) handleComposerKey(d *desk, key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		return m, m.submit(d)
	case "ctrl+o":
		m.openPrompt(promptAttach)
		return m, nil
	case "ctrl+x":
		if d.ctrl.Image() != nil {
			d.ctrl.DetachImage()
			m.infoMessage = "已移除图片。"
		}
		return m, nil
	case "ctrl+t":
		mode := d.session.ToggleMode()
		m.infoMessage = "回答模式：" + modeLabel(mode)
		return m, nil
	case "esc":
		if strings.TrimSpace(m.composer.Value()) != "" {
			m.composer.Reset()
			return m, nil
		}
		m.setFocus(focusPreview)
		return m, nil
	}
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(key)
	return m, cmd
}

func (m *model) submit(d *desk) tea.Cmd {
	cmd, ok := d.ctrl.Submit(m.composer.Value())
	if !ok {
		return nil
	}
	m.composer.Reset()
	m.errorMessage = ""
	m.infoMessage = "已发送，等待回答…"
	return tea.Batch(cmd, m.startSpinner())
}

func (m *model) openPrompt(kind promptKind) {
	m.prompt = kind
	m.promptInput.Reset()
	switch kind {
	case promptJump:
		m.promptInput.Placeholder = jumpPlaceholder
		m.promptInput.Prompt = "页码: "
	case promptAttach:
		m.promptInput.Placeholder = attachPromptHint
		m.promptInput.Prompt = "图片: "
	}
	m.composer.Blur()
	m.promptInput.Focus()
}

func (m *model) closePrompt() {
	m.prompt = promptNone
	m.promptInput.Blur()
	m.promptInput.Reset()
	if m.focus == focusComposer {
		m.composer.Focus()
	}
}

func (m *model) handlePromptKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.activeDesk()
	switch key.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.promptInput.Value())
		kind := m.prompt
		m.closePrompt()
		if d == nil || value == "" {
			return m, nil
		}
		if kind == promptJump {
			return m, m.jumpTo(d, value)
		}
		read := d.ctrl.AttachImage(value)
		if read == nil {
			return m, nil
		}
		m.infoMessage = "正在读取图片…"
		return m, m.jobs.Start(jobKindAttach, attachJob(read))
	}
	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(key)
	return m, cmd
}

func (m *model) jumpTo(d *desk, value string) tea.Cmd {
	page, err := strconv.Atoi(value)
	if err != nil {
		m.errorMessage = fmt.Sprintf("无效页码 %q", value)
		return nil
	}
	if err := d.ctrl.JumpToPage(page); err != nil {
		var outOfRange *reader.OutOfRangeError
		switch {
		case errors.As(err, &outOfRange):
			m.errorMessage = fmt.Sprintf("页码 %d 超出范围 1-%d", outOfRange.Page, outOfRange.Total)
		case errors.Is(err, reader.ErrNoDocument):
			m.errorMessage = "请先选择文档。"
		default:
			m.errorMessage = err.Error()
		}
		return nil
	}
	m.errorMessage = ""
	return m.afterNavigate(d)
}

// afterNavigate resets per-page view state and fetches page text when the
// document is backed by a PDF.
func (m *model) afterNavigate(d *desk) tea.Cmd {
	d.resetPreviewCursor()
	doc := d.ctrl.Viewer().Document()
	if doc == nil || doc.Path == "" {
		return nil
	}
	page := d.ctrl.Viewer().Page()
	key := pageKey{path: doc.Path, page: page}
	if _, ok := m.pageText[key]; ok {
		return nil
	}
	m.pageText[key] = pageTextEntry{loading: true}
	return m.jobs.Start(jobKindPage, pageTextJob(*doc, page))
}

func (m *model) handleCatalogKey(d *desk, key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		d.moveCursor(-1)
		d.ensureCursorVisible(m.geometry().catalogList.h)
	case "down", "j":
		d.moveCursor(1)
		d.ensureCursorVisible(m.geometry().catalogList.h)
	case "enter":
		return m, m.openDocument(d)
	case "u":
		if m.tab == tabLearning {
			return m, m.startUpload()
		}
	case "esc", "b":
		if m.tab == tabExam {
			m.closeExamReader()
		}
	}
	return m, nil
}

func (m *model) openDocument(d *desk) tea.Cmd {
	if err := d.selectCursor(); err != nil {
		m.errorMessage = err.Error()
		return nil
	}
	doc := d.ctrl.Viewer().Document()
	if doc == nil {
		return nil
	}
	m.errorMessage = ""
	m.infoMessage = fmt.Sprintf("已打开 %s（%d 页）", doc.Name, doc.TotalPages)
	return m.afterNavigate(d)
}

func (m *model) handlePreviewKey(d *desk, key tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := d.pageLines(m.pageText, m.geometry().surface.w)
	switch key.String() {
	case "left", "h", "pgup":
		if d.ctrl.PrevPage() {
			return m, m.afterNavigate(d)
		}
	case "right", "l", "pgdown":
		before := d.ctrl.Viewer().Page()
		cmd := d.ctrl.ForwardKey(m.hover)
		if d.ctrl.Viewer().Page() != before {
			return m, tea.Batch(cmd, m.afterNavigate(d))
		}
		return m, cmd
	case "g":
		if d.ctrl.Viewer().Viewing() {
			m.openPrompt(promptJump)
		}
	case "up", "k":
		d.lineCursor--
		d.clampLineCursor(len(lines))
	case "down", "j":
		d.lineCursor++
		d.clampLineCursor(len(lines))
	case "v":
		if d.highlighting {
			d.highlighting = false
		} else if len(lines) > 0 {
			d.highlighting = true
			d.anchor = d.lineCursor
		}
	case "y":
		text := d.selectedText(lines)
		if !d.highlighting && d.lineCursor < len(lines) {
			text = lines[d.lineCursor]
		}
		d.highlighting = false
		if d.ctrl.CaptureSelection(text) {
			m.infoMessage = "已选中内容，可直接提问。"
		}
	case "x":
		d.ctrl.ClearSelection()
	case "esc":
		switch {
		case d.highlighting:
			d.highlighting = false
		case d.ctrl.FilmstripShown():
			d.ctrl.DismissFilmstrip()
		case m.tab == tabExam:
			m.closeExamReader()
		}
	case "b":
		if m.tab == tabExam {
			m.closeExamReader()
		}
	}
	return m, nil
}

func (m *model) handleOverviewKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.examIdx > 0 {
			m.examIdx--
		}
	case "down", "j":
		if m.examIdx < len(m.config.Exams)-1 {
			m.examIdx++
		}
	case "enter":
		m.openExamReader()
	}
	return m, nil
}

func (m *model) openExamReader() {
	if m.examIdx < 0 || m.examIdx >= len(m.config.Exams) {
		return
	}
	e := m.config.Exams[m.examIdx]
	var docs catalog.Catalog = e.Documents
	if e.Documents == nil {
		empty, _ := catalog.NewStatic()
		docs = empty
	}
	m.examDesk = newDesk(e.Name+" - 文档阅读", docs, m.newSession(), m.readerOptions())
	m.hover = false
	m.setFocus(focusCatalog)
	m.infoMessage = fmt.Sprintf("%s：选择资料开始复习，Esc 返回概览。", e.Name)
}

func (m *model) closeExamReader() {
	if m.examDesk == nil {
		return
	}
	m.examDesk.close()
	m.examDesk = nil
	m.hover = false
	m.closePrompt()
	m.setFocus(focusCatalog)
	m.infoMessage = "已返回概览。"
}

func (m *model) startUpload() tea.Cmd {
	m.upload.gen++
	m.upload.percent = 0
	m.upload.active = true
	m.infoMessage = "正在上传…"
	return m.config.Scheduler.After(m.config.UploadTick, uploadTickMsg{gen: m.upload.gen})
}

func (m *model) advanceUpload(msg uploadTickMsg) tea.Cmd {
	if msg.gen != m.upload.gen || !m.upload.active {
		return nil
	}
	m.upload.percent += uploadStep
	if m.upload.percent < 100 {
		return m.config.Scheduler.After(m.config.UploadTick, uploadTickMsg{gen: msg.gen})
	}
	m.upload.percent = 100
	m.upload.active = false
	m.infoMessage = "上传完成。"
	return m.config.Scheduler.After(m.config.UploadReset, uploadResetMsg{gen: msg.gen})
}

func modeLabel(mode chat.Mode) string {
	if mode == chat.ModeSearch {
		return "智能检索"
	}
	return "AI生成"
}
