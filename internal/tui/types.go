package tui

import "time"

type tab int

const (
	tabLearning tab = iota
	tabExam
)

type focusArea int

const (
	focusCatalog focusArea = iota
	focusPreview
	focusComposer
)

type promptKind int

const (
	promptNone promptKind = iota
	promptJump
	promptAttach
)

const heroTagline = "课件 · 答疑 · 备考"

const (
	headerHeight       = 1
	footerHeight       = 2
	leftPaneWidth      = 30
	collapsedPaneWidth = 3
	minChatWidth       = 24
	minPreviewWidth    = 32
	filmstripHeight    = 3
	minScreenWidth     = 60
	minScreenHeight    = 16
)

const (
	clockInterval     = time.Minute
	defaultUploadTick = 200 * time.Millisecond
	uploadStep        = 10
)

const (
	labelLearningTab = "[1 学习助手]"
	labelExamTab     = "[2 备考]"
	labelBack        = "← 返回概览"
	labelChatTitle   = "AI 答疑"
	labelModeAI      = "[AI生成]"
	labelModeSearch  = "[智能检索]"
	labelCatalog     = "学习资料"
	labelNavPrev     = "[‹]"
	labelNavNext     = "[›]"
	labelRemove      = "[x]"
	labelCollapseL   = "«"
	labelExpandL     = "»"
	labelCollapseR   = "»"
	labelExpandR     = "«"
)

const (
	composerHelp     = "Enter 发送 • Ctrl+O 图片 • Ctrl+X 移除 • Ctrl+T 模式"
	jumpPlaceholder  = "跳转到页码…"
	attachPromptHint = "图片路径…"
)

type keyHint struct {
	Key         string
	Description string
}
