package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	taglineStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#f4a261")).Italic(true)

	paneStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e"))
	focusedPaneStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#8ecae6"))

	statusBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(1, 2)
	helpBoxStyle       = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(1, 2)
	currentLineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6"))
	selectionLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#bde0fe"))

	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166"))
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	activeDocStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1d4ed8")).Background(lipgloss.Color("#dbeafe"))
	categoryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Bold(true)
	badgeStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#e5e7eb"))
	sourceStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa")).Italic(true)
	userLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1d4ed8"))
	aiLabelStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a3be8c"))
	stagedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#2563eb"))
	integratedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#22c55e"))
	processingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#e5e7eb"))
	countdownStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f97316")).Bold(true)
	pastStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Strikethrough(true)

	filmstripRuleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	thumbStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Background(lipgloss.Color("#f3f4f6"))
	currentThumbStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#3b82f6"))
	disabledButtonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	buttonStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0def4"))
)
