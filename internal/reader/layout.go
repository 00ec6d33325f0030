package reader

// Layout tracks which side panes are collapsed. The flags are independent and
// collapsing a pane never touches the state rendered inside it.
type Layout struct {
	LeftCollapsed  bool
	RightCollapsed bool
}

// ToggleLeft flips the catalog pane.
func (l *Layout) ToggleLeft() {
	l.LeftCollapsed = !l.LeftCollapsed
}

// ToggleRight flips the preview pane.
func (l *Layout) ToggleRight() {
	l.RightCollapsed = !l.RightCollapsed
}
