package reader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/studydesk/internal/catalog"
)

func doc(name string, pages int) catalog.Document {
	return catalog.Document{Category: "课件", Name: name, TotalPages: pages}
}

func TestNextStopsAtLastPage(t *testing.T) {
	for n := 1; n <= 8; n++ {
		var v Viewer
		v.Select(doc("d.pdf", n))
		for i := 0; i < n-1; i++ {
			require.True(t, v.Next())
		}
		assert.Equal(t, n, v.Page())
		assert.False(t, v.Next())
		assert.Equal(t, n, v.Page())
	}
}

func TestPrevStopsAtFirstPage(t *testing.T) {
	for n := 1; n <= 5; n++ {
		var v Viewer
		v.Select(doc("d.pdf", n))
		assert.False(t, v.Prev())
		assert.Equal(t, 1, v.Page())
	}
}

func TestSelectResetsPage(t *testing.T) {
	var v Viewer
	v.Select(doc("a.pdf", 10))
	require.NoError(t, v.JumpTo(7))
	v.Select(doc("b.pdf", 10))
	assert.Equal(t, 1, v.Page())
	v.Select(doc("b.pdf", 10))
	assert.Equal(t, 1, v.Page())
}

func TestJumpToRejectsOutOfRange(t *testing.T) {
	var v Viewer
	assert.ErrorIs(t, v.JumpTo(1), ErrNoDocument)

	v.Select(doc("a.pdf", 4))
	require.NoError(t, v.JumpTo(3))

	for _, p := range []int{0, -1, 5} {
		err := v.JumpTo(p)
		var oor *OutOfRangeError
		require.True(t, errors.As(err, &oor), "page %d", p)
		assert.Equal(t, p, oor.Page)
		assert.Equal(t, 4, oor.Total)
		assert.Equal(t, 3, v.Page())
	}
}

func TestEmptyViewerNavigationIsNoop(t *testing.T) {
	var v Viewer
	assert.False(t, v.Next())
	assert.False(t, v.Prev())
	assert.False(t, v.Viewing())
	assert.Nil(t, v.Document())
	assert.Equal(t, 0, v.TotalPages())
}

func TestResetEmptiesViewer(t *testing.T) {
	var v Viewer
	v.Select(doc("a.pdf", 4))
	v.Reset()
	assert.False(t, v.Viewing())
	assert.Equal(t, 0, v.Page())
}

func TestDocumentReturnsCopy(t *testing.T) {
	var v Viewer
	v.Select(doc("a.pdf", 4))
	d := v.Document()
	d.TotalPages = 99
	assert.Equal(t, 4, v.TotalPages())
}

func TestLayoutTogglesIndependently(t *testing.T) {
	var l Layout
	l.ToggleLeft()
	assert.True(t, l.LeftCollapsed)
	assert.False(t, l.RightCollapsed)
	l.ToggleRight()
	l.ToggleLeft()
	assert.False(t, l.LeftCollapsed)
	assert.True(t, l.RightCollapsed)
}

func TestSelectionCapture(t *testing.T) {
	var s Selection
	assert.False(t, s.Capture("   \n\t"))
	assert.False(t, s.Staged())

	require.True(t, s.Capture("  二叉树 "))
	assert.Equal(t, "  二叉树 ", s.Text(), "stored as selected")
	assert.True(t, s.Staged())
	assert.False(t, s.Capture(" "))
	assert.Equal(t, "  二叉树 ", s.Text())

	s.Clear()
	assert.Equal(t, "", s.Text())
}

func TestSelectionPlaceholder(t *testing.T) {
	var s Selection
	assert.Equal(t, defaultPlaceholder, s.Placeholder())

	s.Capture("二叉树")
	assert.Equal(t, "关于\"二叉树...\"的问题", s.Placeholder())

	s.Capture("一二三四五六七八九十一二三四五六七八九十多余")
	assert.Equal(t, "关于\"一二三四五六七八九十一二三四五六七八九十...\"的问题", s.Placeholder())
}
