package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStaticAssignsCategoriesAndKeepsOrder(t *testing.T) {
	t.Parallel()

	s, err := NewStatic(
		Category{Name: "Slides", Documents: []Document{{Name: "A.pdf", TotalPages: 3}}},
		Category{Name: "Books", Documents: []Document{{Name: "B.pdf", TotalPages: 10}}},
	)
	require.NoError(t, err)

	cats := Ordered(s)
	require.Len(t, cats, 2)
	assert.Equal(t, "Slides", cats[0].Name)
	assert.Equal(t, "Slides", cats[0].Documents[0].Category)
	assert.Equal(t, 2, s.Len())

	byCat := s.ListByCategory()
	byCat["Slides"][0].Name = "mutated"
	assert.Equal(t, "A.pdf", s.ListByCategory()["Slides"][0].Name, "listing must not leak internal state")
}

func TestNewStaticRejectsInvalidDocuments(t *testing.T) {
	t.Parallel()

	_, err := NewStatic(Category{Name: "Slides", Documents: []Document{{Name: "empty.pdf", TotalPages: 0}}})
	require.ErrorIs(t, err, ErrInvalidDocument)

	_, err = NewStatic(Category{Name: "Slides"}, Category{Name: "Slides"})
	require.Error(t, err)

	_, err = NewStatic(Category{Name: " "})
	require.Error(t, err)
}

type mapCatalog map[string][]Document

func (m mapCatalog) ListByCategory() map[string][]Document { return m }

func TestOrderedSortsUnorderedCatalogs(t *testing.T) {
	t.Parallel()

	cats := Ordered(mapCatalog{
		"b": {{Name: "x", TotalPages: 1}},
		"a": {{Name: "y", TotalPages: 1}},
	})
	require.Len(t, cats, 2)
	assert.Equal(t, "a", cats[0].Name)
	assert.Nil(t, Ordered(nil))
}

func TestLoadTOML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "library.toml")
	body := `
[[category]]
name = "课件"
  [[category.document]]
  name = "第1章-绪论.pptx"
  pages = 25

[[category]]
name = "往年题"
  [[category.document]]
  name = "2024年期末考试.pdf"
  pages = 10
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	s, err := LoadTOML(path)
	require.NoError(t, err)
	cats := s.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, Document{Category: "课件", Name: "第1章-绪论.pptx", TotalPages: 25}, cats[0].Documents[0])
}

func TestLoadTOMLReportsBadPages(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "library.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[category]]\nname = \"x\"\n[[category.document]]\nname = \"y\"\npages = -1\n"), 0o644))

	_, err := LoadTOML(path)
	require.ErrorIs(t, err, ErrInvalidDocument)
}

func TestScanDirWithoutPDFs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("not a pdf"), 0o644))

	_, err := ScanDir(dir)
	require.Error(t, err)
}

func TestPageTextWithoutPath(t *testing.T) {
	t.Parallel()

	text, err := PageText(Document{Name: "A.pdf", TotalPages: 3}, 2)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestDemoIsValid(t *testing.T) {
	t.Parallel()

	demo := Demo()
	assert.Equal(t, 6, demo.Len())
	for _, cat := range demo.Categories() {
		for _, doc := range cat.Documents {
			assert.NoError(t, doc.Validate())
		}
	}
}
