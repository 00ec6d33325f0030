// Package catalog supplies the read-only course material lookup the reader
// browses: documents grouped by category.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidDocument marks a document that cannot be viewed.
var ErrInvalidDocument = errors.New("invalid document")

// Document is one viewable item. Path is set when the document is backed by
// a PDF on disk.
type Document struct {
	Category   string `toml:"-"`
	Name       string `toml:"name"`
	TotalPages int    `toml:"pages"`
	Path       string `toml:"path"`
}

// Validate enforces the invariants the viewer relies on.
func (d Document) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDocument)
	}
	if d.TotalPages < 1 {
		return fmt.Errorf("%w: %q has %d pages", ErrInvalidDocument, d.Name, d.TotalPages)
	}
	return nil
}

// Same reports whether two documents refer to the same catalog entry.
func (d Document) Same(other Document) bool {
	return d.Category == other.Category && d.Name == other.Name
}

// Category groups documents under a display label.
type Category struct {
	Name      string     `toml:"name"`
	Documents []Document `toml:"document"`
}

// Catalog is the lookup consumed by the reader.
type Catalog interface {
	ListByCategory() map[string][]Document
}

// Static is an in-memory Catalog that remembers category order.
type Static struct {
	order []string
	byCat map[string][]Document
}

// NewStatic validates the categories and returns a Catalog over them.
// Documents inherit the category name they are listed under.
func NewStatic(categories ...Category) (*Static, error) {
	s := &Static{byCat: map[string][]Document{}}
	for _, cat := range categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return nil, errors.New("catalog: category name is required")
		}
		if _, dup := s.byCat[name]; dup {
			return nil, fmt.Errorf("catalog: duplicate category %q", name)
		}
		docs := make([]Document, 0, len(cat.Documents))
		for _, doc := range cat.Documents {
			doc.Category = name
			if err := doc.Validate(); err != nil {
				return nil, fmt.Errorf("catalog: category %q: %w", name, err)
			}
			docs = append(docs, doc)
		}
		s.order = append(s.order, name)
		s.byCat[name] = docs
	}
	return s, nil
}

// ListByCategory returns a copy of the category mapping.
func (s *Static) ListByCategory() map[string][]Document {
	out := make(map[string][]Document, len(s.byCat))
	for name, docs := range s.byCat {
		out[name] = append([]Document(nil), docs...)
	}
	return out
}

// Categories returns the categories in declaration order.
func (s *Static) Categories() []Category {
	out := make([]Category, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, Category{Name: name, Documents: append([]Document(nil), s.byCat[name]...)})
	}
	return out
}

// Len counts all documents.
func (s *Static) Len() int {
	total := 0
	for _, docs := range s.byCat {
		total += len(docs)
	}
	return total
}

type orderedCatalog interface {
	Categories() []Category
}

// Ordered lists a catalog's categories, keeping the catalog's own order when
// it has one and sorting by name otherwise.
func Ordered(c Catalog) []Category {
	if c == nil {
		return nil
	}
	if oc, ok := c.(orderedCatalog); ok {
		return oc.Categories()
	}
	byCat := c.ListByCategory()
	names := make([]string, 0, len(byCat))
	for name := range byCat {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Category, 0, len(names))
	for _, name := range names {
		out = append(out, Category{Name: name, Documents: byCat[name]})
	}
	return out
}
