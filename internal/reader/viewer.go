package reader

import "github.com/csheth/studydesk/internal/catalog"

// Viewer is either empty or viewing one page of one document.
// While viewing, 1 <= Page() <= TotalPages().
type Viewer struct {
	doc  *catalog.Document
	page int
}

// Select shows d from its first page.
func (v *Viewer) Select(d catalog.Document) {
	doc := d
	v.doc = &doc
	v.page = 1
}

// Reset returns the viewer to the empty state.
func (v *Viewer) Reset() {
	v.doc = nil
	v.page = 0
}

// Viewing reports whether a document is selected.
func (v *Viewer) Viewing() bool {
	return v.doc != nil
}

// Document returns a copy of the selected document, or nil.
func (v *Viewer) Document() *catalog.Document {
	if v.doc == nil {
		return nil
	}
	doc := *v.doc
	return &doc
}

// Page is the current page, 0 when empty.
func (v *Viewer) Page() int {
	return v.page
}

// TotalPages is the selected document's page count, 0 when empty.
func (v *Viewer) TotalPages() int {
	if v.doc == nil {
		return 0
	}
	return v.doc.TotalPages
}

// Next advances one page. It stops at the last page and reports whether the
// page changed.
func (v *Viewer) Next() bool {
	if v.doc == nil || v.page >= v.doc.TotalPages {
		return false
	}
	v.page++
	return true
}

// Prev goes back one page, stopping at page 1.
func (v *Viewer) Prev() bool {
	if v.doc == nil || v.page <= 1 {
		return false
	}
	v.page--
	return true
}

// JumpTo moves to page p. Pages outside the document are rejected with an
// *OutOfRangeError and leave the current page unchanged.
func (v *Viewer) JumpTo(p int) error {
	if v.doc == nil {
		return ErrNoDocument
	}
	if p < 1 || p > v.doc.TotalPages {
		return &OutOfRangeError{Page: p, Total: v.doc.TotalPages}
	}
	v.page = p
	return nil
}
