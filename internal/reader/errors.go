package reader

import (
	"errors"
	"fmt"
)

// ErrNoDocument is returned by navigation that needs a selected document.
var ErrNoDocument = errors.New("reader: no document selected")

// OutOfRangeError reports a jump to a page the document does not have.
type OutOfRangeError struct {
	Page  int
	Total int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("reader: page %d out of range [1, %d]", e.Page, e.Total)
}
