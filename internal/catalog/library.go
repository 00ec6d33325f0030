package catalog

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// LibraryFile is the on-disk shape of a materials library:
//
//	[[category]]
//	name = "Courseware"
//	  [[category.document]]
//	  name = "Chapter 1.pdf"
//	  pages = 25
type LibraryFile struct {
	Categories []Category `toml:"category"`
}

// LoadTOML reads a library file into a Static catalog.
func LoadTOML(path string) (*Static, error) {
	var file LibraryFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	return NewStatic(file.Categories...)
}
