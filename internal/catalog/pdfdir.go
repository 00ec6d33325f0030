package catalog

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

var extraneousWhitespace = regexp.MustCompile(`[ \t]+`)

// ScanDir builds a catalog from a directory tree of PDFs. Each immediate
// subdirectory becomes a category; PDFs directly under dir are filed under
// the directory's own name. Unreadable PDFs are skipped.
func ScanDir(dir string) (*Static, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: scan %s: %w", dir, err)
	}
	var categories []Category
	if root := scanPDFs(dir, filepath.Base(dir)); len(root.Documents) > 0 {
		categories = append(categories, root)
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		cat := scanPDFs(filepath.Join(dir, entry.Name()), entry.Name())
		if len(cat.Documents) > 0 {
			categories = append(categories, cat)
		}
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("catalog: no readable PDFs under %s", dir)
	}
	return NewStatic(categories...)
}

func scanPDFs(dir, category string) Category {
	cat := Category{Name: category}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return cat
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(dir, name)
		pages, err := countPages(path)
		if err != nil {
			log.Printf("[catalog] skip %s: %v", path, err)
			continue
		}
		cat.Documents = append(cat.Documents, Document{Name: name, TotalPages: pages, Path: path})
	}
	return cat
}

func countPages(path string) (int, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	pages := reader.NumPage()
	if pages < 1 {
		return 0, errors.New("pdf has no pages")
	}
	return pages, nil
}

// PageText extracts the plain text of one page of a PDF-backed document.
// Documents without a Path return an empty string and no error.
func PageText(d Document, page int) (string, error) {
	if d.Path == "" {
		return "", nil
	}
	if page < 1 || page > d.TotalPages {
		return "", fmt.Errorf("catalog: page %d outside 1..%d", page, d.TotalPages)
	}
	file, reader, err := pdf.Open(d.Path)
	if err != nil {
		return "", fmt.Errorf("catalog: open %s: %w", d.Path, err)
	}
	defer file.Close()
	p := reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("catalog: extract page %d: %w", page, err)
	}
	lines := strings.Split(text, "\n")
	cleaned := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(extraneousWhitespace.ReplaceAllString(line, " "))
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n"), nil
}
