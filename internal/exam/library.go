package exam

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/csheth/studydesk/internal/catalog"
)

type examFile struct {
	Exams []examEntry `toml:"exam"`
}

type examEntry struct {
	Key          string             `toml:"key"`
	Name         string             `toml:"name"`
	Date         string             `toml:"date"`
	Topics       []string           `toml:"topics"`
	Materials    []Material         `toml:"material"`
	QuestionBank []QuestionType     `toml:"question"`
	Categories   []catalog.Category `toml:"category"`
}

// LoadTOML reads exams from a library file. Exams sit next to the materials
// library's categories:
//
//	[[exam]]
//	key = "os"
//	name = "操作系统期末考试"
//	date = "2025-11-18"
//	topics = ["进程调度"]
//	  [[exam.category]]
//	  name = "课件"
//	    [[exam.category.document]]
//	    name = "第1章.pptx"
//	    pages = 30
func LoadTOML(path string) ([]Exam, error) {
	var file examFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("exam: decode %s: %w", path, err)
	}
	exams := make([]Exam, 0, len(file.Exams))
	seen := map[string]bool{}
	for i, entry := range file.Exams {
		key := strings.TrimSpace(entry.Key)
		if key == "" {
			key = fmt.Sprintf("exam-%d", i+1)
		}
		if seen[key] {
			return nil, fmt.Errorf("exam: duplicate key %q", key)
		}
		seen[key] = true
		date, err := ParseDate(entry.Date)
		if err != nil {
			return nil, err
		}
		documents, err := catalog.NewStatic(entry.Categories...)
		if err != nil {
			return nil, fmt.Errorf("exam %s: %w", key, err)
		}
		exams = append(exams, Exam{
			Key:          key,
			Name:         entry.Name,
			Date:         date,
			Materials:    entry.Materials,
			QuestionBank: entry.QuestionBank,
			KeyTopics:    entry.Topics,
			Documents:    documents,
		})
	}
	return exams, nil
}
