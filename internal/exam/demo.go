package exam

import (
	"time"

	"github.com/csheth/studydesk/internal/catalog"
)

func mustDocs(categories ...catalog.Category) *catalog.Static {
	s, err := catalog.NewStatic(categories...)
	if err != nil {
		panic(err)
	}
	return s
}

func docs(pairs ...any) []catalog.Document {
	out := make([]catalog.Document, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, catalog.Document{Name: pairs[i].(string), TotalPages: pairs[i+1].(int)})
	}
	return out
}

// Demo returns the exams shown when no library is configured.
func Demo() []Exam {
	return []Exam{
		{
			Key:  "data-structure",
			Name: "数据结构期末考试",
			Date: time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC),
			Materials: []Material{
				{Type: catalog.CategoryCourseware, Count: 8, Status: StatusIntegrated},
				{Type: catalog.CategoryTextbooks, Count: 12, Status: StatusIntegrated},
				{Type: catalog.CategoryHomework, Count: 45, Status: StatusIntegrated},
				{Type: catalog.CategoryPastExams, Count: 3, Status: StatusProcessing},
			},
			QuestionBank: []QuestionType{
				{Type: "选择题", Count: 120, Matched: 108},
				{Type: "简答题", Count: 45, Matched: 42},
				{Type: "编程题", Count: 30, Matched: 28},
			},
			KeyTopics: []string{"二叉树遍历", "图的最短路径", "排序算法", "动态规划", "哈希表"},
			Documents: mustDocs(
				catalog.Category{Name: catalog.CategoryCourseware, Documents: docs(
					"第1章-绪论.pptx", 25,
					"第2章-线性表.pptx", 42,
					"第3章-栈和队列.pptx", 38,
					"第4章-树和二叉树.pptx", 56,
				)},
				catalog.Category{Name: catalog.CategoryTextbooks, Documents: docs(
					"数据结构教材-第1-3章.pdf", 120,
					"数据结构教材-第4-6章.pdf", 145,
				)},
				catalog.Category{Name: catalog.CategoryHomework, Documents: docs(
					"作业1-线性表.pdf", 8,
					"作业2-栈和队列.pdf", 10,
					"作业3-树.pdf", 12,
				)},
				catalog.Category{Name: catalog.CategoryPastExams, Documents: docs(
					"2023年期末考试.pdf", 8,
					"2024年期末考试.pdf", 10,
				)},
			),
		},
		{
			Key:  "os",
			Name: "操作系统期末考试",
			Date: time.Date(2025, 11, 18, 0, 0, 0, 0, time.UTC),
			Materials: []Material{
				{Type: catalog.CategoryCourseware, Count: 10, Status: StatusIntegrated},
				{Type: catalog.CategoryTextbooks, Count: 15, Status: StatusIntegrated},
				{Type: catalog.CategoryHomework, Count: 38, Status: StatusIntegrated},
				{Type: catalog.CategoryPastExams, Count: 5, Status: StatusIntegrated},
			},
			QuestionBank: []QuestionType{
				{Type: "选择题", Count: 150, Matched: 150},
				{Type: "简答题", Count: 60, Matched: 55},
				{Type: "设计题", Count: 20, Matched: 18},
			},
			KeyTopics: []string{"进程调度", "内存管理", "文件系统", "死锁处理", "页面置换算法"},
			Documents: mustDocs(
				catalog.Category{Name: catalog.CategoryCourseware, Documents: docs(
					"第1章-操作系统概述.pptx", 30,
					"第2章-进程管理.pptx", 48,
					"第3章-内存管理.pptx", 52,
				)},
				catalog.Category{Name: catalog.CategoryTextbooks, Documents: docs(
					"操作系统教材-完整版.pdf", 380,
				)},
				catalog.Category{Name: catalog.CategoryHomework, Documents: docs(
					"作业1-进程.pdf", 6,
					"作业2-内存.pdf", 8,
				)},
				catalog.Category{Name: catalog.CategoryPastExams, Documents: docs(
					"2022年期末考试.pdf", 10,
					"2023年期末考试.pdf", 12,
					"2024年期末考试.pdf", 10,
				)},
			),
		},
	}
}
