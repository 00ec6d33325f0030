package catalog

// Category labels used by the demo materials.
const (
	CategoryCourseware = "课件"
	CategoryTextbooks  = "课本"
	CategoryHomework   = "作业题"
	CategoryPastExams  = "往年题"
)

// Demo returns the course materials shown in the learning tab when no
// library is configured.
func Demo() *Static {
	s, err := NewStatic(
		Category{Name: CategoryCourseware, Documents: []Document{
			{Name: "数据结构与算法-第三章.pdf", TotalPages: 45},
			{Name: "操作系统原理-课件.pptx", TotalPages: 120},
		}},
		Category{Name: CategoryTextbooks, Documents: []Document{
			{Name: "计算机网络-教材.docx", TotalPages: 280},
		}},
		Category{Name: CategoryHomework, Documents: []Document{
			{Name: "第三章练习题.pdf", TotalPages: 15},
			{Name: "数据结构作业二.pdf", TotalPages: 20},
			{Name: "算法分析习题.pdf", TotalPages: 10},
		}},
	)
	if err != nil {
		panic(err)
	}
	return s
}
