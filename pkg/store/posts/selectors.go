package posts

import "github.com/zfogg/blogfront/pkg/model"

// Offset is the listing offset of the first item on page.
func Offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

// ByID returns the listed post with id.
func ByID(s State, id int) (model.Post, bool) {
	if i := indexOf(s.Items, id); i >= 0 {
		return s.Items[i], true
	}
	return model.Post{}, false
}

// PageWindow returns up to width consecutive page numbers around the current
// page, clipped to the available pages.
func PageWindow(s State, width int) []int {
	if s.TotalPages < 1 || width < 1 {
		return []int{}
	}
	if width > s.TotalPages {
		width = s.TotalPages
	}

	start := s.CurrentPage - width/2
	if start < 1 {
		start = 1
	}
	if end := start + width - 1; end > s.TotalPages {
		start = s.TotalPages - width + 1
	}

	pages := make([]int, width)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
