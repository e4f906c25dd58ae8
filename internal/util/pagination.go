package util

import "strconv"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// ClampSize bounds a requested page size to [1, MaxPageSize].
func ClampSize(size int) int {
	if size < 1 {
		return 1
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// ClampPage bounds a page number to [1, totalPages]. A total of zero items
// still yields page 1 of 1 empty page.
func ClampPage(page int, totalPages int64) int {
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && int64(page) > totalPages {
		page = int(totalPages)
	}
	return page
}

func CountPages(total int64, size int) int64 {
	if size < 1 {
		size = 1
	}
	pages := (total + int64(size) - 1) / int64(size)
	if pages < 1 {
		pages = 1
	}
	return pages
}
