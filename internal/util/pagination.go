package util

import "strconv"

const (
	DefaultPageSize = 6
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*MaxPageSize well inside int range.
	MaxPage = 1_000_000
)

// ParseIntDefault returns def for an empty or non-numeric value.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func Calculate(page, size int) (offset int, limit int) {
	page, size = Normalize(page, size)
	return (page - 1) * size, size
}

// Normalize clamps page to [1, MaxPage] and size to [1, MaxPageSize].
func Normalize(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

func Meta(page, size int, total int64) PageMeta {
	page, size = Normalize(page, size)
	offset := (page - 1) * size
	return PageMeta{
		Page:       page,
		Size:       size,
		Total:      total,
		TotalPages: (total + int64(size) - 1) / int64(size),
		HasPrev:    page > 1,
		HasNext:    int64(offset+size) < total,
	}
}
