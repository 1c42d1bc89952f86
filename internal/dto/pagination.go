package dto

import "github.com/emilythestrangee/blog-platform/backend/internal/validation"

// PageQuery binds ?page=&page_size=. Missing values fall back to page 1 of 20.
type PageQuery struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}

func (q PageQuery) Validate() error {
	return validation.Pagination(q.Page, q.PageSize)
}

// Page is the envelope for every paginated listing.
type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPage[T any](data []T, q PageQuery, total int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if q.PageSize > 0 {
		totalPages = int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	}
	return Page[T]{
		Data:       data,
		Page:       q.Page,
		PageSize:   q.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// MapPage converts models into response items and wraps them in a Page.
func MapPage[M any, T any](items []M, q PageQuery, total int64, convert func(*M) T) Page[T] {
	data := make([]T, len(items))
	for i := range items {
		data[i] = convert(&items[i])
	}
	return NewPage(data, q, total)
}
