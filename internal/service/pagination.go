package service

import "gorm.io/gorm"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListOptions selects one page of a list. A zero Page means the whole list.
type ListOptions struct {
	Page     int
	PageSize int
}

// Paginated reports whether a window was requested.
func (o ListOptions) Paginated() bool {
	return o.Page > 0
}

func (o ListOptions) normalized() ListOptions {
	if !o.Paginated() {
		return o
	}
	return ListOptions{
		Page:     normalizePage(o.Page),
		PageSize: normalizePerPage(o.PageSize, defaultPageSize),
	}
}

func (o ListOptions) apply(query *gorm.DB) *gorm.DB {
	if !o.Paginated() {
		return query
	}
	opts := o.normalized()
	return query.Limit(opts.PageSize).Offset((opts.Page - 1) * opts.PageSize)
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePerPage(perPage, fallback int) int {
	if perPage <= 0 {
		return fallback
	}
	if perPage > maxPageSize {
		return maxPageSize
	}
	return perPage
}

func calculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
