// Package pagination turns page/page_size/sort query parameters into GORM
// scopes and wraps list results in a page envelope.
package pagination

import (
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is bound from the query string of list endpoints. Sort names a
// whitelisted column key, with a leading "-" for descending order.
type PageRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Sort     string `form:"sort"`
}

// Defaults clamps the request to page >= 1 and 1..MaxPageSize items.
func (p *PageRequest) Defaults() {
	p.Page = max(p.Page, 1)
	switch {
	case p.PageSize < 1:
		p.PageSize = DefaultPageSize
	case p.PageSize > MaxPageSize:
		p.PageSize = MaxPageSize
	}
}

func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// OrderClause resolves Sort against columns. Keys missing from columns
// select fallback, so raw input never reaches the ORDER BY.
func (p *PageRequest) OrderClause(columns map[string]string, fallback string) string {
	key, desc := strings.CutPrefix(strings.TrimSpace(p.Sort), "-")
	column, ok := columns[key]
	if !ok {
		return fallback
	}
	if desc {
		return column + " DESC"
	}
	return column + " ASC"
}

// PageResponse is the list envelope returned by paginated endpoints.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResponse builds the envelope. A nil data slice is rendered as [].
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	resp := PageResponse[T]{Data: data, Page: page, PageSize: pageSize, TotalItems: totalItems}
	if pageSize > 0 {
		resp.TotalPages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	}
	return resp
}

// Paginate is a GORM scope limiting a query to req's page.
func Paginate(req PageRequest) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}
