// Package pagination provides page-number based pagination primitives for
// list endpoints.
package pagination

// Request carries the pagination parameters of a list query.
type Request struct {
	Page     int `query:"page"     json:"page"`
	PageSize int `query:"pageSize" json:"pageSize"`
}

// Normalize applies defaults and caps to the raw request values.
// Non-positive values fall back to the defaults.
func (r *Request) Normalize(opts ...Option) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = o.defaultPageSize
	}
	if r.PageSize > o.maxPageSize {
		r.PageSize = o.maxPageSize
	}
}

// Offset returns the row offset for the current page.
func (r Request) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Limit returns the row limit for the current page.
func (r Request) Limit() int {
	return r.PageSize
}

// Response is a paginated result set.
type Response[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewResponse assembles a Response from a page of items and the total count.
func NewResponse[T any](items []T, total int64, req Request) Response[T] {
	totalPages := 0
	if req.PageSize > 0 {
		totalPages = int((total + int64(req.PageSize) - 1) / int64(req.PageSize))
	}

	if items == nil {
		items = make([]T, 0)
	}

	return Response[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}
}
