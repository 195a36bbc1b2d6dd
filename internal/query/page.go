package query

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page is a normalized 1-indexed page window.
type Page struct {
	Page int
	Size int
}

// NormalizePage clamps raw page/size values into a valid window: page >= 1
// (default 1), 1 <= size <= MaxPageSize (default 20).
func NormalizePage(page, size int) Page {
	if page < 1 {
		page = 1
	}
	switch {
	case size < 1:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	return Page{Page: page, Size: size}
}

// Offset returns the row offset for the page window.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Size
}

// Pagination is the response-side pagination metadata.
type Pagination struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination computes total_pages = ceil(total/size); zero when there are
// no rows. A page beyond the last is valid and simply yields no data.
func NewPagination(p Page, total int64) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}
	return Pagination{Page: p.Page, Size: p.Size, Total: total, TotalPages: totalPages}
}
