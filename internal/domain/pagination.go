package domain

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the offset of the current page (0-based).
// Formula: (Page - 1) * PageSize.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Bounds returns the [start, end) slice bounds of the current page within n items.
func (p PaginationParams) Bounds(n int) (start, end int) {
	start = min(p.Offset(), n)
	end = min(start+p.PageSize, n)
	return start, end
}
