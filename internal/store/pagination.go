package store

import "fmt"

const (
	DefaultLimit = 10
	MaxLimit     = 50

	// ChildPreviewLimit is how many replies are attached to each comment
	// when a listing asks for children.
	ChildPreviewLimit = 2
)

// SortBy selects the ordering column of a listing
type SortBy string

const (
	SortPoints SortBy = "points"
	SortRecent SortBy = "recent"
)

// Order is the sort direction
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// PageRequest describes an offset-paginated, sorted listing
type PageRequest struct {
	Page   int
	Limit  int
	SortBy SortBy
	Order  Order
}

// Page is one page of a listing
type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	Total      int64
}

func (p PageRequest) normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.SortBy != SortRecent {
		p.SortBy = SortPoints
	}
	if p.Order != OrderAsc {
		p.Order = OrderDesc
	}
	return p
}

func (p PageRequest) offset() int {
	return (p.Page - 1) * p.Limit
}

// orderClause sorts by the requested column, then by id in the same
// direction so equal keys keep a stable order between calls.
func (p PageRequest) orderClause(table string) string {
	column := "points"
	if p.SortBy == SortRecent {
		column = "created_at"
	}
	dir := "DESC"
	if p.Order == OrderAsc {
		dir = "ASC"
	}
	return fmt.Sprintf("%s.%s %s, %s.id %s", table, column, dir, table, dir)
}

func totalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
