package shared

import "strings"

// Listing defaults applied by Filter.Normalize
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultOrderBy  = "created_at"
	DefaultOrderDir = "desc"
)

// Filter selects and orders a page of aggregates. Empty State and City
// match everything; Search is matched case-insensitively by the repository.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	State    string
	City     string
}

// Normalize returns f with defaults filled in, PageSize capped at
// MaxPageSize, and Search, State and City trimmed. State is upper-cased.
func (f Filter) Normalize() Filter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	if f.OrderBy == "" {
		f.OrderBy = DefaultOrderBy
	}
	if f.OrderDir == "" {
		f.OrderDir = DefaultOrderDir
	}
	f.Search = strings.TrimSpace(f.Search)
	f.State = strings.ToUpper(strings.TrimSpace(f.State))
	f.City = strings.TrimSpace(f.City)
	return f
}

// Offset returns the number of rows to skip for the current page
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// TotalPages returns how many pages of pageSize hold total rows
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
