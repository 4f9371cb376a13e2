package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Offset(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     int
	}{
		{"first page", 1, 20, 0},
		{"third page", 3, 10, 20},
		{"zero page treated as first", 0, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Filter{Page: tt.page, PageSize: tt.pageSize}
			assert.Equal(t, tt.want, f.Offset())
		})
	}
}

func TestFilter_Normalize(t *testing.T) {
	f := Filter{State: " mt ", Search: "  soja ", PageSize: 500}.Normalize()

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, MaxPageSize, f.PageSize)
	assert.Equal(t, DefaultOrderBy, f.OrderBy)
	assert.Equal(t, DefaultOrderDir, f.OrderDir)
	assert.Equal(t, "MT", f.State)
	assert.Equal(t, "soja", f.Search)

	kept := Filter{Page: 3, PageSize: 5, OrderBy: "name", OrderDir: "asc"}.Normalize()
	assert.Equal(t, Filter{Page: 3, PageSize: 5, OrderBy: "name", OrderDir: "asc"}, kept)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(45, 20))
	assert.Equal(t, 2, TotalPages(20, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 0, TotalPages(10, 0))
}
