package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	cases := []struct {
		name     string
		in       PageQuery
		page     int
		pageSize int
	}{
		{"零值回落默认", PageQuery{}, 1, 20},
		{"负页码", PageQuery{Page: -3, PageSize: 10}, 1, 10},
		{"超过上限", PageQuery{Page: 2, PageSize: 500}, 2, 20},
		{"上限本身合法", PageQuery{Page: 1, PageSize: 100}, 1, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Normalize()
			assert.Equal(t, tc.page, tc.in.Page)
			assert.Equal(t, tc.pageSize, tc.in.PageSize)
		})
	}
}

func TestOffset(t *testing.T) {
	q := PageQuery{Page: 3, PageSize: 20}
	assert.Equal(t, 40, q.Offset())
}

func TestNewPageResult(t *testing.T) {
	q := PageQuery{Page: 2, PageSize: 10}

	res := NewPageResult([]int{1, 2, 3}, 25, q)
	assert.EqualValues(t, 25, res.TotalCount)
	assert.EqualValues(t, 3, res.TotalPages) // 向上取整
	assert.True(t, res.HasNextPage)
	assert.True(t, res.HasPreviousPage)

	last := NewPageResult([]int{}, 25, PageQuery{Page: 3, PageSize: 10})
	assert.False(t, last.HasNextPage)
	assert.True(t, last.HasPreviousPage)

	empty := NewPageResult([]int{}, 0, PageQuery{Page: 1, PageSize: 10})
	assert.EqualValues(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNextPage)
	assert.False(t, empty.HasPreviousPage)
}
