package pkg

// 统一分页策略：所有列表接口共用
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PageQuery struct {
	Page     int    `form:"page" json:"page"`
	PageSize int    `form:"page_size" json:"page_size"`
	Search   string `form:"search" json:"search"`
}

// Normalize 参数越界时回落到默认值
func (q *PageQuery) Normalize() {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.PageSize <= 0 || q.PageSize > MaxPageSize {
		q.PageSize = DefaultPageSize
	}
}

func (q *PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

type PageResult struct {
	Items           any   `json:"items"`
	TotalCount      int64 `json:"total_count"`
	Page            int   `json:"page"`
	PageSize        int   `json:"page_size"`
	TotalPages      int64 `json:"total_pages"`
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
}

// NewPageResult total_pages 向上取整
func NewPageResult(items any, total int64, q PageQuery) PageResult {
	totalPages := (total + int64(q.PageSize) - 1) / int64(q.PageSize)
	return PageResult{
		Items:           items,
		TotalCount:      total,
		Page:            q.Page,
		PageSize:        q.PageSize,
		TotalPages:      totalPages,
		HasNextPage:     int64(q.Page) < totalPages,
		HasPreviousPage: q.Page > 1,
	}
}
