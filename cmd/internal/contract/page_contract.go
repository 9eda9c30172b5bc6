package contract

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps the offset well inside int range.
	MaxPage = 1_000_000
)

// PageParams is a 1-based page request.
type PageParams struct {
	Page     int `json:"page" validate:"min=1,max=1000000"`
	PageSize int `json:"page_size" validate:"min=1,max=100"`
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type PageResponse[T any] struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Items    []T   `json:"items"`
}
