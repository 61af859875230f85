package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// ListBooksUseCase 图书列表用例
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表请求DTO
type ListBooksRequest struct {
	Page     int    // 页码,从1开始
	PageSize int    // 每页条数
	Keyword  string // 按书名/作者模糊搜索
	Genre    string // 按分类过滤
}

// normalize 规范化分页参数
// 页码非法回退到1,每页条数限制在1-100之间
func (r *ListBooksRequest) normalize() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = 10
	}
	if r.PageSize > 100 {
		r.PageSize = 100
	}
}

// ListBooksResponse 列表响应DTO
type ListBooksResponse struct {
	Items []*BookResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
}

// Execute 执行列表用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	req.normalize()

	books, total, err := uc.bookService.ListBooks(ctx, book.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		Genre:    book.Genre(req.Genre),
	})
	if err != nil {
		return nil, err
	}

	items := make([]*BookResponse, len(books))
	for i, b := range books {
		items[i] = toBookResponse(b)
	}

	return &ListBooksResponse{
		Items: items,
		Total: total,
		Page:  req.Page,
		Size:  req.PageSize,
	}, nil
}
