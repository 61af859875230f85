package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// CreateBookUseCase 图书入馆用例
// 设计说明:
// 1. 应用层负责用例编排,业务规则校验在领域服务
// 2. 输入输出使用DTO,与HTTP层解耦
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建入馆用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
	}
}

// CreateBookRequest 入馆请求DTO
type CreateBookRequest struct {
	Title       string // 书名
	Author      string // 作者
	Genre       string // 分类
	ISBN        string // ISBN号
	Description string // 简介
	Copies      int    // 馆藏副本数
}

// Execute 执行入馆用例
// 领域服务负责:ISBN格式校验、ISBN重复检查、分类校验、副本数校验
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.CreateBook(
		ctx,
		req.Title,
		req.Author,
		book.Genre(req.Genre),
		req.ISBN,
		req.Description,
		req.Copies,
	)
	if err != nil {
		return nil, err
	}

	return toBookResponse(b), nil
}
