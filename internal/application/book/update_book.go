package book

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/book"
)

// UpdateBookUseCase 图书信息维护用例
type UpdateBookUseCase struct {
	bookService book.Service
	cache       SummaryInvalidator
}

// NewUpdateBookUseCase 创建维护用例
func NewUpdateBookUseCase(bookService book.Service, cache SummaryInvalidator) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// UpdateBookRequest 维护请求DTO
// 字段为空表示不修改;Copies用指针区分"不修改"和"改成0"
// ISBN是图书身份标识,入馆后不允许修改
type UpdateBookRequest struct {
	ID          uint
	Title       string
	Author      string
	Genre       string
	Description string
	Copies      *int
}

// Execute 执行维护用例
// 副本数修改会同步重算可借状态(copies=0时available变为false)
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.UpdateBook(
		ctx,
		req.ID,
		req.Title,
		req.Author,
		book.Genre(req.Genre),
		req.Description,
		req.Copies,
	)
	if err != nil {
		return nil, err
	}

	// 书名变化会反映在借阅汇总的投影里,主动失效缓存
	if err := uc.cache.InvalidateSummary(ctx); err != nil {
		log.Printf("失效借阅汇总缓存失败(TTL兜底): %v", err)
	}

	return toBookResponse(b), nil
}
