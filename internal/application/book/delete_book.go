package book

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/book"
)

// SummaryInvalidator 借阅汇总缓存失效接口
// 图书下架/改名会改变汇总结果,对应用例需要主动失效缓存
// (由redis.SummaryCache实现)
type SummaryInvalidator interface {
	InvalidateSummary(ctx context.Context) error
}

// DeleteBookUseCase 图书下架用例
type DeleteBookUseCase struct {
	bookService book.Service
	cache       SummaryInvalidator
}

// NewDeleteBookUseCase 创建下架用例
func NewDeleteBookUseCase(bookService book.Service, cache SummaryInvalidator) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// Execute 执行下架用例(软删除)
// 历史借阅记录保留,借阅汇总通过JOIN自动排除已下架图书;
// 汇总缓存主动失效,避免TTL窗口内还能看到已下架图书的条目
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.bookService.DeleteBook(ctx, id); err != nil {
		return err
	}

	if err := uc.cache.InvalidateSummary(ctx); err != nil {
		log.Printf("失效借阅汇总缓存失败(TTL兜底): %v", err)
	}
	return nil
}
