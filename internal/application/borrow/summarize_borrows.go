package borrow

import (
	"context"
	"errors"
	"log"

	"github.com/xiebiao/library/internal/domain/borrow"
	"github.com/xiebiao/library/pkg/circuitbreaker"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/tracing"
)

// SummarizeBorrowsUseCase 借阅汇总用例
// 设计说明:
// 1. 汇总在MySQL用JOIN+GROUP BY一次算完,不在内存逐条聚合
// 2. cache-aside:先读Redis,未命中回源MySQL再回填
// 3. Redis路径套熔断器:Redis故障时快速回源,不等超时;
//    熔断打开期间相当于缓存全旁路,MySQL是最终兜底
type SummarizeBorrowsUseCase struct {
	borrowRepo borrow.Repository
	cache      SummaryCache
	breaker    *circuitbreaker.CircuitBreaker
}

// NewSummarizeBorrowsUseCase 创建汇总用例
func NewSummarizeBorrowsUseCase(
	borrowRepo borrow.Repository,
	cache SummaryCache,
	breaker *circuitbreaker.CircuitBreaker,
) *SummarizeBorrowsUseCase {
	return &SummarizeBorrowsUseCase{
		borrowRepo: borrowRepo,
		cache:      cache,
		breaker:    breaker,
	}
}

// SummaryItem 汇总响应条目
type SummaryItem struct {
	Book          SummaryBook `json:"book"`
	TotalQuantity int64       `json:"total_quantity"`
}

// SummaryBook 汇总条目中的图书信息
type SummaryBook struct {
	Title string `json:"title"`
	ISBN  string `json:"isbn"`
}

// Execute 执行汇总用例
//
// 结果语义:
// 1. 每本被借过的图书一个条目,total_quantity为所有借阅数量之和
// 2. 图书已下架的借阅记录不产生条目(JOIN天然排除)
// 3. 无借阅记录时返回空列表而非null
// 4. 条目顺序不保证,调用方按集合消费
func (uc *SummarizeBorrowsUseCase) Execute(ctx context.Context) ([]SummaryItem, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SummarizeBorrows")
	defer span.End()

	// 先走缓存(熔断器保护)
	var cached []borrow.BookSummary
	var hit bool
	err := uc.breaker.Execute(func() error {
		rows, ok, err := uc.cache.GetSummary(ctx)
		if err != nil {
			return err
		}
		cached, hit = rows, ok
		return nil
	})
	switch {
	case err == nil && hit:
		metrics.SummaryCacheRequests.WithLabelValues("hit").Inc()
		return toSummaryItems(cached), nil
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.SummaryCacheRequests.WithLabelValues("bypass").Inc()
	case err != nil:
		metrics.SummaryCacheRequests.WithLabelValues("bypass").Inc()
		log.Printf("读取借阅汇总缓存失败,回源数据库: %v", err)
	default:
		metrics.SummaryCacheRequests.WithLabelValues("miss").Inc()
	}

	// 回源MySQL
	rows, err := uc.borrowRepo.SummarizeByBook(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// 回填缓存,失败不影响本次结果
	if cacheErr := uc.breaker.Execute(func() error {
		return uc.cache.SetSummary(ctx, rows)
	}); cacheErr != nil && !errors.Is(cacheErr, circuitbreaker.ErrOpenState) {
		log.Printf("回填借阅汇总缓存失败: %v", cacheErr)
	}

	return toSummaryItems(rows), nil
}

// toSummaryItems 仓储行 → 响应DTO
func toSummaryItems(rows []borrow.BookSummary) []SummaryItem {
	items := make([]SummaryItem, len(rows))
	for i, row := range rows {
		items[i] = SummaryItem{
			Book: SummaryBook{
				Title: row.Title,
				ISBN:  row.ISBN,
			},
			TotalQuantity: row.TotalQuantity,
		}
	}
	return items
}
