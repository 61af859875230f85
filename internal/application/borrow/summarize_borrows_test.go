package borrow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/borrow"
	"github.com/xiebiao/library/pkg/circuitbreaker"
)

// fakeSummaryRepo 只实现汇总查询的借阅仓储
type fakeSummaryRepo struct {
	fakeBorrowRepo
	rows  []borrow.BookSummary
	err   error
	calls int
}

func (r *fakeSummaryRepo) SummarizeByBook(ctx context.Context) ([]borrow.BookSummary, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.rows, nil
}

func newTestBreaker() *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New("test", circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
}

// TestSummarizeBorrows_GroupedResult 测试汇总结果语义
func TestSummarizeBorrows_GroupedResult(t *testing.T) {
	repo := &fakeSummaryRepo{
		rows: []borrow.BookSummary{
			{BookID: 1, Title: "Go语言实战", ISBN: "9787115428028", TotalQuantity: 7},
			{BookID: 2, Title: "史记", ISBN: "9787101003048", TotalQuantity: 3},
		},
	}
	uc := NewSummarizeBorrowsUseCase(repo, &fakeCache{}, newTestBreaker())

	items, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	// 顺序不保证,按集合断言
	byISBN := make(map[string]SummaryItem, len(items))
	for _, item := range items {
		byISBN[item.Book.ISBN] = item
	}

	assert.Equal(t, "Go语言实战", byISBN["9787115428028"].Book.Title)
	assert.Equal(t, int64(7), byISBN["9787115428028"].TotalQuantity)
	assert.Equal(t, int64(3), byISBN["9787101003048"].TotalQuantity)
}

// TestSummarizeBorrows_EmptyLedger 测试无借阅记录时返回空列表
func TestSummarizeBorrows_EmptyLedger(t *testing.T) {
	uc := NewSummarizeBorrowsUseCase(&fakeSummaryRepo{}, &fakeCache{}, newTestBreaker())

	items, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items, "应返回空列表而非nil")
	assert.Empty(t, items)
}

// TestSummarizeBorrows_Idempotent 测试重复查询结果一致(缓存命中)
func TestSummarizeBorrows_Idempotent(t *testing.T) {
	repo := &fakeSummaryRepo{
		rows: []borrow.BookSummary{
			{BookID: 1, Title: "Go语言实战", ISBN: "9787115428028", TotalQuantity: 7},
		},
	}
	cache := &fakeCache{}
	uc := NewSummarizeBorrowsUseCase(repo, cache, newTestBreaker())

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.calls, "首次查询回源数据库")

	second, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls, "第二次应该命中缓存,不再回源")
	assert.Equal(t, first, second)
}

// TestSummarizeBorrows_CacheFailureFallsBack 测试缓存故障时回源
func TestSummarizeBorrows_CacheFailureFallsBack(t *testing.T) {
	repo := &fakeSummaryRepo{
		rows: []borrow.BookSummary{
			{BookID: 1, Title: "Go语言实战", ISBN: "9787115428028", TotalQuantity: 7},
		},
	}
	cache := &fakeCache{getErr: errors.New("redis down")}
	uc := NewSummarizeBorrowsUseCase(repo, cache, newTestBreaker())

	items, err := uc.Execute(context.Background())
	require.NoError(t, err, "缓存故障不应影响汇总结果")
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].TotalQuantity)
}

// TestSummarizeBorrows_BreakerOpensAfterRepeatedCacheFailures 测试熔断后仍可回源
func TestSummarizeBorrows_BreakerOpensAfterRepeatedCacheFailures(t *testing.T) {
	repo := &fakeSummaryRepo{
		rows: []borrow.BookSummary{
			{BookID: 1, Title: "Go语言实战", ISBN: "9787115428028", TotalQuantity: 7},
		},
	}
	cache := &fakeCache{getErr: errors.New("redis down")}
	breaker := newTestBreaker()
	uc := NewSummarizeBorrowsUseCase(repo, cache, breaker)

	// 连续失败触发熔断(Get和Set各记一次失败)
	for i := 0; i < 5; i++ {
		items, err := uc.Execute(context.Background())
		require.NoError(t, err)
		require.Len(t, items, 1)
	}

	assert.Equal(t, circuitbreaker.StateOpen, breaker.State(), "连续缓存故障应触发熔断")

	// 熔断打开期间直接旁路缓存,结果仍然正确
	items, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

// TestSummarizeBorrows_RepoError 测试数据库故障时返回错误
func TestSummarizeBorrows_RepoError(t *testing.T) {
	repo := &fakeSummaryRepo{err: errors.New("db down")}
	uc := NewSummarizeBorrowsUseCase(repo, &fakeCache{}, newTestBreaker())

	_, err := uc.Execute(context.Background())
	assert.Error(t, err)
}
