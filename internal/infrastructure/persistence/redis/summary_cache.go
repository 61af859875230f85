package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/internal/domain/borrow"
	"github.com/xiebiao/library/internal/infrastructure/config"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// summaryKey 借阅汇总缓存键
// Key设计:模块名:视图名,便于按前缀监控和清理
const summaryKey = "borrow:summary"

// SummaryCache 借阅汇总缓存(cache-aside)
// 设计说明:
// 1. 汇总查询是JOIN+GROUP BY的全表聚合,读多写少,适合短TTL缓存
// 2. 借阅成功后主动失效,保证下一次读取拿到新数据
// 3. 缓存只是加速:汇总读允许轻微滞后(TTL窗口内),不要求强一致
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache 创建借阅汇总缓存
func NewSummaryCache(client *redis.Client, cfg *config.Config) *SummaryCache {
	return &SummaryCache{
		client: client,
		ttl:    cfg.Redis.SummaryTTL,
	}
}

// GetSummary 读取缓存的汇总结果
// 返回(nil, false, nil)表示缓存未命中
func (c *SummaryCache) GetSummary(ctx context.Context) ([]borrow.BookSummary, bool, error) {
	data, err := c.client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, apperrors.Wrap(err, "读取汇总缓存失败")
	}

	var rows []borrow.BookSummary
	if err := json.Unmarshal(data, &rows); err != nil {
		// 缓存内容损坏按未命中处理,下一次Set会覆盖
		return nil, false, nil
	}

	return rows, true, nil
}

// SetSummary 写入汇总结果(带TTL)
func (c *SummaryCache) SetSummary(ctx context.Context, rows []borrow.BookSummary) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return apperrors.Wrap(err, "序列化汇总结果失败")
	}

	if err := c.client.Set(ctx, summaryKey, data, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入汇总缓存失败")
	}

	return nil
}

// InvalidateSummary 失效汇总缓存(借阅成功后调用)
func (c *SummaryCache) InvalidateSummary(ctx context.Context) error {
	if err := c.client.Del(ctx, summaryKey).Err(); err != nil {
		return apperrors.Wrap(err, "失效汇总缓存失败")
	}
	return nil
}
