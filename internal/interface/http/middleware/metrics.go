package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/pkg/metrics"
)

// Metrics HTTP指标采集中间件
// 设计说明:
// 1. path标签用路由模板(c.FullPath)而非原始URL,
//    避免/api/v1/books/1、/api/v1/books/2撑爆标签基数
// 2. 未匹配任何路由的请求(404)统一记为unmatched
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPRequestsInProgress.Inc()

		c.Next()

		metrics.HTTPRequestsInProgress.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
		).Observe(time.Since(start).Seconds())
	}
}
