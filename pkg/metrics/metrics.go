// Package metrics 提供基于Prometheus的指标收集
//
// 指标类型速查：
//   - Counter（计数器）：只增不减，如请求总数、借阅总数
//   - Gauge（仪表盘）：可增可减的瞬时值，如进行中的请求数
//   - Histogram（直方图）：观测值分布，自动计算P50/P90/P99，如请求耗时
//
// 命名规范：
//   - Counter以_total结尾（http_requests_total）
//   - 耗时以_seconds结尾（borrow_duration_seconds）
//   - 标签只用低基数维度（method/path/status/reason），
//     禁止用book_id等无界值做标签
//
// 使用方式：
//
//	metrics.InitMetrics()
//	http.Handle("/metrics", promhttp.Handler())
//	...
//	metrics.BorrowsCreatedTotal.Inc()
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册panic）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path、status（200/400/404/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 借阅业务指标

	// BorrowsCreatedTotal 借阅成功总数（Counter）
	BorrowsCreatedTotal prometheus.Counter

	// BorrowsRejectedTotal 借阅被拒绝总数（Counter）
	// 标签：reason（not_found/insufficient_copies/invalid_input/persistence）
	BorrowsRejectedTotal *prometheus.CounterVec

	// BorrowDuration 借阅事务耗时（Histogram）
	BorrowDuration prometheus.Histogram

	// SummaryCacheRequests 汇总缓存访问总数（Counter）
	// 标签：result（hit/miss/bypass）
	SummaryCacheRequests *prometheus.CounterVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange、routing_key
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有Prometheus指标
// 必须在程序启动时调用一次，将所有指标注册到默认Registry
func InitMetrics() {
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 借阅业务指标
	BorrowsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "borrows_created_total",
			Help: "借阅成功总数",
		},
	)

	BorrowsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "borrows_rejected_total",
			Help: "借阅被拒绝总数",
		},
		[]string{"reason"},
	)

	BorrowDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "borrow_duration_seconds",
			Help: "借阅事务耗时（秒）",
			// 借阅涉及行锁+两次写入,耗时上限受锁竞争影响
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	SummaryCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_cache_requests_total",
			Help: "借阅汇总缓存访问总数",
		},
		[]string{"result"},
	)

	// 熔断器指标
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"},
	)
}
