//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// Wire是编译期依赖注入工具,与运行时反射注入不同,
// 它在编译期生成组装代码:零运行时开销、类型安全、可检测循环依赖。
//
// 工作流程:
// Step 1: 编写本文件,定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go
// Step 4: main.go改为调用InitializeApp()
//
// 当前main.go仍为手动组装,两边的依赖链保持一致。

package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/xiebiao/library/internal/application/book"
	appborrow "github.com/xiebiao/library/internal/application/borrow"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/circuitbreaker"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
	"github.com/xiebiao/library/pkg/response"
)

// infrastructureSet 基础设施层:配置、MySQL、Redis
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewBookRepository,
	mysql.NewBorrowRepository,
	mysql.NewTxManager,
	wire.Bind(new(appborrow.TxManager), new(*mysql.TxManager)),
	redis.NewSummaryCache,
	wire.Bind(new(appborrow.SummaryCache), new(*redis.SummaryCache)),
	wire.Bind(new(appbook.SummaryInvalidator), new(*redis.SummaryCache)),
)

// domainSet 领域层
var domainSet = wire.NewSet(
	book.NewService,
)

// applicationSet 应用层
var applicationSet = wire.NewSet(
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appborrow.NewBorrowBookUseCase,
	appborrow.NewSummarizeBorrowsUseCase,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewBorrowHandler,
)

// providePublisher 按配置选择真实发布者或空实现
func providePublisher(cfg *config.Config) (mq.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return mq.NopPublisher{}, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
}

// provideCacheBreaker 保护Redis缓存路径的熔断器
func provideCacheBreaker() *circuitbreaker.CircuitBreaker {
	cb := circuitbreaker.New("summary-cache", circuitbreaker.Config{
		MaxRequests: 2,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("熔断器[%s]状态变化: %s → %s", name, from, to)
		metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
	})
	return cb
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	borrowHandler *handler.BorrowHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		books := v1.Group("/books")
		{
			books.POST("", bookHandler.CreateBook)
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
		}

		borrows := v1.Group("/borrows")
		{
			borrows.POST("", borrowHandler.BorrowBook)
			borrows.GET("", borrowHandler.SummarizeBorrows)
		}
	}

	return r
}

// InitializeApp 初始化整个应用
// Wire会按依赖链自动排序所有Provider的调用顺序
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		providePublisher,
		provideCacheBreaker,
		provideGinEngine,
	)
	return nil, nil
}
