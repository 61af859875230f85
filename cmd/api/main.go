package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/library/docs" // swagger文档(swag init生成)
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
	"github.com/xiebiao/library/pkg/tracing"
)

// @title           图书馆借阅服务API
// @version         1.0
// @description     馆藏图书管理与借阅台账服务
// @BasePath        /
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化指标
	metrics.InitMetrics()

	// 3. 初始化追踪(可选)
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("初始化追踪失败: %v", err)
		}
		defer shutdown(context.Background())
	}

	// 4. 初始化存储
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 5. 初始化消息发布者(未启用时注入空实现)
	var publisher mq.EventPublisher = mq.NopPublisher{}
	if cfg.MQ.Enabled {
		p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			log.Fatalf("初始化消息发布者失败: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	// 6. 依赖注入(手动组装)
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	bookRepo := mysql.NewBookRepository(db)
	borrowRepo := mysql.NewBorrowRepository(db)
	txManager := mysql.NewTxManager(db)
	summaryCache := redis.NewSummaryCache(redisClient, cfg)
	cacheBreaker := newCacheBreaker()

	// 领域层
	bookService := book.NewService(bookRepo)

	// 应用层
	createBookUseCase := appbook.NewCreateBookUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService, summaryCache)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService, summaryCache)
	borrowBookUseCase := appborrow.NewBorrowBookUseCase(bookRepo, borrowRepo, txManager, summaryCache, publisher)
	summarizeBorrowsUseCase := appborrow.NewSummarizeBorrowsUseCase(borrowRepo, summaryCache, cacheBreaker)

	// 接口层
	bookHandler := handler.NewBookHandler(
		createBookUseCase,
		getBookUseCase,
		listBooksUseCase,
		updateBookUseCase,
		deleteBookUseCase,
	)
	borrowHandler := handler.NewBorrowHandler(borrowBookUseCase, summarizeBorrowsUseCase)

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	registerRoutes(r, bookHandler, borrowHandler)

	// 8. 启动服务(支持优雅停机)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("\n🚀 服务启动成功！\n")
		fmt.Printf("   访问地址: http://localhost%s\n", addr)
		fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
		fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", addr)
		fmt.Printf("   指标端点: http://localhost%s/metrics\n", addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println("\n收到停机信号,正在关闭服务...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("服务关闭异常: %v", err)
	}
}

// newCacheBreaker 创建保护Redis缓存路径的熔断器
// 连续3次失败熔断,15秒后放2个请求探测
func newCacheBreaker() *circuitbreaker.CircuitBreaker {
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

// registerRoutes 注册路由
func registerRoutes(r *gin.Engine, bookHandler *handler.BookHandler, borrowHandler *handler.BorrowHandler) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 图书模块
		books := v1.Group("/books")
		{
			books.POST("", bookHandler.CreateBook)
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
		}

		// 借阅模块
		borrows := v1.Group("/borrows")
		{
			borrows.POST("", borrowHandler.BorrowBook)
			borrows.GET("", borrowHandler.SummarizeBorrows)
		}
	}
}
