// Package tracing 提供基于OpenTelemetry的分布式追踪
//
// 核心概念：
//   - Trace：一次完整请求链路（如一次借书请求）
//   - Span：链路中的一个操作单元（如锁行、写台账、失效缓存）
//   - SpanContext：跨进程传递的TraceID/SpanID
//
// 借阅服务的典型链路：
//
//	POST /api/v1/borrows（TraceID=abc123）
//	├─ BorrowBook 事务（锁行+扣减+写台账）
//	├─ InvalidateSummary（Redis失效）
//	└─ Publish borrow.created（RabbitMQ）
//
// 使用方式：
//
//	shutdown, err := tracing.InitTracer("library-api", "localhost:4317")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.StartSpan(ctx, "library-api", "BorrowBook")
//	defer span.End()
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局Tracer Provider
//
// 参数：
//   - serviceName: 服务名称（在Jaeger UI中分组显示）
//   - endpoint: OTLP gRPC端点（如 localhost:4317）
//
// 返回shutdown函数，程序退出前必须调用，确保最后一批Span被刷出
//
// 设计说明：
// 1. 使用OTLP协议而非Jaeger原生协议，后端可换Zipkin/Tempo/Datadog
// 2. 采样策略用AlwaysSample（100%），生产环境应换成
//    sdktrace.TraceIDRatioBased按比例采样
// 3. BatchSpanProcessor批量上报，性能优于逐条发送
func InitTracer(serviceName, endpoint string) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(), // 本地环境禁用TLS
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// Resource描述产生遥测数据的实体,属性附加到所有Span上
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	// 全局Provider:业务代码直接用otel.Tracer()获取,
	// gin/gorm等集成库也走全局Provider
	otel.SetTracerProvider(tp)

	// W3C Trace Context + Baggage,跨服务透传TraceID
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 创建一个新的Span
// ctx包含父Span时自动成为子Span,否则成为根Span
// Span命名用操作名(BorrowBook),动态值放属性,不拼进名称
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	return tracer.Start(ctx, spanName)
}

// ExtractTraceID 从Context提取TraceID（用于日志关联）
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}
