package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
)

// TestInitTracer 测试Tracer初始化
// OTLP gRPC连接是懒建立的,没有collector也能完成初始化
func TestInitTracer(t *testing.T) {
	shutdown, err := InitTracer("library-test", "localhost:4317")
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer func() {
		// 本地没有collector时刷Span可能失败,不作为断言
		if err := shutdown(context.Background()); err != nil {
			t.Logf("关闭Tracer: %v", err)
		}
	}()

	if otel.Tracer("test") == nil {
		t.Error("全局TracerProvider未设置")
	}
}

// TestStartSpan 测试Span创建与父子关系
func TestStartSpan(t *testing.T) {
	shutdown, err := InitTracer("library-test", "localhost:4317")
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer shutdown(context.Background())

	t.Run("创建根Span", func(t *testing.T) {
		ctx, span := StartSpan(context.Background(), "library-test", "BorrowBook")
		defer span.End()

		if !span.SpanContext().IsValid() {
			t.Fatal("Span无效")
		}
		if got := ExtractTraceID(ctx); got != span.SpanContext().TraceID().String() {
			t.Errorf("ExtractTraceID = %q, 期望 %q", got, span.SpanContext().TraceID().String())
		}
	})

	t.Run("子Span继承TraceID", func(t *testing.T) {
		ctx, parent := StartSpan(context.Background(), "library-test", "BorrowBook")
		defer parent.End()

		_, child := StartSpan(ctx, "library-test", "InvalidateSummary")
		defer child.End()

		if parent.SpanContext().TraceID() != child.SpanContext().TraceID() {
			t.Error("子Span应与父Span共享TraceID")
		}
		if parent.SpanContext().SpanID() == child.SpanContext().SpanID() {
			t.Error("子Span应有独立的SpanID")
		}
	})
}

// TestExtractTraceID 无Span的Context应返回空串
func TestExtractTraceID(t *testing.T) {
	if got := ExtractTraceID(context.Background()); got != "" {
		t.Errorf("无Span时ExtractTraceID = %q, 期望空串", got)
	}
}
