package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

func newTestConfig() Config {
	return Config{
		MaxRequests: 2,
		Interval:    10 * time.Second,
		Timeout:     50 * time.Millisecond, // 短超时方便测试半开转换
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}
}

// TestCircuitBreaker_ClosedState 测试关闭状态(正常通行)
func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb := New("test", newTestConfig())

	for i := 0; i < 10; i++ {
		if err := cb.Execute(func() error { return nil }); err != nil {
			t.Fatalf("期望成功,实际失败: %v", err)
		}
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态为CLOSED,实际%s", cb.State())
	}

	counts := cb.Counts()
	if counts.TotalSuccesses != 10 {
		t.Errorf("期望成功10次,实际%d次", counts.TotalSuccesses)
	}
}

// TestCircuitBreaker_TripsOnConsecutiveFailures 测试连续失败触发熔断
func TestCircuitBreaker_TripsOnConsecutiveFailures(t *testing.T) {
	cb := New("test", newTestConfig())

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("redis down") })
	}

	if cb.State() != StateOpen {
		t.Fatalf("期望状态为OPEN,实际%s", cb.State())
	}

	// 熔断期间快速失败,不调用实际函数
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})

	if !errors.Is(err, ErrOpenState) {
		t.Errorf("期望返回ErrOpenState,实际%v", err)
	}
	if called {
		t.Error("熔断打开时不应调用实际函数")
	}
}

// TestCircuitBreaker_SuccessResetsConsecutiveFailures 测试成功重置连续失败计数
func TestCircuitBreaker_SuccessResetsConsecutiveFailures(t *testing.T) {
	cb := New("test", newTestConfig())

	// 失败2次 + 成功1次,不应熔断
	_ = cb.Execute(func() error { return errors.New("fail") })
	_ = cb.Execute(func() error { return errors.New("fail") })
	_ = cb.Execute(func() error { return nil })
	_ = cb.Execute(func() error { return errors.New("fail") })
	_ = cb.Execute(func() error { return errors.New("fail") })

	if cb.State() != StateClosed {
		t.Errorf("连续失败未达阈值,期望CLOSED,实际%s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenRecovery 测试半开探测后恢复
func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := New("test", newTestConfig())

	// 触发熔断
	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}
	if cb.State() != StateOpen {
		t.Fatalf("期望OPEN,实际%s", cb.State())
	}

	// 等待超时,转为半开
	time.Sleep(60 * time.Millisecond)
	if cb.State() != StateHalfOpen {
		t.Fatalf("超时后期望HALF_OPEN,实际%s", cb.State())
	}

	// 探测成功,恢复关闭
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("半开状态应放行探测请求: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("探测成功后期望CLOSED,实际%s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenFailureReopens 测试半开探测失败重新熔断
func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := New("test", newTestConfig())

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}
	time.Sleep(60 * time.Millisecond)
	if cb.State() != StateHalfOpen {
		t.Fatalf("期望HALF_OPEN,实际%s", cb.State())
	}

	// 探测失败,立即回到打开状态
	_ = cb.Execute(func() error { return errors.New("still down") })
	if cb.State() != StateOpen {
		t.Errorf("探测失败后期望OPEN,实际%s", cb.State())
	}
}

// TestCircuitBreaker_HalfOpenLimitsProbes 测试半开状态限制探测数量
func TestCircuitBreaker_HalfOpenLimitsProbes(t *testing.T) {
	cb := New("test", newTestConfig())

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}
	time.Sleep(60 * time.Millisecond)

	// MaxRequests=2,慢探测占满名额后第3个请求被拒
	release := make(chan struct{})
	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			done <- cb.Execute(func() error {
				<-release
				return nil
			})
		}()
	}
	time.Sleep(20 * time.Millisecond) // 等两个探测进入执行

	err := cb.Execute(func() error { return nil })
	if !errors.Is(err, ErrOpenState) {
		t.Errorf("探测名额占满时期望ErrOpenState,实际%v", err)
	}

	close(release)
	<-done
	<-done
}

// TestCircuitBreaker_StateChangeCallback 测试状态变化回调
func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	cb := New("test", newTestConfig())

	var transitions []string
	cb.SetStateChangeCallback(func(name string, from, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errors.New("fail") })
	}

	if len(transitions) != 1 || transitions[0] != "CLOSED->OPEN" {
		t.Errorf("期望记录CLOSED->OPEN转换,实际%v", transitions)
	}
}
