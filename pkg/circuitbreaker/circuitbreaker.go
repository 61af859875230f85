// Package circuitbreaker 实现熔断器模式
//
// 本项目用它保护Redis缓存路径：Redis故障时汇总查询直接回源MySQL，
// 不让每个请求都等待Redis超时。
//
// 三种状态：
//   - CLOSED（关闭）：请求正常通过，统计失败
//   - OPEN（打开）：快速失败，给下游恢复时间
//   - HALF_OPEN（半开）：放少量请求探测，成功则关闭，失败则重新打开
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	// StateClosed 关闭状态,请求正常通过并统计结果
	StateClosed State = iota

	// StateOpen 打开状态,请求快速失败,Timeout后转半开
	StateOpen

	// StateHalfOpen 半开状态,最多放MaxRequests个请求探测下游
	StateHalfOpen
)

// String 状态转字符串（便于日志和指标）
func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrOpenState 熔断器打开时返回的错误
var ErrOpenState = errors.New("circuit breaker is open")

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态下允许通过的最大请求数（建议1-5）
	MaxRequests uint32

	// Interval CLOSED状态的统计窗口,窗口过期后计数清零
	Interval time.Duration

	// Timeout OPEN状态持续时间,到期后转HALF_OPEN
	Timeout time.Duration

	// ReadyToTrip 根据统计数据判断是否熔断
	// 常见写法:counts.ConsecutiveFailures >= 5
	ReadyToTrip func(counts Counts) bool
}

// Counts 统计数据
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// FailureRate 失败率
func (c *Counts) FailureRate() float64 {
	if c.Requests == 0 {
		return 0
	}
	return float64(c.TotalFailures) / float64(c.Requests)
}

func (c *Counts) reset() {
	*c = Counts{}
}

func (c *Counts) onSuccess() {
	// Requests在beforeRequest已递增
	c.TotalSuccesses++
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

func (c *Counts) onFailure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// CircuitBreaker 熔断器
type CircuitBreaker struct {
	name        string
	maxRequests uint32
	interval    time.Duration
	timeout     time.Duration
	readyToTrip func(counts Counts) bool

	mu         sync.Mutex
	state      State
	generation uint64 // 每次状态切换递增,丢弃跨代的请求结果
	counts     Counts
	expiry     time.Time

	onStateChange func(name string, from, to State)
}

// New 创建熔断器
//
// 示例：
//
//	cb := circuitbreaker.New("summary-cache", circuitbreaker.Config{
//	    MaxRequests: 2,
//	    Interval:    30 * time.Second,
//	    Timeout:     15 * time.Second,
//	    ReadyToTrip: func(counts circuitbreaker.Counts) bool {
//	        return counts.ConsecutiveFailures >= 3
//	    },
//	})
func New(name string, config Config) *CircuitBreaker {
	return &CircuitBreaker{
		name:          name,
		maxRequests:   config.MaxRequests,
		interval:      config.Interval,
		timeout:       config.Timeout,
		readyToTrip:   config.ReadyToTrip,
		state:         StateClosed,
		expiry:        time.Now().Add(config.Interval),
		onStateChange: func(name string, from, to State) {},
	}
}

// SetStateChangeCallback 设置状态变化回调（记日志、更新指标）
func (cb *CircuitBreaker) SetStateChangeCallback(fn func(name string, from, to State)) {
	cb.onStateChange = fn
}

// Execute 执行请求
// 熔断器打开时不调用req,直接返回ErrOpenState
func (cb *CircuitBreaker) Execute(req func() error) error {
	generation, err := cb.beforeRequest()
	if err != nil {
		return err
	}

	err = req()
	cb.afterRequest(generation, err == nil)
	return err
}

func (cb *CircuitBreaker) beforeRequest() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	state, generation := cb.currentState(now)

	if state == StateOpen {
		return generation, ErrOpenState
	}
	if state == StateHalfOpen && cb.counts.Requests >= cb.maxRequests {
		// 探测名额已满
		return generation, ErrOpenState
	}

	cb.counts.Requests++
	return generation, nil
}

func (cb *CircuitBreaker) afterRequest(before uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := time.Now()
	state, generation := cb.currentState(now)

	// 请求执行期间状态已切换,结果作废
	if generation != before {
		return
	}

	if success {
		cb.counts.onSuccess()
		if state == StateHalfOpen {
			cb.setState(StateClosed, now)
		}
		return
	}

	cb.counts.onFailure()
	switch state {
	case StateClosed:
		if cb.readyToTrip(cb.counts) {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		// 探测失败,立即回到打开状态
		cb.setState(StateOpen, now)
	}
}

// currentState 处理状态过期：
// CLOSED统计窗口过期时清零计数,OPEN超时后转HALF_OPEN
func (cb *CircuitBreaker) currentState(now time.Time) (State, uint64) {
	switch cb.state {
	case StateClosed:
		if !cb.expiry.IsZero() && cb.expiry.Before(now) {
			cb.counts.reset()
			cb.expiry = now.Add(cb.interval)
		}
	case StateOpen:
		if cb.expiry.Before(now) {
			cb.setState(StateHalfOpen, now)
		}
	}
	return cb.state, cb.generation
}

func (cb *CircuitBreaker) setState(state State, now time.Time) {
	if cb.state == state {
		return
	}

	prev := cb.state
	cb.state = state
	cb.generation++
	cb.counts.reset()

	switch state {
	case StateClosed:
		cb.expiry = now.Add(cb.interval)
	case StateOpen:
		cb.expiry = now.Add(cb.timeout)
	case StateHalfOpen:
		cb.expiry = time.Time{}
	}

	if cb.onStateChange != nil {
		cb.onStateChange(cb.name, prev, state)
	}
}

// State 获取当前状态（只读）
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, _ := cb.currentState(time.Now())
	return state
}

// Counts 获取当前统计数据（只读）
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.counts
}
