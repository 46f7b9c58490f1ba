package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/BaSui01/agentcore/types"
)

// Policy 定义重试策略配置
type Policy struct {
	MaxRetries   int           // 最大重试次数（0 表示不重试）
	InitialDelay time.Duration // 初始延迟时间
	MaxDelay     time.Duration // 最大延迟时间
	Multiplier   float64       // 指数退避倍增因子
	Jitter       bool          // 是否添加 ±25% 随机抖动

	// ShouldRetry decides whether err is worth another attempt.
	// Defaults to types.IsRetryable.
	ShouldRetry func(err error) bool

	// OnRetry is called before each backoff sleep.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultPolicy 返回适用于大部分 LLM API 调用的默认策略
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   2,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// Retryer 基于指数退避的重试器。零值不可用，请使用 New。
// Retryer 创建后不可变，可被多个 goroutine 共享。
type Retryer struct {
	policy Policy
}

// New 创建重试器，非法参数回落到默认值
func New(policy Policy) *Retryer {
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	if policy.InitialDelay <= 0 {
		policy.InitialDelay = 500 * time.Millisecond
	}
	if policy.MaxDelay <= 0 {
		policy.MaxDelay = 10 * time.Second
	}
	if policy.MaxDelay < policy.InitialDelay {
		policy.MaxDelay = policy.InitialDelay
	}
	if policy.Multiplier < 1.0 {
		policy.Multiplier = 2.0
	}
	if policy.ShouldRetry == nil {
		policy.ShouldRetry = types.IsRetryable
	}
	return &Retryer{policy: policy}
}

// NoRetry returns a Retryer that runs fn exactly once.
func NoRetry() *Retryer {
	return New(Policy{MaxRetries: 0})
}

// Policy returns a copy of the effective policy.
func (r *Retryer) Policy() Policy {
	return r.policy
}

// Do runs fn until it succeeds, fails with a non-retryable error, the
// retry budget is spent or ctx is done. The last error is returned
// unchanged so its kind survives.
func (r *Retryer) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := Do(ctx, r, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// Do is the typed form of Retryer.Do.
func Do[T any](ctx context.Context, r *Retryer, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= r.policy.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := r.Delay(attempt)
			if r.policy.OnRetry != nil {
				r.policy.OnRetry(attempt, lastErr, delay)
			}

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, lastErr
			case <-timer.C:
			}
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !r.policy.ShouldRetry(err) || ctx.Err() != nil {
			return zero, err
		}
	}

	return zero, lastErr
}

// Delay 计算第 attempt 次重试前的等待时间：
// initial * multiplier^(attempt-1)，限制在 [InitialDelay, MaxDelay]
func (r *Retryer) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := float64(r.policy.InitialDelay) * math.Pow(r.policy.Multiplier, float64(attempt-1))
	if delay > float64(r.policy.MaxDelay) {
		delay = float64(r.policy.MaxDelay)
	}

	if r.policy.Jitter {
		jitter := delay * 0.25
		delay += (rand.Float64()*2 - 1) * jitter
	}

	if delay < float64(r.policy.InitialDelay) {
		delay = float64(r.policy.InitialDelay)
	}
	if delay > float64(r.policy.MaxDelay) {
		delay = float64(r.policy.MaxDelay)
	}
	return time.Duration(delay)
}
