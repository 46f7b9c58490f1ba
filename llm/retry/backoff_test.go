package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BaSui01/agentcore/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(maxRetries int) Policy {
	return Policy{
		MaxRetries:   maxRetries,
		InitialDelay: 5 * time.Millisecond,
		MaxDelay:     20 * time.Millisecond,
		Multiplier:   2.0,
		Jitter:       false,
	}
}

func TestRetryer_Success(t *testing.T) {
	r := New(fastPolicy(3))

	callCount := 0
	err := r.Do(context.Background(), func(context.Context) error {
		callCount++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, callCount, "应该只调用一次")
}

func TestRetryer_RetryAndSuccess(t *testing.T) {
	r := New(fastPolicy(3))

	callCount := 0
	err := r.Do(context.Background(), func(context.Context) error {
		callCount++
		if callCount < 3 {
			return types.NewNetworkError(errors.New("reset")).WithRetryable(true)
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, callCount, "应该调用三次")
}

func TestRetryer_MaxRetriesExceeded_ReturnsLastErrorUnchanged(t *testing.T) {
	r := New(fastPolicy(2))

	var last *types.Error
	callCount := 0
	err := r.Do(context.Background(), func(context.Context) error {
		callCount++
		last = types.NewAPIError("rate limited").WithHTTPStatus(429).WithRetryable(true)
		return last
	})

	require.Error(t, err)
	assert.Equal(t, 3, callCount, "初始调用 + 2 次重试")
	assert.Same(t, last, err)
}

func TestRetryer_NonRetryableStopsImmediately(t *testing.T) {
	r := New(fastPolicy(5))

	callCount := 0
	orig := types.NewAPIError("bad key").WithHTTPStatus(401)
	err := r.Do(context.Background(), func(context.Context) error {
		callCount++
		return orig
	})

	assert.Same(t, orig, err)
	assert.Equal(t, 1, callCount)
}

func TestRetryer_ContextCancelledDuringBackoff(t *testing.T) {
	policy := fastPolicy(5)
	policy.InitialDelay = time.Second
	policy.MaxDelay = time.Second
	r := New(policy)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	orig := types.NewNetworkError(errors.New("timeout")).WithRetryable(true)
	start := time.Now()
	err := r.Do(ctx, func(context.Context) error { return orig })

	assert.Same(t, orig, err, "cancellation returns the last attempt's error")
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestRetryer_OnRetryCallback(t *testing.T) {
	policy := fastPolicy(2)
	var attempts []int
	policy.OnRetry = func(attempt int, err error, delay time.Duration) {
		attempts = append(attempts, attempt)
		assert.Error(t, err)
		assert.Greater(t, delay, time.Duration(0))
	}
	r := New(policy)

	_ = r.Do(context.Background(), func(context.Context) error {
		return types.NewNetworkError(nil).WithRetryable(true)
	})

	assert.Equal(t, []int{1, 2}, attempts)
}

func TestRetryer_Delay(t *testing.T) {
	r := New(Policy{
		MaxRetries:   5,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     1 * time.Second,
		Multiplier:   2.0,
	})

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, 1 * time.Second},
		{10, 1 * time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Delay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestRetryer_DelayWithJitterStaysInBounds(t *testing.T) {
	r := New(Policy{
		MaxRetries:   3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	})

	for i := 0; i < 100; i++ {
		d := r.Delay(2)
		assert.GreaterOrEqual(t, d, 150*time.Millisecond)
		assert.LessOrEqual(t, d, 250*time.Millisecond)
	}
}

func TestNew_NormalizesPolicy(t *testing.T) {
	r := New(Policy{MaxRetries: -1, Multiplier: 0.5})
	p := r.Policy()

	assert.Equal(t, 0, p.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, p.InitialDelay)
	assert.Equal(t, 10*time.Second, p.MaxDelay)
	assert.Equal(t, 2.0, p.Multiplier)
	assert.NotNil(t, p.ShouldRetry)
}

func TestDo_Typed(t *testing.T) {
	val, err := Do(context.Background(), NoRetry(), func(context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, val)
}
