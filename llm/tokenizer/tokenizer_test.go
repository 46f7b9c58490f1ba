package tokenizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingTokenizer struct{}

func (failingTokenizer) CountTokens(string) (int, error) { return 0, errors.New("no encoding data") }
func (failingTokenizer) Name() string                    { return "failing" }

type fixedTokenizer struct{ n int }

func (f fixedTokenizer) CountTokens(string) (int, error) { return f.n, nil }
func (f fixedTokenizer) Name() string                    { return "fixed" }

type slowWarmer struct {
	fixedTokenizer
	err error
}

func (w slowWarmer) Warm(ctx context.Context) error {
	if w.err != nil {
		return w.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestWarm(t *testing.T) {
	require.NoError(t, Warm(context.Background(), NewEstimatorTokenizer()))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Warm(cancelled, NewEstimatorTokenizer()), context.Canceled)
	// 已取消的 ctx 不触发编码数据加载
	assert.ErrorIs(t, Warm(cancelled, NewTiktokenTokenizer("gpt-4")), context.Canceled)

	loadErr := errors.New("download failed")
	assert.ErrorIs(t, Warm(context.Background(), slowWarmer{err: loadErr}), loadErr)
}

func TestWarm_FallbackAbsorbsLoadErrors(t *testing.T) {
	tok := WithFallback(slowWarmer{err: errors.New("download failed")}, NewEstimatorTokenizer())
	require.NoError(t, Warm(context.Background(), tok))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	tok = WithFallback(slowWarmer{}, NewEstimatorTokenizer())
	assert.ErrorIs(t, Warm(ctx, tok), context.DeadlineExceeded)
}

func TestEstimator_CountTokens(t *testing.T) {
	e := NewEstimatorTokenizer()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"short ascii rounds up to one", "hi", 1},
		{"ascii", "abcdefghijklmnop", 4},
		{"cjk", "你好世界你好", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.CountTokens(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithFallback(t *testing.T) {
	tok := WithFallback(failingTokenizer{}, fixedTokenizer{n: 7})
	n, err := tok.CountTokens("anything")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, "failing|fixed", tok.Name())

	tok = WithFallback(fixedTokenizer{n: 3}, failingTokenizer{})
	n, err = tok.CountTokens("anything")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestGetTokenizer_LongestPrefix(t *testing.T) {
	RegisterTokenizer("test-model", fixedTokenizer{n: 1})
	RegisterTokenizer("test-model-large", fixedTokenizer{n: 2})

	tok, err := GetTokenizer("test-model-large-v2")
	require.NoError(t, err)
	n, _ := tok.CountTokens("x")
	assert.Equal(t, 2, n)

	_, err = GetTokenizer("unregistered-model")
	assert.Error(t, err)
}

func TestForModel(t *testing.T) {
	assert.Equal(t, "estimator", ForModel("llama3").Name())
	assert.Equal(t, "tiktoken[cl100k_base]|estimator", ForModel("gpt-4").Name())
	assert.Equal(t, "tiktoken[o200k_base]|estimator", ForModel("gpt-4o-mini").Name())
}

func TestTiktokenTokenizer_Encoding(t *testing.T) {
	assert.Equal(t, "cl100k_base", NewTiktokenTokenizer("gpt-4-0613").Encoding())
	assert.Equal(t, "cl100k_base", NewTiktokenTokenizer("gpt-4-turbo").Encoding())
	assert.Equal(t, "o200k_base", NewTiktokenTokenizer("gpt-4o").Encoding())
	assert.Equal(t, "cl100k_base", NewTiktokenTokenizer("claude-3-sonnet").Encoding())
	assert.False(t, IsTiktokenModel("claude-3-sonnet"))
}

func TestBudget(t *testing.T) {
	b := NewBudget(fixedTokenizer{n: 4}, 10)

	ok, err := b.Take("a")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = b.Take("b")
	assert.True(t, ok)
	ok, _ = b.Take("c")
	assert.False(t, ok, "third take would reach 12")
	assert.Equal(t, 8, b.Used())
	assert.Equal(t, 2, b.Remaining())

	_, err = NewBudget(failingTokenizer{}, 10).Take("x")
	assert.Error(t, err)

	ok, _ = NewBudget(fixedTokenizer{n: 1}, -5).Take("x")
	assert.False(t, ok)
}
