package tokenizer

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Tokenizer 统一的 token 计数接口
type Tokenizer interface {
	// CountTokens 返回给定文本的 token 数
	CountTokens(text string) (int, error)

	// Name 返回分词器名称
	Name() string
}

// Warmer is implemented by tokenizers whose first use loads data.
type Warmer interface {
	Warm(ctx context.Context) error
}

// Warm prepares t when it implements Warmer; other tokenizers are ready
// immediately.
func Warm(ctx context.Context, t Tokenizer) error {
	if w, ok := t.(Warmer); ok {
		return w.Warm(ctx)
	}
	return ctx.Err()
}

// 全局分词器注册表，按模型名（或模型名前缀）索引
var (
	modelTokenizers   = make(map[string]Tokenizer)
	modelTokenizersMu sync.RWMutex
)

// RegisterTokenizer 为模型名注册分词器
func RegisterTokenizer(model string, t Tokenizer) {
	modelTokenizersMu.Lock()
	defer modelTokenizersMu.Unlock()
	modelTokenizers[model] = t
}

// GetTokenizer 返回为模型注册的分词器，精确匹配优先，其次取最长前缀匹配
func GetTokenizer(model string) (Tokenizer, error) {
	modelTokenizersMu.RLock()
	defer modelTokenizersMu.RUnlock()

	if t, ok := modelTokenizers[model]; ok {
		return t, nil
	}

	var (
		best    Tokenizer
		bestLen int
	)
	for prefix, t := range modelTokenizers {
		if strings.HasPrefix(model, prefix) && len(prefix) > bestLen {
			best, bestLen = t, len(prefix)
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no tokenizer registered for model: %s", model)
	}
	return best, nil
}

// ForModel 返回模型对应的分词器：已注册的优先；OpenAI 系列模型使用
// tiktoken（编码数据不可用时回退到估算器）；其余模型使用估算器。
func ForModel(model string) Tokenizer {
	if t, err := GetTokenizer(model); err == nil {
		return t
	}
	if IsTiktokenModel(model) {
		return WithFallback(NewTiktokenTokenizer(model), NewEstimatorTokenizer())
	}
	return NewEstimatorTokenizer()
}

// fallbackTokenizer 在主分词器出错时改用备用分词器
type fallbackTokenizer struct {
	primary  Tokenizer
	fallback Tokenizer
}

// WithFallback 组合两个分词器：primary 计数失败时使用 fallback
func WithFallback(primary, fallback Tokenizer) Tokenizer {
	return &fallbackTokenizer{primary: primary, fallback: fallback}
}

func (f *fallbackTokenizer) CountTokens(text string) (int, error) {
	n, err := f.primary.CountTokens(text)
	if err == nil {
		return n, nil
	}
	return f.fallback.CountTokens(text)
}

// Warm 主分词器加载失败时由 fallback 兜底，只有 ctx 结束才返回错误
func (f *fallbackTokenizer) Warm(ctx context.Context) error {
	if err := Warm(ctx, f.primary); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return Warm(ctx, f.fallback)
}

func (f *fallbackTokenizer) Name() string {
	return f.primary.Name() + "|" + f.fallback.Name()
}
