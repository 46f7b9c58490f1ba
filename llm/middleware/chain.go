package middleware

import (
	"context"
	"time"

	"github.com/BaSui01/agentcore/llm"
	"github.com/BaSui01/agentcore/types"
)

// Middleware 包装一个 Provider 并返回新的 Provider。
// 装饰后的 Provider 名称不变，错误原样透传。
type Middleware func(next llm.Provider) llm.Provider

// Chain 用 mws 依次包装 p，第一个中间件位于最外层.
func Chain(p llm.Provider, mws ...Middleware) llm.Provider {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			p = mws[i](p)
		}
	}
	return p
}

// wrap 构造保留 next 名称的装饰 Provider
func wrap(next llm.Provider, fn func(ctx context.Context, req *types.AgentRequest) (*types.AgentResponse, error)) llm.Provider {
	return llm.ProviderFunc{ProviderName: next.Name(), Fn: fn}
}

// WithTimeout 为每次调用添加 context 超时.
func WithTimeout(timeout time.Duration) Middleware {
	return func(next llm.Provider) llm.Provider {
		if timeout <= 0 {
			return next
		}
		return wrap(next, func(ctx context.Context, req *types.AgentRequest) (*types.AgentResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next.Chat(ctx, req)
		})
	}
}

// requestModel 返回请求覆盖的模型，未覆盖时为 "default"
func requestModel(req *types.AgentRequest) string {
	if req != nil && req.Model != nil && *req.Model != "" {
		return *req.Model
	}
	return "default"
}

// outcome 返回 "success" 或错误类别，用作日志字段与指标标签
func outcome(err error) string {
	if err == nil {
		return "success"
	}
	if kind, ok := types.KindOf(err); ok {
		return string(kind)
	}
	return "error"
}
