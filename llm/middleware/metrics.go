package middleware

import (
	"context"
	"time"

	"github.com/BaSui01/agentcore/llm"
	"github.com/BaSui01/agentcore/types"
)

// MetricsRecorder 定义 LLM 调用指标的记录接口，
// internal/metrics.Collector 实现了该接口。
type MetricsRecorder interface {
	RecordLLMRequest(provider, model, status string, duration time.Duration, thoughts int)
}

// WithMetrics 记录请求数、耗时与轨迹步数.
func WithMetrics(recorder MetricsRecorder) Middleware {
	return func(next llm.Provider) llm.Provider {
		if recorder == nil {
			return next
		}
		return wrap(next, func(ctx context.Context, req *types.AgentRequest) (*types.AgentResponse, error) {
			start := time.Now()
			resp, err := next.Chat(ctx, req)

			thoughts := 0
			if err == nil && resp != nil {
				thoughts = len(resp.Thoughts)
			}
			recorder.RecordLLMRequest(next.Name(), requestModel(req), outcome(err), time.Since(start), thoughts)
			return resp, err
		})
	}
}
