package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/agentcore/llm"
	"github.com/BaSui01/agentcore/types"
)

// WithLogging 记录每次调用的 provider、模型、耗时、轨迹步数与错误类别.
// 任务文本不会写入日志。
func WithLogging(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "llm"))

	return func(next llm.Provider) llm.Provider {
		return wrap(next, func(ctx context.Context, req *types.AgentRequest) (*types.AgentResponse, error) {
			start := time.Now()
			resp, err := next.Chat(ctx, req)

			fields := []zap.Field{
				zap.String("provider", next.Name()),
				zap.String("model", requestModel(req)),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				fields = append(fields,
					zap.String("error_kind", outcome(err)),
					zap.Bool("retryable", types.IsRetryable(err)),
					zap.Error(err),
				)
				logger.Warn("provider call failed", fields...)
				return resp, err
			}

			fields = append(fields,
				zap.Int("thoughts", len(resp.Thoughts)),
				zap.Uint64("provider_duration_ms", resp.DurationMS),
			)
			logger.Debug("provider call completed", fields...)
			return resp, nil
		})
	}
}
