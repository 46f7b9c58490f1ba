package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/BaSui01/agentcore/llm"
	"github.com/BaSui01/agentcore/types"
)

const spanName = "llm.chat"

// WithTracing 为每次调用创建一个 span，记录 provider、模型与结果.
func WithTracing(tracer trace.Tracer) Middleware {
	return func(next llm.Provider) llm.Provider {
		if tracer == nil {
			return next
		}
		return wrap(next, func(ctx context.Context, req *types.AgentRequest) (*types.AgentResponse, error) {
			ctx, span := tracer.Start(ctx, spanName,
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(
					attribute.String("llm.provider", next.Name()),
					attribute.String("llm.model", requestModel(req)),
				),
			)
			defer span.End()

			resp, err := next.Chat(ctx, req)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				span.SetAttributes(
					attribute.String("llm.error_kind", outcome(err)),
					attribute.Bool("llm.retryable", types.IsRetryable(err)),
				)
				return resp, err
			}

			span.SetAttributes(
				attribute.Int("llm.thoughts", len(resp.Thoughts)),
				attribute.Int64("llm.duration_ms", int64(resp.DurationMS)),
			)
			span.SetStatus(codes.Ok, "")
			return resp, nil
		})
	}
}
