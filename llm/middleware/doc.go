// 版权所有 2026 AgentCore Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 middleware 提供 llm.Provider 的装饰器，用于在不改变 Provider 契约的前提下
叠加日志、指标、追踪与超时等横切逻辑。

# 概述

核心编排层（agent）与各适配器本身不记录日志、不采集指标。需要可观测性时，
在组装阶段用 Chain 包装 Provider：

	p = middleware.Chain(p,
	    middleware.WithTracing(tracer),
	    middleware.WithMetrics(collector),
	    middleware.WithLogging(logger),
	)

装饰后的 Provider 名称不变，错误原样透传（同一指针，不包装）。

# 主要能力

  - WithLogging：基于 zap 记录 provider、模型、耗时、轨迹步数与错误类别。
  - WithMetrics：通过 MetricsRecorder 记录请求数与耗时。
  - WithTracing：基于 OpenTelemetry 为每次调用创建 span。
  - WithTimeout：为每次调用添加 context 超时。
*/
package middleware
