// 版权所有 2024 AgentCore Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 metrics 提供基于 Prometheus 的指标采集，覆盖 HTTP、LLM、
Agent 执行与向量存储四个维度。

# 核心类型

  - Collector：指标收集器，使用 promauto 注册到默认 Registry，
    按 namespace 隔离。实现 llm/middleware.MetricsRecorder。
  - InstrumentStore / InstrumentExecutor：为向量存储与 Agent
    执行记录结果与耗时的装饰器。

# 标签

  - HTTP：method/path/status，状态码归类为 2xx/3xx/4xx/5xx。
  - LLM：provider/model/status，status 为 success 或错误类别。
  - 向量存储：operation（add/search）/status。
*/
package metrics
