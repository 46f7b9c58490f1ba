// Copyright (c) AgentCore Authors.
// Licensed under the MIT License.

/*
Package handlers 提供 AgentCore HTTP 边界的请求处理器实现。

# 概述

handlers 包把核心能力（Agent 执行、向量检索）暴露为 JSON over HTTP，
并负责把核心错误类别映射为 HTTP 状态码。核心本身不记录日志，
每个错误在这里记录一次（4xx 为 Warn，5xx 为 Error）。

# 核心类型

  - AgentHandler   — POST /api/agent
  - VectorHandler  — POST /api/vector，GET /api/vector 与 /api/vector/search
  - HealthHandler  — /health、/healthz、/ready、/version
  - ErrorResponse  — {"error":{"kind","message"}}
  - ResponseWriter — 包装 http.ResponseWriter 以捕获状态码

# 错误映射

  - api_error     → 502
  - network_error → 503
  - parse_error   → 502
  - 请求体或参数校验失败 → 400（kind 为 invalid_request）

请求体上限 1 MiB，使用 json-iterator 解码并拒绝未知字段。
*/
package handlers
