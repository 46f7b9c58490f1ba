// Copyright 2026 AgentCore Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
# 概述

包 providers 是各模型服务商适配器的公共基础层。具体适配器位于子包
（openai、anthropic、gemini、ollama、openaicompat），均基于厂商官方或
社区 SDK 实现，本包负责它们共享的配置、错误归类与重试策略。

# 核心类型

  - Config — 所有适配器共享的配置（APIKey、BaseURL、Model、Timeout、MaxRetries、MaxTokens、SystemPrompt）
  - StatusFunc — 从 SDK 错误中提取 HTTP 状态码与消息

# 核心函数

  - MapHTTPError — 将 HTTP 状态码映射为 api_error（429/529/5xx 可重试）
  - ClassifyError — 将任意调用错误归入 api_error / network_error / parse_error
  - MissingAPIKey — 空凭证在调用时返回的标准错误
  - NewHTTPClient / NewRetryer — 超时客户端与重试器
  - ResolveModel — 按优先级选择模型（请求覆盖 > 适配器默认）

# 约定

  - SDK 内置重试全部关闭，由 llm/retry 统一负责
  - 空 API Key 不影响构造，仅在 Chat 时报错
  - 适配器不记录日志，可观测性由 llm/middleware 装饰器提供
*/
package providers
