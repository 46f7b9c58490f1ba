// Copyright (c) AgentCore Authors.
// Licensed under the MIT License.

/*
包 llm 定义大语言模型接入层的能力契约。

# 概述

核心接口是 [Provider]：单一操作 Chat，把一次 AgentRequest 转换为
AgentResponse。不同服务商的适配器位于 llm/providers 子包，编排层只依赖
本接口，因此可以在不修改编排逻辑的前提下切换底层模型服务。

# 契约

  - 并发安全：同一实例可被多个 goroutine 同时调用
  - 自测延迟：DurationMS 只覆盖 Provider 自身的调用耗时
  - 错误封闭：传输失败返回 network_error，后端拒绝返回 api_error，
    成功响应无法解析返回 parse_error
  - 重试策略属于适配器（见 llm/retry），编排层不做重试

# 子包

  - providers/*  — openai、anthropic、gemini、ollama、openaicompat 适配器
  - factory      — 按名称创建 Provider
  - retry        — 适配器内部使用的指数退避重试
  - middleware   — 可选的日志、指标、追踪装饰器
  - tokenizer    — Token 计数（tiktoken 与估算器）
*/
package llm
