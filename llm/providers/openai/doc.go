// Copyright 2026 AgentCore Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
# 概述

包 openai 提供基于官方 openai-go SDK 的 Provider 适配实现（参考适配器 A）。

# 核心结构体

  - OpenAIProvider — Chat Completions 适配器，默认模型 gpt-4，
    通过 WithModel 构造不同默认模型的副本

# 行为

  - 轨迹：thought（Analyzing: <task>）→ action（Generate response with <model>）
  - 请求中的 model/temperature 覆盖适配器默认值，适配器自身不可变
  - SDK 内部重试关闭，重试由 llm/retry 统一负责
  - 空 API Key 不影响构造，调用时返回 api_error
*/
package openai
