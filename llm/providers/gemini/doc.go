// Copyright 2026 AgentCore Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
# 概述

包 gemini 基于 google.golang.org/genai SDK 提供 Google Gemini 的 Provider
适配实现，调用 models/{model}:generateContent。

# 核心结构体

  - GeminiProvider — 持有 providers.Config、重试器与延迟创建的 genai.Client

# 构造函数

  - NewGeminiProvider(cfg) — 默认模型 gemini-1.5-flash；空 API Key 在 Chat 时返回 api_error

# 推理轨迹

每次成功调用产生一步 thought："Planning answer for: {task}"。
*/
package gemini
