// Copyright 2026 AgentCore Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
# 概述

包 ollama 基于 github.com/ollama/ollama/api 客户端对接本地 Ollama 服务
（默认 http://localhost:11434），以非流式方式调用 /api/chat。

# 核心结构体

  - OllamaProvider — 持有 api.Client、providers.Config 与重试器

# 构造函数

  - NewOllamaProvider(cfg) — 默认模型 llama3；BaseURL 非法时返回错误

# 推理轨迹

每次成功调用产生三步轨迹：thought → action → observation。
*/
package ollama
