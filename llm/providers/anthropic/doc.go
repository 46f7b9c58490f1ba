// Copyright 2026 AgentCore Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
# 概述

包 claude 提供 Anthropic Claude 系列模型的 Provider 适配实现（参考适配器 B），
基于 anthropic-sdk-go 调用 Messages API（/v1/messages）。

# 核心结构体

  - ClaudeProvider — 默认模型 claude-3-sonnet，WithModel 返回副本

# 协议差异

  - 认证使用 x-api-key 请求头（由 SDK 处理）
  - system 提示单独传递到 system 字段
  - max_tokens 为必填项，默认 4096
  - 轨迹只有一步：thought（Reasoning about: <task>）
*/
package claude
