// Copyright (c) AgentCore Authors.
// Licensed under the MIT License.

// Package factory 提供 LLM Provider 的集中式工厂，
// 通过名称映射创建 Provider 实例，供配置驱动的启动流程与 quick 包复用。
package factory
