// Copyright (c) AgentCore Authors.
// Licensed under the MIT License.

/*
Package types 提供 AgentCore 的全局共享类型定义。

# 概述

types 是最底层的公共包，不依赖任何内部包，为 llm、rag、agent、api
等上层模块提供统一的数据契约与错误体系。

# 核心类型

  - Thought       — 单个推理/行动步骤（thought_type + content）
  - AgentRequest  — 提交给 Provider 的一次任务（task，可选 model/temperature 覆盖）
  - AgentResponse — 一次 Provider 调用的结果（result、thoughts、duration_ms）
  - Error         — 封闭错误体系：api_error / network_error / parse_error

# 错误工具链

  - 构造：NewAPIError / NewNetworkError / NewParseError
  - 判定：KindOf / IsAPIError / IsNetworkError / IsParseError / IsRetryable
  - 提取：As
*/
package types
