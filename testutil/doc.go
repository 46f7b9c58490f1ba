// Copyright 2026 AgentCore Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license.

/*
Package testutil 提供 AgentCore 测试的共享工具和辅助函数。

# 核心能力

  - 上下文辅助: TestContext / TestContextWithTimeout，自动注册 Cleanup
  - 断言工具: AssertThoughtTypes / AssertErrorKind / AssertEventually
  - 集成测试开关: RequireIntegration / IntegrationModel，需 AGENTCORE_INTEGRATION=1
  - 伪造后端: NewOpenAIEchoServer，Chat Completions 兼容的 httptest 回显服务

# 子包

  - mocks: MockProvider / MockStore，支持 Builder 配置与调用记录
  - fixtures: 预定义的 AgentResponse 与检索结果
*/
package testutil
