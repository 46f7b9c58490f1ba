// MockProvider 是 llm.Provider 的测试模拟实现。
//
// 支持固定响应、回显、延迟与错误注入，并记录每次调用。
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/BaSui01/agentcore/llm"
	"github.com/BaSui01/agentcore/types"
)

// --- MockProvider 结构 ---

// MockProvider 是 LLM Provider 的模拟实现
type MockProvider struct {
	mu sync.RWMutex

	name     string
	response *types.AgentResponse
	err      error
	echo     bool
	delay    time.Duration

	calls []MockProviderCall
}

var _ llm.Provider = (*MockProvider)(nil)

// MockProviderCall 记录单次调用
type MockProviderCall struct {
	Request  types.AgentRequest
	Response *types.AgentResponse
	Error    error
}

// --- 构造函数和 Builder 方法 ---

// NewMockProvider 创建新的 MockProvider，默认返回 "Mock response"
func NewMockProvider() *MockProvider {
	return &MockProvider{
		name: "mock",
		response: types.NewAgentResponse("Mock response", []types.Thought{
			types.NewThought(types.ThoughtTypeThought, "Mock reasoning"),
		}, 1),
	}
}

// WithName 设置 Provider 名称
func (m *MockProvider) WithName(name string) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.name = name
	return m
}

// WithResponse 设置固定响应。每次调用都返回同一指针。
func (m *MockProvider) WithResponse(resp *types.AgentResponse) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = resp
	m.echo = false
	return m
}

// WithError 设置返回错误。每次调用都返回同一错误值。
func (m *MockProvider) WithError(err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithEcho 让每次调用返回 "Echo: {task}" 与两步轨迹
func (m *MockProvider) WithEcho() *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.echo = true
	return m
}

// WithDelay 设置模拟延迟，延迟期间响应 ctx 取消
func (m *MockProvider) WithDelay(d time.Duration) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
	return m
}

// --- llm.Provider 实现 ---

func (m *MockProvider) Name() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.name
}

func (m *MockProvider) Chat(ctx context.Context, req *types.AgentRequest) (*types.AgentResponse, error) {
	m.mu.RLock()
	delay, echo, resp, err := m.delay, m.echo, m.response, m.err
	m.mu.RUnlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			err := types.NewNetworkError(ctx.Err())
			m.record(req, nil, err)
			return nil, err
		}
	}

	switch {
	case err != nil:
		resp = nil
	case echo:
		resp = types.NewAgentResponse("Echo: "+req.Task, []types.Thought{
			types.NewThought(types.ThoughtTypeThought, "Analyzing: "+req.Task),
			types.NewThought(types.ThoughtTypeAction, "Echo task"),
		}, uint64(delay.Milliseconds()))
	}

	m.record(req, resp, err)
	return resp, err
}

func (m *MockProvider) record(req *types.AgentRequest, resp *types.AgentResponse, err error) {
	call := MockProviderCall{Response: resp, Error: err}
	if req != nil {
		call.Request = *req
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

// --- 调用记录查询 ---

// Calls 返回调用记录副本
func (m *MockProvider) Calls() []MockProviderCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]MockProviderCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount 返回调用次数
func (m *MockProvider) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.calls)
}

// LastTask 返回最后一次调用的任务文本
func (m *MockProvider) LastTask() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.calls) == 0 {
		return ""
	}
	return m.calls[len(m.calls)-1].Request.Task
}
