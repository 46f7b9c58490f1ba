package agent

import (
	"context"
	"strings"

	"github.com/BaSui01/agentcore/llm"
	"github.com/BaSui01/agentcore/llm/tokenizer"
	"github.com/BaSui01/agentcore/rag"
	"github.com/BaSui01/agentcore/types"
)

// Config 编排器配置，构造后不可变
type Config struct {
	// Retrieval 开启检索增强，默认关闭
	Retrieval bool `json:"retrieval" yaml:"retrieval"`
	// TopK 每次执行检索的文档数
	TopK int `json:"top_k" yaml:"top_k"`
	// TokenBudget 上下文块的 token 上限
	TokenBudget int `json:"token_budget" yaml:"token_budget"`
}

// Option 配置 ReActAgent
type Option func(*ReActAgent)

// WithRetrieval 开启检索增强：每次执行前检索 k 篇文档，
// 并在 tokenBudget 个 token 内拼入任务文本。
func WithRetrieval(k, tokenBudget int) Option {
	return func(a *ReActAgent) {
		a.cfg.Retrieval = k > 0 && tokenBudget > 0
		a.cfg.TopK = k
		a.cfg.TokenBudget = tokenBudget
	}
}

// WithTokenizer 指定上下文预算使用的分词器
func WithTokenizer(t tokenizer.Tokenizer) Option {
	return func(a *ReActAgent) {
		if t != nil {
			a.tok = t
		}
	}
}

// ReActAgent 将任务交给 Provider 完成推理，返回结果与推理轨迹。
// Provider 与 Store 在构造时固定，可被任意多个并发 Execute 共享。
//
// 编排器不重试、不记录日志、不转换错误：Provider 与 Store 的错误原样返回。
type ReActAgent struct {
	provider llm.Provider
	store    rag.VectorStore
	cfg      Config
	tok      tokenizer.Tokenizer
}

// New 创建编排器。provider 或 store 为 nil 属于编程错误，直接 panic。
func New(provider llm.Provider, store rag.VectorStore, opts ...Option) *ReActAgent {
	if provider == nil {
		panic("agent: nil provider")
	}
	if store == nil {
		panic("agent: nil store")
	}

	a := &ReActAgent{provider: provider, store: store}
	for _, opt := range opts {
		opt(a)
	}
	if a.cfg.Retrieval && a.tok == nil {
		a.tok = DefaultTokenizer(provider)
	}
	return a
}

// Execute 构造请求并调用一次 Provider.Chat，响应或错误原样返回。
// 开启检索增强时，先检索上下文并拼入任务文本；检索出错时不调用 Provider。
func (a *ReActAgent) Execute(ctx context.Context, task string) (*types.AgentResponse, error) {
	if a.cfg.Retrieval && strings.TrimSpace(task) != "" {
		augmented, err := a.augment(ctx, task)
		if err != nil {
			return nil, err
		}
		task = augmented
	}
	return a.provider.Chat(ctx, types.NewAgentRequest(task))
}

// Provider 返回构造时注入的 Provider
func (a *ReActAgent) Provider() llm.Provider { return a.provider }

// Store 返回构造时注入的 Store
func (a *ReActAgent) Store() rag.VectorStore { return a.store }

// Config 返回编排器配置
func (a *ReActAgent) Config() Config { return a.cfg }

// DefaultTokenizer 按 Provider 的默认模型选择分词器；不暴露 Model() 的
// Provider（例如经中间件包装后）使用估算器
func DefaultTokenizer(p llm.Provider) tokenizer.Tokenizer {
	if m, ok := p.(interface{ Model() string }); ok {
		return tokenizer.ForModel(m.Model())
	}
	return tokenizer.NewEstimatorTokenizer()
}
