// =============================================================================
// Package quick builds a ready-to-run ReAct agent in one call.
// =============================================================================
// Provides a convenience entry point for creating agents with minimal
// boilerplate. Delegates to agent.New and llm/factory internally.
//
// Usage:
//
//	import "github.com/BaSui01/agentcore/quick"
//
//	a, err := quick.New(quick.WithOpenAI("gpt-4"))
//	a, err := quick.New(quick.WithAnthropic("claude-3-sonnet"), quick.WithRetrieval(3, 512))
//	a, err := quick.New(quick.WithProvider(myProvider), quick.WithStore(myStore))
//
// =============================================================================
package quick

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/agentcore/agent"
	"github.com/BaSui01/agentcore/llm"
	"github.com/BaSui01/agentcore/llm/factory"
	"github.com/BaSui01/agentcore/llm/middleware"
	"github.com/BaSui01/agentcore/llm/providers"
	"github.com/BaSui01/agentcore/rag"
)

// Option configures the agent created by New.
type Option func(*options)

type options struct {
	provider llm.Provider
	store    rag.VectorStore
	logger   *zap.Logger

	// Provider shortcut fields, used when provider is nil.
	providerName string
	model        string
	apiKey       string
	baseURL      string
	systemPrompt string

	topK        int
	tokenBudget int
}

// WithProvider sets a pre-built LLM provider.
func WithProvider(p llm.Provider) Option {
	return func(o *options) { o.provider = p }
}

// WithOpenAI selects the OpenAI adapter. API key from OPENAI_API_KEY.
func WithOpenAI(model string) Option {
	return shortcut("openai", model)
}

// WithAnthropic selects the Anthropic adapter. API key from ANTHROPIC_API_KEY.
func WithAnthropic(model string) Option {
	return shortcut("anthropic", model)
}

// WithGemini selects the Gemini adapter. API key from GEMINI_API_KEY.
func WithGemini(model string) Option {
	return shortcut("gemini", model)
}

// WithOllama selects the local Ollama adapter. Host from OLLAMA_HOST.
func WithOllama(model string) Option {
	return shortcut("ollama", model)
}

// WithDeepSeek selects DeepSeek through the OpenAI-compatible adapter.
// API key from DEEPSEEK_API_KEY.
func WithDeepSeek(model string) Option {
	return shortcut("deepseek", model)
}

func shortcut(name, model string) Option {
	return func(o *options) {
		o.providerName = name
		o.model = model
	}
}

// WithModel overrides the model set by a provider shortcut.
func WithModel(model string) Option {
	return func(o *options) { o.model = model }
}

// WithAPIKey overrides the API key for provider shortcuts.
func WithAPIKey(key string) Option {
	return func(o *options) { o.apiKey = key }
}

// WithBaseURL overrides the endpoint for provider shortcuts.
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithSystemPrompt sets the system prompt for provider shortcuts.
func WithSystemPrompt(prompt string) Option {
	return func(o *options) { o.systemPrompt = prompt }
}

// WithStore sets the vector store. Defaults to an in-memory store.
func WithStore(s rag.VectorStore) Option {
	return func(o *options) { o.store = s }
}

// WithRetrieval enables retrieval augmentation.
func WithRetrieval(k, tokenBudget int) Option {
	return func(o *options) {
		o.topK = k
		o.tokenBudget = tokenBudget
	}
}

// WithLogger wraps the provider with call logging.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates a ReActAgent with minimal configuration. A missing API key
// is not an error here; the provider reports it on the first call.
func New(opts ...Option) (*agent.ReActAgent, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	p := o.provider
	if p == nil {
		if o.providerName == "" {
			return nil, fmt.Errorf("provider is required: use WithProvider, WithOpenAI, WithAnthropic, WithGemini or WithOllama")
		}
		var err error
		p, err = factory.NewProviderFromConfig(o.providerName, o.providerConfig())
		if err != nil {
			return nil, fmt.Errorf("create %s provider: %w", o.providerName, err)
		}
	}
	if o.logger != nil {
		p = middleware.Chain(p, middleware.WithLogging(o.logger))
	}

	store := o.store
	if store == nil {
		store = rag.NewInMemoryVectorStore()
	}

	var agentOpts []agent.Option
	if o.topK > 0 {
		agentOpts = append(agentOpts, agent.WithRetrieval(o.topK, o.tokenBudget))
	}
	return agent.New(p, store, agentOpts...), nil
}

func (o *options) providerConfig() providers.Config {
	cfg := providers.Config{
		APIKey:       o.apiKey,
		BaseURL:      o.baseURL,
		Model:        o.model,
		MaxRetries:   -1,
		SystemPrompt: o.systemPrompt,
	}
	if cfg.APIKey == "" {
		if env := factory.APIKeyEnv(o.providerName); env != "" {
			cfg.APIKey = os.Getenv(env)
		}
	}
	if cfg.BaseURL == "" && o.providerName == "ollama" {
		cfg.BaseURL = ollamaHost(os.Getenv("OLLAMA_HOST"))
	}
	return cfg
}

// ollamaHost accepts OLLAMA_HOST values with or without a scheme.
func ollamaHost(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.Contains(v, "://") {
		return v
	}
	return "http://" + v
}
