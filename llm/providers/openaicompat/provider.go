// =============================================================================
// AgentCore OpenAI-Compatible Provider
// =============================================================================
// One adapter for every endpoint that speaks the OpenAI chat completions
// wire format (OpenRouter, DeepSeek, vLLM, LM Studio, ...). Built on
// sashabaranov/go-openai so the base URL can point anywhere.
// =============================================================================

package openaicompat

import (
	"context"
	"errors"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/BaSui01/agentcore/llm"
	"github.com/BaSui01/agentcore/llm/providers"
	"github.com/BaSui01/agentcore/llm/retry"
	"github.com/BaSui01/agentcore/types"
)

const (
	ProviderName  = "openaicompat"
	FallbackModel = "gpt-4"
)

// Well-known base URLs keyed by provider name.
var defaultBaseURLs = map[string]string{
	"openaicompat": "https://api.openai.com/v1",
	"openrouter":   "https://openrouter.ai/api/v1",
	"deepseek":     "https://api.deepseek.com/v1",
}

// Provider is the OpenAI-compatible adapter.
type Provider struct {
	name    string
	cfg     providers.Config
	client  *goopenai.Client
	retryer *retry.Retryer
}

var _ llm.Provider = (*Provider)(nil)

// New creates an adapter reported under name. An empty name means
// "openaicompat". An empty BaseURL falls back to the well-known URL for name.
func New(name string, cfg providers.Config) *Provider {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = ProviderName
	}
	cfg = cfg.WithDefaults(FallbackModel)
	cfg.BaseURL = providers.TrimBaseURL(cfg.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURLs[name]
		if cfg.BaseURL == "" {
			cfg.BaseURL = defaultBaseURLs[ProviderName]
		}
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.HTTPClient = providers.NewHTTPClient(cfg.Timeout)

	return &Provider{
		name:    name,
		cfg:     cfg,
		client:  goopenai.NewClientWithConfig(clientCfg),
		retryer: providers.NewRetryer(cfg.MaxRetries),
	}
}

// WithModel returns a copy of the provider that defaults to model.
func (p *Provider) WithModel(model string) *Provider {
	cp := *p
	cp.cfg.Model = model
	return &cp
}

func (p *Provider) Name() string { return p.name }

func (p *Provider) Model() string { return p.cfg.Model }

// BaseURL returns the endpoint requests are sent to.
func (p *Provider) BaseURL() string { return p.cfg.BaseURL }

func (p *Provider) Chat(ctx context.Context, req *types.AgentRequest) (*types.AgentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if p.cfg.APIKey == "" {
		return nil, providers.MissingAPIKey(p.name)
	}

	model := providers.ResolveModel(req, p.cfg.Model)
	chatReq := p.buildRequest(req, model)

	start := time.Now()
	resp, err := retry.Do(ctx, p.retryer, func(ctx context.Context) (goopenai.ChatCompletionResponse, error) {
		out, err := p.client.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			return out, providers.ClassifyError(p.name, err, apiStatus)
		}
		return out, nil
	})
	elapsed := providers.ElapsedMS(start)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, types.NewParseError("response contains no choices").WithProvider(p.name)
	}

	thoughts := []types.Thought{
		types.NewThought(types.ThoughtTypeThought, "Analyzing: "+req.Task),
		types.NewThought(types.ThoughtTypeAction, "Call "+p.cfg.BaseURL+" with "+model),
	}
	return types.NewAgentResponse(resp.Choices[0].Message.Content, thoughts, elapsed), nil
}

func (p *Provider) buildRequest(req *types.AgentRequest, model string) goopenai.ChatCompletionRequest {
	messages := make([]goopenai.ChatCompletionMessage, 0, 2)
	if p.cfg.SystemPrompt != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: p.cfg.SystemPrompt,
		})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: req.Task,
	})

	out := goopenai.ChatCompletionRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: p.cfg.MaxTokens,
	}
	if req.Temperature != nil {
		out.Temperature = float32(*req.Temperature)
	}
	return out
}

func apiStatus(err error) (int, string, bool) {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode, apiErr.Message, true
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		msg := ""
		if reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return reqErr.HTTPStatusCode, msg, true
	}
	return 0, "", false
}
