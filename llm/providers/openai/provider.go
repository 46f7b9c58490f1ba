package openai

import (
	"context"
	"errors"
	"time"

	openaisdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/BaSui01/agentcore/llm"
	"github.com/BaSui01/agentcore/llm/providers"
	"github.com/BaSui01/agentcore/llm/retry"
	"github.com/BaSui01/agentcore/types"
)

const (
	ProviderName = "openai"
	DefaultModel = ModelGPT4
)

// Known chat models.
const (
	ModelGPT4       = "gpt-4"
	ModelGPT4Turbo  = "gpt-4-turbo"
	ModelGPT35Turbo = "gpt-3.5-turbo"
)

// OpenAIProvider 基于官方 openai-go SDK 的 Chat Completions 适配器。
// 每次调用产生两步轨迹：thought（分析任务）→ action（生成回复）。
type OpenAIProvider struct {
	cfg     providers.Config
	client  openaisdk.Client
	retryer *retry.Retryer
}

var _ llm.Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates the adapter. An empty API key is accepted here
// and reported by Chat.
func NewOpenAIProvider(cfg providers.Config) *OpenAIProvider {
	cfg = cfg.WithDefaults(DefaultModel)

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(providers.NewHTTPClient(cfg.Timeout)),
		option.WithMaxRetries(0),
	}
	if base := providers.SDKBaseURL(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}

	return &OpenAIProvider{
		cfg:     cfg,
		client:  openaisdk.NewClient(opts...),
		retryer: providers.NewRetryer(cfg.MaxRetries),
	}
}

// WithModel returns a copy of the provider that defaults to model.
func (p *OpenAIProvider) WithModel(model string) *OpenAIProvider {
	cp := *p
	cp.cfg.Model = model
	return &cp
}

func (p *OpenAIProvider) Name() string { return ProviderName }

// Model returns the default model.
func (p *OpenAIProvider) Model() string { return p.cfg.Model }

// Chat sends the task as a single user message.
func (p *OpenAIProvider) Chat(ctx context.Context, req *types.AgentRequest) (*types.AgentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if p.cfg.APIKey == "" {
		return nil, providers.MissingAPIKey(ProviderName)
	}

	model := providers.ResolveModel(req, p.cfg.Model)
	params := p.buildParams(req, model)

	start := time.Now()
	completion, err := retry.Do(ctx, p.retryer, func(ctx context.Context) (*openaisdk.ChatCompletion, error) {
		resp, err := p.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return nil, providers.ClassifyError(ProviderName, err, apiStatus)
		}
		return resp, nil
	})
	elapsed := providers.ElapsedMS(start)
	if err != nil {
		return nil, err
	}
	if completion == nil || len(completion.Choices) == 0 {
		return nil, types.NewParseError("response contains no choices").WithProvider(ProviderName)
	}

	thoughts := []types.Thought{
		types.NewThought(types.ThoughtTypeThought, "Analyzing: "+req.Task),
		types.NewThought(types.ThoughtTypeAction, "Generate response with "+model),
	}
	return types.NewAgentResponse(completion.Choices[0].Message.Content, thoughts, elapsed), nil
}

func (p *OpenAIProvider) buildParams(req *types.AgentRequest, model string) openaisdk.ChatCompletionNewParams {
	messages := make([]openaisdk.ChatCompletionMessageParamUnion, 0, 2)
	if p.cfg.SystemPrompt != "" {
		messages = append(messages, openaisdk.SystemMessage(p.cfg.SystemPrompt))
	}
	messages = append(messages, openaisdk.UserMessage(req.Task))

	params := openaisdk.ChatCompletionNewParams{
		Model:               openaisdk.ChatModel(model),
		Messages:            messages,
		MaxCompletionTokens: openaisdk.Int(int64(p.cfg.MaxTokens)),
	}
	if req.Temperature != nil {
		params.Temperature = openaisdk.Float(*req.Temperature)
	}
	return params
}

func apiStatus(err error) (int, string, bool) {
	var apiErr *openaisdk.Error
	if !errors.As(err, &apiErr) {
		return 0, "", false
	}
	msg := apiErr.Message
	if msg == "" {
		msg = apiErr.Error()
	}
	return apiErr.StatusCode, msg, true
}
