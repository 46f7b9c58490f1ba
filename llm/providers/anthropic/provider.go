package claude

import (
	"context"
	"errors"
	"strings"
	"time"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/BaSui01/agentcore/llm"
	"github.com/BaSui01/agentcore/llm/providers"
	"github.com/BaSui01/agentcore/llm/retry"
	"github.com/BaSui01/agentcore/types"
)

const (
	ProviderName = "anthropic"
	DefaultModel = "claude-3-sonnet"
)

// Dated Claude 3 model identifiers.
const (
	ModelClaude3Opus   = "claude-3-opus-20240229"
	ModelClaude3Sonnet = "claude-3-sonnet-20240229"
	ModelClaude3Haiku  = "claude-3-haiku-20240307"
)

// ClaudeProvider 基于 anthropic-sdk-go Messages API 的适配器。
// 与 OpenAI 适配器不同，每次调用只产生一步 thought 轨迹。
type ClaudeProvider struct {
	cfg     providers.Config
	client  anthropicsdk.Client
	retryer *retry.Retryer
}

var _ llm.Provider = (*ClaudeProvider)(nil)

// NewClaudeProvider 创建 Claude Provider。空 API Key 在调用时才报错。
func NewClaudeProvider(cfg providers.Config) *ClaudeProvider {
	cfg = cfg.WithDefaults(DefaultModel)

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(providers.NewHTTPClient(cfg.Timeout)),
		option.WithMaxRetries(0),
	}
	if base := providers.SDKBaseURL(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}

	return &ClaudeProvider{
		cfg:     cfg,
		client:  anthropicsdk.NewClient(opts...),
		retryer: providers.NewRetryer(cfg.MaxRetries),
	}
}

// WithModel returns a copy of the provider that defaults to model.
func (p *ClaudeProvider) WithModel(model string) *ClaudeProvider {
	cp := *p
	cp.cfg.Model = model
	return &cp
}

func (p *ClaudeProvider) Name() string { return ProviderName }

func (p *ClaudeProvider) Model() string { return p.cfg.Model }

func (p *ClaudeProvider) Chat(ctx context.Context, req *types.AgentRequest) (*types.AgentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if p.cfg.APIKey == "" {
		return nil, providers.MissingAPIKey(ProviderName)
	}

	params := anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(providers.ResolveModel(req, p.cfg.Model)),
		MaxTokens: int64(p.cfg.MaxTokens),
		Messages: []anthropicsdk.MessageParam{
			anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(req.Task)),
		},
	}
	if p.cfg.SystemPrompt != "" {
		params.System = []anthropicsdk.TextBlockParam{{Text: p.cfg.SystemPrompt}}
	}
	if req.Temperature != nil {
		params.Temperature = anthropicsdk.Float(*req.Temperature)
	}

	start := time.Now()
	msg, err := retry.Do(ctx, p.retryer, func(ctx context.Context) (*anthropicsdk.Message, error) {
		resp, err := p.client.Messages.New(ctx, params)
		if err != nil {
			return nil, providers.ClassifyError(ProviderName, err, apiStatus)
		}
		return resp, nil
	})
	elapsed := providers.ElapsedMS(start)
	if err != nil {
		return nil, err
	}

	text, ok := extractText(msg)
	if !ok {
		return nil, types.NewParseError("response contains no text block").WithProvider(ProviderName)
	}

	thoughts := []types.Thought{
		types.NewThought(types.ThoughtTypeThought, "Reasoning about: "+req.Task),
	}
	return types.NewAgentResponse(text, thoughts, elapsed), nil
}

// extractText joins every text block of the reply.
func extractText(msg *anthropicsdk.Message) (string, bool) {
	if msg == nil {
		return "", false
	}
	var sb strings.Builder
	found := false
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
			found = true
		}
	}
	return sb.String(), found
}

func apiStatus(err error) (int, string, bool) {
	var apiErr *anthropicsdk.Error
	if !errors.As(err, &apiErr) {
		return 0, "", false
	}
	return apiErr.StatusCode, apiErr.Error(), true
}
