package gemini

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/BaSui01/agentcore/llm"
	"github.com/BaSui01/agentcore/llm/providers"
	"github.com/BaSui01/agentcore/llm/retry"
	"github.com/BaSui01/agentcore/types"
)

const (
	ProviderName = "gemini"
	DefaultModel = "gemini-1.5-flash"
)

// GeminiProvider 基于 google.golang.org/genai 的 generateContent 适配器。
// genai.NewClient 在空 Key 时会报错，因此客户端延迟到首次调用时创建。
type GeminiProvider struct {
	cfg     providers.Config
	retryer *retry.Retryer

	mu     sync.Mutex
	client *genai.Client
}

var _ llm.Provider = (*GeminiProvider)(nil)

// NewGeminiProvider 创建 Gemini Provider
func NewGeminiProvider(cfg providers.Config) *GeminiProvider {
	cfg = cfg.WithDefaults(DefaultModel)
	return &GeminiProvider{
		cfg:     cfg,
		retryer: providers.NewRetryer(cfg.MaxRetries),
	}
}

// WithModel returns a new provider that defaults to model. The returned
// provider builds its own client.
func (p *GeminiProvider) WithModel(model string) *GeminiProvider {
	cfg := p.cfg
	cfg.Model = model
	return NewGeminiProvider(cfg)
}

func (p *GeminiProvider) Name() string { return ProviderName }

func (p *GeminiProvider) Model() string { return p.cfg.Model }

func (p *GeminiProvider) Chat(ctx context.Context, req *types.AgentRequest) (*types.AgentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if p.cfg.APIKey == "" {
		return nil, providers.MissingAPIKey(ProviderName)
	}

	client, err := p.getClient(ctx)
	if err != nil {
		return nil, err
	}

	model := providers.ResolveModel(req, p.cfg.Model)
	config := p.buildConfig(req)

	start := time.Now()
	resp, err := retry.Do(ctx, p.retryer, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		out, err := client.Models.GenerateContent(ctx, model, genai.Text(req.Task), config)
		if err != nil {
			return nil, providers.ClassifyError(ProviderName, err, apiStatus)
		}
		return out, nil
	})
	elapsed := providers.ElapsedMS(start)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, types.NewParseError("response contains no candidates").WithProvider(ProviderName)
	}

	thoughts := []types.Thought{
		types.NewThought(types.ThoughtTypeThought, "Planning answer for: "+req.Task),
	}
	return types.NewAgentResponse(resp.Text(), thoughts, elapsed), nil
}

func (p *GeminiProvider) getClient(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     p.cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: providers.NewHTTPClient(p.cfg.Timeout),
	}
	if base := providers.SDKBaseURL(p.cfg.BaseURL); base != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, types.NewAPIError("create gemini client: " + err.Error()).
			WithProvider(ProviderName).
			WithCause(err)
	}
	p.client = client
	return client, nil
}

func (p *GeminiProvider) buildConfig(req *types.AgentRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(p.cfg.MaxTokens),
	}
	if req.Temperature != nil {
		t := float32(*req.Temperature)
		config.Temperature = &t
	}
	if strings.TrimSpace(p.cfg.SystemPrompt) != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: p.cfg.SystemPrompt}},
		}
	}
	return config
}

// apiStatus 兼容 genai 以值或指针返回的 APIError
func apiStatus(err error) (int, string, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Message, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, apiErrPtr.Message, true
	}
	return 0, "", false
}
