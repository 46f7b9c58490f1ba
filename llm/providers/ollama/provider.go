package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/BaSui01/agentcore/llm"
	"github.com/BaSui01/agentcore/llm/providers"
	"github.com/BaSui01/agentcore/llm/retry"
	"github.com/BaSui01/agentcore/types"
)

const (
	ProviderName   = "ollama"
	DefaultModel   = "llama3"
	DefaultBaseURL = "http://localhost:11434"
)

// OllamaProvider 通过 ollama/api 调用本地 /api/chat。本地服务无需 API Key。
type OllamaProvider struct {
	cfg     providers.Config
	client  *api.Client
	retryer *retry.Retryer
}

var _ llm.Provider = (*OllamaProvider)(nil)

// NewOllamaProvider 创建 Ollama Provider。BaseURL 无法解析时返回 parse_error。
func NewOllamaProvider(cfg providers.Config) (*OllamaProvider, error) {
	cfg = cfg.WithDefaults(DefaultModel)
	if providers.TrimBaseURL(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	base, err := url.Parse(providers.TrimBaseURL(cfg.BaseURL))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, types.NewParseError("invalid ollama base URL: " + cfg.BaseURL).WithProvider(ProviderName)
	}

	return &OllamaProvider{
		cfg:     cfg,
		client:  api.NewClient(base, providers.NewHTTPClient(cfg.Timeout)),
		retryer: providers.NewRetryer(cfg.MaxRetries),
	}, nil
}

// WithModel returns a copy of the provider that defaults to model.
func (p *OllamaProvider) WithModel(model string) *OllamaProvider {
	cp := *p
	cp.cfg.Model = model
	return &cp
}

func (p *OllamaProvider) Name() string { return ProviderName }

func (p *OllamaProvider) Model() string { return p.cfg.Model }

func (p *OllamaProvider) Chat(ctx context.Context, req *types.AgentRequest) (*types.AgentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	model := providers.ResolveModel(req, p.cfg.Model)
	chatReq := p.buildRequest(req, model)

	start := time.Now()
	content, err := retry.Do(ctx, p.retryer, func(ctx context.Context) (string, error) {
		var sb strings.Builder
		received := false
		err := p.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
			sb.WriteString(resp.Message.Content)
			received = true
			return nil
		})
		if err != nil {
			return "", classify(err)
		}
		if !received {
			return "", types.NewParseError("empty response from ollama").WithProvider(ProviderName)
		}
		return sb.String(), nil
	})
	elapsed := providers.ElapsedMS(start)
	if err != nil {
		return nil, err
	}

	thoughts := []types.Thought{
		types.NewThought(types.ThoughtTypeThought, "Analyzing: "+req.Task),
		types.NewThought(types.ThoughtTypeAction, "Run local model "+model),
		types.NewThought(types.ThoughtTypeObservation, "Completed: "+req.Task),
	}
	return types.NewAgentResponse(content, thoughts, elapsed), nil
}

func (p *OllamaProvider) buildRequest(req *types.AgentRequest, model string) *api.ChatRequest {
	stream := false
	messages := make([]api.Message, 0, 2)
	if p.cfg.SystemPrompt != "" {
		messages = append(messages, api.Message{Role: "system", Content: p.cfg.SystemPrompt})
	}
	messages = append(messages, api.Message{Role: "user", Content: req.Task})

	options := map[string]any{"num_predict": p.cfg.MaxTokens}
	if req.Temperature != nil {
		options["temperature"] = *req.Temperature
	}
	return &api.ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   &stream,
		Options:  options,
	}
}

// classify 归类 ollama 客户端错误。后端 {"error": "..."} 载荷在 2xx 时会以
// 普通 error 返回，这类错误视为 api_error。
func classify(err error) error {
	if e, ok := types.As(err); ok {
		return e
	}
	if code, msg, ok := apiStatus(err); ok {
		return providers.ClassifyError(ProviderName, err, func(error) (int, string, bool) { return code, msg, true })
	}
	if providers.IsTransportError(err) {
		return providers.ClassifyError(ProviderName, err, nil)
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return providers.ClassifyError(ProviderName, err, nil)
	}
	return types.NewAPIError(err.Error()).WithProvider(ProviderName).WithCause(err)
}

func apiStatus(err error) (int, string, bool) {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		msg := statusErr.ErrorMessage
		if msg == "" {
			msg = statusErr.Status
		}
		return statusErr.StatusCode, msg, true
	}
	return 0, "", false
}
