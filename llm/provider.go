package llm

import (
	"context"

	"github.com/BaSui01/agentcore/types"
)

// Provider turns an AgentRequest into an AgentResponse by calling an LLM
// backend.
//
// Implementations must be safe for concurrent use. Chat measures its own
// latency into AgentResponse.DurationMS and fails only with a *types.Error
// of kind api_error, network_error or parse_error.
type Provider interface {
	Chat(ctx context.Context, req *types.AgentRequest) (*types.AgentResponse, error)

	// Name returns the backend identity, e.g. "openai".
	Name() string
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc struct {
	ProviderName string
	Fn           func(ctx context.Context, req *types.AgentRequest) (*types.AgentResponse, error)
}

// Chat calls f.Fn.
func (f ProviderFunc) Chat(ctx context.Context, req *types.AgentRequest) (*types.AgentResponse, error) {
	return f.Fn(ctx, req)
}

// Name returns f.ProviderName.
func (f ProviderFunc) Name() string { return f.ProviderName }

var _ Provider = ProviderFunc{}
