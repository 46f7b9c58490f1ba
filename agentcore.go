// Package agentcore is the top-level entry point for creating ReAct agents.
//
// Usage:
//
//	import "github.com/BaSui01/agentcore"
//
//	a, err := agentcore.New(agentcore.WithOpenAI("gpt-4"))
//	a, err := agentcore.New(agentcore.WithOllama("llama3"), agentcore.WithRetrieval(3, 512))
//	resp, err := a.Execute(ctx, "What is the capital of France?")
//
// This is a thin wrapper around [quick.New].
package agentcore

import (
	"github.com/BaSui01/agentcore/agent"
	"github.com/BaSui01/agentcore/quick"
)

// Option configures the agent created by [New].
type Option = quick.Option

// New creates a [agent.ReActAgent]. A provider must be selected with
// one of the With* provider options or [WithProvider].
func New(opts ...Option) (*agent.ReActAgent, error) {
	return quick.New(opts...)
}

var (
	WithProvider     = quick.WithProvider
	WithOpenAI       = quick.WithOpenAI
	WithAnthropic    = quick.WithAnthropic
	WithGemini       = quick.WithGemini
	WithOllama       = quick.WithOllama
	WithDeepSeek     = quick.WithDeepSeek
	WithModel        = quick.WithModel
	WithAPIKey       = quick.WithAPIKey
	WithBaseURL      = quick.WithBaseURL
	WithSystemPrompt = quick.WithSystemPrompt
	WithStore        = quick.WithStore
	WithRetrieval    = quick.WithRetrieval
	WithLogger       = quick.WithLogger
)
