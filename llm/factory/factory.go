// Package factory creates LLM Provider instances by name. It imports every
// adapter sub-package so callers (config-driven startup, quick) do not
// have to.
package factory

import (
	"fmt"
	"strings"

	"github.com/BaSui01/agentcore/llm"
	"github.com/BaSui01/agentcore/llm/providers"
	claude "github.com/BaSui01/agentcore/llm/providers/anthropic"
	"github.com/BaSui01/agentcore/llm/providers/gemini"
	"github.com/BaSui01/agentcore/llm/providers/ollama"
	"github.com/BaSui01/agentcore/llm/providers/openai"
	"github.com/BaSui01/agentcore/llm/providers/openaicompat"
)

// NewProviderFromConfig maps name to the matching adapter constructor.
// Names are case-insensitive. An unknown name is a configuration error.
//
// Supported names: openai, anthropic, claude, gemini, google, ollama,
// openaicompat, openrouter, deepseek.
func NewProviderFromConfig(name string, cfg providers.Config) (llm.Provider, error) {
	switch normalize(name) {
	case "openai":
		return openai.NewOpenAIProvider(cfg), nil

	case "anthropic", "claude":
		return claude.NewClaudeProvider(cfg), nil

	case "gemini", "google":
		return gemini.NewGeminiProvider(cfg), nil

	case "ollama":
		p, err := ollama.NewOllamaProvider(cfg)
		if err != nil {
			return nil, fmt.Errorf("create ollama provider: %w", err)
		}
		return p, nil

	case "openaicompat", "openrouter", "deepseek":
		return openaicompat.New(normalize(name), cfg), nil

	default:
		return nil, fmt.Errorf("unknown provider %q: supported providers are %s",
			name, strings.Join(SupportedProviders(), ", "))
	}
}

// SupportedProviders returns the list of recognized provider names.
func SupportedProviders() []string {
	return []string{
		"openai", "anthropic", "claude", "gemini", "google",
		"ollama", "openaicompat", "openrouter", "deepseek",
	}
}

// APIKeyEnv returns the conventional environment variable holding the
// credential for name. Ollama needs none and yields "".
func APIKeyEnv(name string) string {
	switch normalize(name) {
	case "openai", "openaicompat":
		return "OPENAI_API_KEY"
	case "anthropic", "claude":
		return "ANTHROPIC_API_KEY"
	case "gemini", "google":
		return "GEMINI_API_KEY"
	case "openrouter":
		return "OPENROUTER_API_KEY"
	case "deepseek":
		return "DEEPSEEK_API_KEY"
	default:
		return ""
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
