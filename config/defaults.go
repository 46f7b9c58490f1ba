package config

import (
	"time"

	"github.com/BaSui01/agentcore/llm/providers"
	"github.com/BaSui01/agentcore/rag"
)

// DefaultConfig returns the configuration used when no file, .env or
// environment override is present.
func DefaultConfig() *Config {
	return &Config{
		Server:    DefaultServerConfig(),
		Agent:     DefaultAgentConfig(),
		LLM:       DefaultLLMConfig(),
		Store:     DefaultStoreConfig(),
		Log:       DefaultLogConfig(),
		Telemetry: DefaultTelemetryConfig(),
	}
}

// DefaultServerConfig 限流默认开启：每个客户端 IP 100 rps，突发 200
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		HTTPPort:           8080,
		MetricsPort:        9091,
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       60 * time.Second,
		IdleTimeout:        120 * time.Second,
		ShutdownTimeout:    15 * time.Second,
		RateLimitRPS:       100,
		RateLimitBurst:     200,
		CORSAllowedOrigins: []string{"*"},
	}
}

// DefaultAgentConfig 返回默认 Agent 配置，检索默认关闭
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		TopK:        3,
		TokenBudget: 512,
	}
}

// DefaultLLMConfig mirrors the adapter-level defaults in llm/providers.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		DefaultProvider: "openai",
		Timeout:         providers.DefaultTimeout,
		MaxRetries:      providers.DefaultMaxRetries,
		MaxTokens:       providers.DefaultMaxTokens,
	}
}

func DefaultStoreConfig() StoreConfig {
	return StoreConfig{Dimensions: rag.DefaultDimensions}
}

func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:        "info",
		Format:       "json",
		OutputPaths:  []string{"stdout"},
		EnableCaller: true,
	}
}

// DefaultTelemetryConfig 默认关闭；开启后按 10% 采样导出到本地 collector
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "agentcore",
		SampleRate:   0.1,
	}
}
