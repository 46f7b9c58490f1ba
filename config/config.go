package config

import "time"

// Config 是 agentcore 服务的完整配置。
// yaml 标签对应配置文件键，env 标签拼接为 {PREFIX}_{SECTION}_{FIELD}。
type Config struct {
	Server    ServerConfig    `yaml:"server" env:"SERVER"`
	Agent     AgentConfig     `yaml:"agent" env:"AGENT"`
	LLM       LLMConfig       `yaml:"llm" env:"LLM"`
	Store     StoreConfig     `yaml:"store" env:"STORE"`
	Log       LogConfig       `yaml:"log" env:"LOG"`
	Telemetry TelemetryConfig `yaml:"telemetry" env:"TELEMETRY"`
}

// ServerConfig HTTP 服务与指标端口
type ServerConfig struct {
	HTTPPort        int           `yaml:"http_port" env:"HTTP_PORT"`
	MetricsPort     int           `yaml:"metrics_port" env:"METRICS_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`

	// RateLimitRPS 为每个客户端 IP 的速率，<= 0 关闭限流
	RateLimitRPS   float64 `yaml:"rate_limit_rps" env:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `yaml:"rate_limit_burst" env:"RATE_LIMIT_BURST"`

	// CORSAllowedOrigins 环境变量中以逗号分隔
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
}

// AgentConfig 编排器行为
type AgentConfig struct {
	Retrieval    bool   `yaml:"retrieval" env:"RETRIEVAL"`
	TopK         int    `yaml:"top_k" env:"TOP_K"`
	TokenBudget  int    `yaml:"token_budget" env:"TOKEN_BUDGET"`
	SystemPrompt string `yaml:"system_prompt" env:"SYSTEM_PROMPT"`
}

// LLMConfig 选择并配置 Provider。Model 为空时使用适配器默认模型。
type LLMConfig struct {
	DefaultProvider string        `yaml:"default_provider" env:"DEFAULT_PROVIDER"`
	Model           string        `yaml:"model" env:"MODEL"`
	APIKey          string        `yaml:"api_key" env:"API_KEY"`
	BaseURL         string        `yaml:"base_url" env:"BASE_URL"`
	Timeout         time.Duration `yaml:"timeout" env:"TIMEOUT"`
	MaxRetries      int           `yaml:"max_retries" env:"MAX_RETRIES"`
	MaxTokens       int           `yaml:"max_tokens" env:"MAX_TOKENS"`
}

// StoreConfig 内存向量库
type StoreConfig struct {
	Dimensions int `yaml:"dimensions" env:"DIMENSIONS"`
}

// LogConfig zap 日志
type LogConfig struct {
	Level            string   `yaml:"level" env:"LEVEL"`   // debug | info | warn | error
	Format           string   `yaml:"format" env:"FORMAT"` // json | console
	OutputPaths      []string `yaml:"output_paths" env:"OUTPUT_PATHS"`
	EnableCaller     bool     `yaml:"enable_caller" env:"ENABLE_CALLER"`
	EnableStacktrace bool     `yaml:"enable_stacktrace" env:"ENABLE_STACKTRACE"`
}

// TelemetryConfig OTLP 导出
type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled" env:"ENABLED"`
	OTLPEndpoint string  `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
	ServiceName  string  `yaml:"service_name" env:"SERVICE_NAME"`
	SampleRate   float64 `yaml:"sample_rate" env:"SAMPLE_RATE"`
}
