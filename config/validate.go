package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BaSui01/agentcore/llm/factory"
)

// APIKeyEnv 通用 API Key 环境变量，优先级高于各 Provider 的约定变量
const APIKeyEnv = DefaultEnvPrefix + "_LLM_API_KEY"

// Validate 验证配置
func (c *Config) Validate() error {
	var errs []string

	if !validPort(c.Server.HTTPPort) {
		errs = append(errs, "invalid HTTP port")
	}
	if !validPort(c.Server.MetricsPort) {
		errs = append(errs, "invalid metrics port")
	}
	if c.Server.HTTPPort == c.Server.MetricsPort {
		errs = append(errs, "HTTP and metrics ports must differ")
	}
	if c.Server.RateLimitRPS < 0 || c.Server.RateLimitBurst < 0 {
		errs = append(errs, "rate limit must not be negative")
	}

	if !slices.Contains(factory.SupportedProviders(), strings.ToLower(strings.TrimSpace(c.LLM.DefaultProvider))) {
		errs = append(errs, fmt.Sprintf("unknown LLM provider %q", c.LLM.DefaultProvider))
	}
	if c.LLM.Timeout <= 0 {
		errs = append(errs, "llm timeout must be positive")
	}
	if c.LLM.MaxRetries < 0 {
		errs = append(errs, "llm max_retries must not be negative")
	}

	if c.Agent.Retrieval && c.Agent.TopK < 1 {
		errs = append(errs, "agent top_k must be at least 1 when retrieval is enabled")
	}
	if c.Agent.Retrieval && c.Agent.TokenBudget < 1 {
		errs = append(errs, "agent token_budget must be positive when retrieval is enabled")
	}

	if c.Store.Dimensions <= 0 {
		errs = append(errs, "store dimensions must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validPort(p int) bool {
	return p > 0 && p <= 65535
}

// ResolveAPIKey 解析 API Key：AGENTCORE_LLM_API_KEY → 配置值 → Provider 约定变量 → 空。
// 缺失不是错误，进程照常启动，由 Provider 在调用时报告。
func ResolveAPIKey(cfg *Config) string {
	if v := strings.TrimSpace(os.Getenv(APIKeyEnv)); v != "" {
		return v
	}
	if cfg != nil && cfg.LLM.APIKey != "" {
		return cfg.LLM.APIKey
	}
	provider := ""
	if cfg != nil {
		provider = cfg.LLM.DefaultProvider
	}
	if env := factory.APIKeyEnv(provider); env != "" {
		return strings.TrimSpace(os.Getenv(env))
	}
	return ""
}
