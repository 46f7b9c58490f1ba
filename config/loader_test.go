// 配置加载器与默认配置测试。
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv 清理可能影响加载结果的环境变量
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, v) })
		} else {
			t.Cleanup(func() { os.Unsetenv(k) })
		}
		os.Unsetenv(k)
	}
}

// --- 默认配置测试 ---

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 9091, cfg.Server.MetricsPort)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 100.0, cfg.Server.RateLimitRPS)
	assert.Equal(t, 200, cfg.Server.RateLimitBurst)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)

	assert.False(t, cfg.Agent.Retrieval)
	assert.Equal(t, 3, cfg.Agent.TopK)
	assert.Equal(t, 512, cfg.Agent.TokenBudget)

	assert.Equal(t, "openai", cfg.LLM.DefaultProvider)
	assert.Empty(t, cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 2, cfg.LLM.MaxRetries)
	assert.Equal(t, 4096, cfg.LLM.MaxTokens)

	assert.Equal(t, 256, cfg.Store.Dimensions)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)

	assert.NoError(t, cfg.Validate())
}

// --- Loader 测试 ---

func TestLoader_LoadDefaults(t *testing.T) {
	clearEnv(t, LegacyPortEnv, "AGENTCORE_SERVER_HTTP_PORT")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoader_LoadFromYAML(t *testing.T) {
	clearEnv(t, LegacyPortEnv, "AGENTCORE_SERVER_HTTP_PORT")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
server:
  http_port: 9000
  cors_allowed_origins: ["https://app.example.com"]
agent:
  retrieval: true
  top_k: 5
llm:
  default_provider: anthropic
  timeout: 45s
store:
  dimensions: 128
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.True(t, cfg.Agent.Retrieval)
	assert.Equal(t, 5, cfg.Agent.TopK)
	assert.Equal(t, 512, cfg.Agent.TokenBudget, "unset fields keep defaults")
	assert.Equal(t, "anthropic", cfg.LLM.DefaultProvider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 128, cfg.Store.Dimensions)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t, LegacyPortEnv, "AGENTCORE_SERVER_HTTP_PORT")

	cfg, err := NewLoader().WithConfigPath(filepath.Join(t.TempDir(), "absent.yaml")).Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
}

func TestLoader_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	_, err := NewLoader().WithConfigPath(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoader_EnvOverridesYAML(t *testing.T) {
	clearEnv(t, LegacyPortEnv)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  http_port: 9000\n"), 0o644))

	t.Setenv("AGENTCORE_SERVER_HTTP_PORT", "7000")
	t.Setenv("AGENTCORE_LLM_TIMEOUT", "10s")
	t.Setenv("AGENTCORE_AGENT_RETRIEVAL", "true")
	t.Setenv("AGENTCORE_SERVER_RATE_LIMIT_RPS", "2.5")
	t.Setenv("AGENTCORE_SERVER_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.Agent.Retrieval)
	assert.Equal(t, 2.5, cfg.Server.RateLimitRPS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoader_CustomPrefix(t *testing.T) {
	clearEnv(t, LegacyPortEnv)
	t.Setenv("MYAPP_SERVER_HTTP_PORT", "6000")

	cfg, err := NewLoader().WithEnvPrefix("MYAPP").Load()
	require.NoError(t, err)
	assert.Equal(t, 6000, cfg.Server.HTTPPort)
}

func TestLoader_InvalidEnvValue(t *testing.T) {
	t.Setenv("AGENTCORE_LLM_TIMEOUT", "forever")

	_, err := NewLoader().Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AGENTCORE_LLM_TIMEOUT")
}

func TestLoader_InvalidEnvValuesReportedTogether(t *testing.T) {
	t.Setenv("AGENTCORE_LLM_TIMEOUT", "forever")
	t.Setenv("AGENTCORE_SERVER_HTTP_PORT", "eighty")

	_, err := NewLoader().Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AGENTCORE_LLM_TIMEOUT")
	assert.Contains(t, err.Error(), "AGENTCORE_SERVER_HTTP_PORT")
}

func TestLoader_LegacyPort(t *testing.T) {
	t.Setenv("AGENTCORE_SERVER_HTTP_PORT", "7000")
	t.Setenv(LegacyPortEnv, "3000")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.HTTPPort)

	t.Setenv(LegacyPortEnv, "http")
	_, err = NewLoader().Load()
	assert.Error(t, err)
}

func TestLoader_DotEnv(t *testing.T) {
	clearEnv(t, LegacyPortEnv, "AGENTCORE_SERVER_HTTP_PORT", "AGENTCORE_LOG_LEVEL")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path,
		[]byte("AGENTCORE_SERVER_HTTP_PORT=5050\nAGENTCORE_LOG_LEVEL=debug\n"), 0o644))

	// 真实环境变量优先于 .env
	t.Setenv("AGENTCORE_LOG_LEVEL", "warn")

	cfg, err := NewLoader().WithDotEnv(path, filepath.Join(t.TempDir(), "missing.env")).Load()
	require.NoError(t, err)
	assert.Equal(t, 5050, cfg.Server.HTTPPort)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoader_Validators(t *testing.T) {
	clearEnv(t, LegacyPortEnv, "AGENTCORE_SERVER_HTTP_PORT")

	called := false
	cfg, err := NewLoader().WithValidator(func(c *Config) error {
		called = true
		return c.Validate()
	}).Load()
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.True(t, called)

	t.Setenv("AGENTCORE_STORE_DIMENSIONS", "0")
	_, err = NewLoader().WithValidator((*Config).Validate).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}
