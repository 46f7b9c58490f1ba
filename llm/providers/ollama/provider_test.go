package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/agentcore/llm/providers"
	"github.com/BaSui01/agentcore/types"
)

type chatBody struct {
	Model    string         `json:"model"`
	Stream   *bool          `json:"stream"`
	Options  map[string]any `json:"options"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func echoHandler(last *atomic.Value) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			http.NotFound(w, r)
			return
		}
		var body chatBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if last != nil {
			last.Store(body)
		}
		user := body.Messages[len(body.Messages)-1].Content
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":      body.Model,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
			"message":    map[string]any{"role": "assistant", "content": "Ollama response for: " + user},
			"done":       true,
		})
	}
}

func newTestProvider(t *testing.T, h http.Handler, mutate ...func(*providers.Config)) *OllamaProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := providers.Config{BaseURL: srv.URL, Timeout: 5 * time.Second}
	for _, m := range mutate {
		m(&cfg)
	}
	p, err := NewOllamaProvider(cfg)
	require.NoError(t, err)
	return p
}

func TestOllamaProvider_Defaults(t *testing.T) {
	p, err := NewOllamaProvider(providers.Config{})
	require.NoError(t, err)
	assert.Equal(t, "ollama", p.Name())
	assert.Equal(t, "llama3", p.Model())
	assert.Equal(t, DefaultBaseURL, p.cfg.BaseURL)
}

func TestOllamaProvider_InvalidBaseURL(t *testing.T) {
	_, err := NewOllamaProvider(providers.Config{BaseURL: "not a url"})
	assert.True(t, types.IsParseError(err))
}

func TestOllamaProvider_ThreeStepTrace(t *testing.T) {
	var last atomic.Value
	p := newTestProvider(t, echoHandler(&last))

	resp, err := p.Chat(context.Background(), types.NewAgentRequest("Hello"))
	require.NoError(t, err)

	assert.Equal(t, "Ollama response for: Hello", resp.Result)
	require.Len(t, resp.Thoughts, 3)
	assert.Equal(t, types.NewThought(types.ThoughtTypeThought, "Analyzing: Hello"), resp.Thoughts[0])
	assert.Equal(t, types.NewThought(types.ThoughtTypeAction, "Run local model llama3"), resp.Thoughts[1])
	assert.Equal(t, types.NewThought(types.ThoughtTypeObservation, "Completed: Hello"), resp.Thoughts[2])

	body := last.Load().(chatBody)
	require.NotNil(t, body.Stream)
	assert.False(t, *body.Stream)
	assert.NotContains(t, body.Options, "temperature")
}

func TestOllamaProvider_OverridesAndSystemPrompt(t *testing.T) {
	var last atomic.Value
	p := newTestProvider(t, echoHandler(&last), func(c *providers.Config) { c.SystemPrompt = "Be brief." })

	resp, err := p.Chat(context.Background(), types.NewAgentRequest("Hi").WithModel("mistral").WithTemperature(0.3))
	require.NoError(t, err)
	assert.Equal(t, "Run local model mistral", resp.Thoughts[1].Content)

	body := last.Load().(chatBody)
	assert.Equal(t, "mistral", body.Model)
	require.Len(t, body.Messages, 2)
	assert.Equal(t, "system", body.Messages[0].Role)
	assert.Equal(t, "Be brief.", body.Messages[0].Content)
	assert.InDelta(t, 0.3, body.Options["temperature"], 1e-9)
}

func TestOllamaProvider_WithModel(t *testing.T) {
	var last atomic.Value
	base := newTestProvider(t, echoHandler(&last))
	phi := base.WithModel("phi3")

	_, err := phi.Chat(context.Background(), types.NewAgentRequest("Hi"))
	require.NoError(t, err)
	assert.Equal(t, "phi3", last.Load().(chatBody).Model)
	assert.Equal(t, DefaultModel, base.Model())
}

func TestOllamaProvider_ModelNotFound(t *testing.T) {
	var calls atomic.Int32
	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'nope' not found"}`))
	}))

	_, err := p.Chat(context.Background(), types.NewAgentRequest("Hello"))
	e, ok := types.As(err)
	require.True(t, ok)
	assert.Equal(t, types.KindAPI, e.Kind)
	assert.Equal(t, http.StatusNotFound, e.HTTPStatus)
	assert.Contains(t, e.Message, "not found")
	assert.Equal(t, int32(1), calls.Load())
}

func TestOllamaProvider_ServerErrorIsRetried(t *testing.T) {
	var calls atomic.Int32
	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"loading model"}`))
	}), func(c *providers.Config) { c.MaxRetries = 1 })

	_, err := p.Chat(context.Background(), types.NewAgentRequest("Hello"))
	assert.True(t, types.IsAPIError(err))
	assert.Equal(t, int32(2), calls.Load())
}

func TestOllamaProvider_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p, err := NewOllamaProvider(providers.Config{BaseURL: url})
	require.NoError(t, err)

	_, err = p.Chat(context.Background(), types.NewAgentRequest("Hello"))
	assert.True(t, types.IsNetworkError(err), "got %v", err)
}

func TestOllamaProvider_BlankTask(t *testing.T) {
	p, err := NewOllamaProvider(providers.Config{})
	require.NoError(t, err)

	_, err = p.Chat(context.Background(), types.NewAgentRequest("  "))
	assert.True(t, types.IsParseError(err))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind types.ErrorKind
	}{
		{"status error", api.StatusError{StatusCode: 500, ErrorMessage: "boom"}, types.KindAPI},
		{"backend payload", errors.New("model requires more system memory"), types.KindAPI},
		{"syntax", fmt.Errorf("unmarshal: %w", &json.SyntaxError{}), types.KindParse},
		{"deadline", context.DeadlineExceeded, types.KindNetwork},
		{"classified", types.NewParseError("kept"), types.KindParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := types.KindOf(classify(tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}
