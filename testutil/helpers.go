package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/BaSui01/agentcore/types"
)

const defaultTestTimeout = 30 * time.Second

// TestContext returns a context bounded by defaultTestTimeout and cancelled
// on test cleanup.
func TestContext(t *testing.T) context.Context {
	return TestContextWithTimeout(t, defaultTestTimeout)
}

// TestContextWithTimeout 同 TestContext，超时可自定义
func TestContextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}

// IntegrationEnv must be "1" for tests that call real LLM backends.
const IntegrationEnv = "AGENTCORE_INTEGRATION"

// RequireIntegration skips t unless integration tests are enabled and
// keyEnv holds a credential, which it returns.
func RequireIntegration(t *testing.T, keyEnv string) string {
	t.Helper()
	if os.Getenv(IntegrationEnv) != "1" {
		t.Skipf("%s not set to 1, skipping integration test", IntegrationEnv)
	}
	key := os.Getenv(keyEnv)
	if key == "" {
		t.Skipf("%s not set, skipping integration test", keyEnv)
	}
	return key
}

// IntegrationModel returns the model named by env, or fallback.
func IntegrationModel(env, fallback string) string {
	if m := strings.TrimSpace(os.Getenv(env)); m != "" {
		return m
	}
	return fallback
}

// AssertThoughtTypes 断言轨迹的步骤类型序列，顺序敏感
func AssertThoughtTypes(t *testing.T, resp *types.AgentResponse, want ...string) {
	t.Helper()
	if resp == nil {
		t.Fatalf("response is nil")
	}
	got := make([]string, 0, len(resp.Thoughts))
	for _, th := range resp.Thoughts {
		got = append(got, th.ThoughtType)
	}
	if !slices.Equal(got, want) {
		t.Errorf("thought types = %v, want %v", got, want)
	}
}

// AssertErrorKind fails the test unless err is a *types.Error of kind.
func AssertErrorKind(t *testing.T, err error, kind types.ErrorKind) {
	t.Helper()
	switch got, ok := types.KindOf(err); {
	case !ok:
		t.Errorf("want %s, got unclassified error %v", kind, err)
	case got != kind:
		t.Errorf("want %s, got %s (%v)", kind, got, err)
	}
}

// AssertEventually polls condition until it holds or timeout elapses and
// reports whether it held.
func AssertEventually(t *testing.T, condition func() bool, timeout time.Duration) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if condition() {
			return true
		}
		if time.Now().After(deadline) {
			t.Errorf("condition not met within %v", timeout)
			return false
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// NewOpenAIEchoServer starts a Chat Completions compatible backend whose
// reply is "OpenAI response for: " followed by the last user message.
// Mount it under "/v1" by pointing the adapter's BaseURL at srv.URL+"/v1".
func NewOpenAIEchoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(serveEcho))
	t.Cleanup(srv.Close)
	return srv
}

type echoRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func (r echoRequest) lastUser() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == "user" {
			return r.Messages[i].Content
		}
	}
	return ""
}

func serveEcho(w http.ResponseWriter, r *http.Request) {
	if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
		http.NotFound(w, r)
		return
	}
	var req echoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reply := map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   req.Model,
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": "OpenAI response for: " + req.lastUser()},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reply)
}
