package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BaSui01/agentcore/llm/retry"
	"github.com/BaSui01/agentcore/types"
)

// StatusFunc extracts the HTTP status and message from a vendor SDK error.
// ok is false when err is not a backend error payload.
type StatusFunc func(err error) (status int, message string, ok bool)

// MapHTTPError 将上游 HTTP 状态码映射为 api_error，并标记可重试性
func MapHTTPError(status int, msg string, provider string) *types.Error {
	e := types.NewAPIError(msg).WithHTTPStatus(status).WithProvider(provider)
	switch {
	case status == http.StatusTooManyRequests:
		e.Retryable = true
	case status == 529: // overloaded
		e.Retryable = true
	case status >= 500:
		e.Retryable = true
	}
	return e
}

// ClassifyError 将适配器调用中出现的任意错误归入封闭错误体系：
//   - 已是 *types.Error 的原样返回
//   - SDK 的后端错误 → api_error
//   - 超时、连接失败等传输错误 → network_error
//   - 其余（主要是响应体解码失败）→ parse_error
func ClassifyError(provider string, err error, status StatusFunc) error {
	if err == nil {
		return nil
	}
	if e, ok := types.As(err); ok {
		return e
	}
	if status != nil {
		if code, msg, ok := status(err); ok {
			if msg == "" {
				msg = http.StatusText(code)
			}
			return MapHTTPError(code, msg, provider).WithCause(err)
		}
	}
	if IsTransportError(err) {
		return types.NewNetworkError(err).
			WithProvider(provider).
			WithRetryable(!errors.Is(err, context.Canceled))
	}
	return types.NewParseError(fmt.Sprintf("decode %s response: %v", provider, err)).
		WithProvider(provider).
		WithCause(err)
}

// IsTransportError reports whether err came from the transport rather
// than from the backend or the decoder.
func IsTransportError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// MissingAPIKey is returned at call time by adapters that need a credential.
func MissingAPIKey(provider string) *types.Error {
	return types.NewAPIError("missing API key").
		WithProvider(provider).
		WithHTTPStatus(http.StatusUnauthorized)
}

// NewHTTPClient 创建带整体超时的 HTTP 客户端，供各 SDK 复用。
// 超时触发的错误会被 ClassifyError 归为 network_error。
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// NewRetryer builds the adapter's retry policy. SDK-internal retries are
// disabled by every adapter so this is the only retry layer.
func NewRetryer(maxRetries int) *retry.Retryer {
	p := retry.DefaultPolicy()
	p.MaxRetries = maxRetries
	return retry.New(p)
}

// ElapsedMS returns the wall-clock milliseconds since start.
func ElapsedMS(start time.Time) uint64 {
	ms := time.Since(start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return uint64(ms)
}

// ResolveModel 按优先级选择模型：请求覆盖 > 适配器默认
func ResolveModel(req *types.AgentRequest, fallback string) string {
	if req != nil && req.Model != nil && strings.TrimSpace(*req.Model) != "" {
		return *req.Model
	}
	return fallback
}

// TrimBaseURL normalizes a configured base URL.
func TrimBaseURL(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), "/")
}

// SDKBaseURL normalizes u with a trailing slash, the form vendor SDKs
// resolve relative endpoint paths against.
func SDKBaseURL(u string) string {
	u = TrimBaseURL(u)
	if u == "" {
		return ""
	}
	return u + "/"
}
