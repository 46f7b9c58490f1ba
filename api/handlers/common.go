package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/BaSui01/agentcore/internal/ctxkeys"
	"github.com/BaSui01/agentcore/types"
)

// MaxBodyBytes 请求体上限（1 MiB）
const MaxBodyBytes = 1 << 20

// KindInvalidRequest 边界层校验失败时使用的错误类别，不属于核心错误体系。
const KindInvalidRequest = "invalid_request"

// kindInternal 非核心错误（例如自定义存储实现返回的普通 error）
const kindInternal = "internal_error"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// =============================================================================
// 📦 错误响应结构
// =============================================================================

// ErrorResponse 统一错误响应：{"error":{"kind":"...","message":"..."}}
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// =============================================================================
// 🎯 响应辅助函数
// =============================================================================

// WriteJSON 写入 JSON 响应
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)

	// 头已写出，编码失败时无法再改状态码
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError 将核心错误映射为 HTTP 状态码并写出错误响应。
// 4xx 记 Warn，5xx 记 Error。
func WriteError(w http.ResponseWriter, err error, logger *zap.Logger) {
	status := StatusFor(err)
	kind := kindInternal
	message := err.Error()
	if e, ok := types.As(err); ok {
		kind = string(e.Kind)
		message = e.Message
	}

	logError(logger, status, kind, err)
	WriteJSON(w, status, ErrorResponse{Error: ErrorInfo{Kind: kind, Message: message}})
}

// WriteErrorMessage 写入请求校验类错误
func WriteErrorMessage(w http.ResponseWriter, status int, message string, logger *zap.Logger) {
	logError(logger, status, KindInvalidRequest, errors.New(message))
	WriteJSON(w, status, ErrorResponse{Error: ErrorInfo{Kind: KindInvalidRequest, Message: message}})
}

// StatusFor 核心错误类别 → HTTP 状态码
func StatusFor(err error) int {
	kind, ok := types.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case types.KindNetwork:
		return http.StatusServiceUnavailable
	case types.KindAPI, types.KindParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func logError(logger *zap.Logger, status int, kind string, err error) {
	if logger == nil {
		return
	}
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("kind", kind),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", fields...)
		return
	}
	logger.Warn("request rejected", fields...)
}

// requestLogger 附带 request_id 的日志器
func requestLogger(logger *zap.Logger, r *http.Request) *zap.Logger {
	if id, ok := ctxkeys.RequestID(r.Context()); ok {
		return logger.With(zap.String("request_id", id))
	}
	return logger
}

// =============================================================================
// 🛡️ 请求解码
// =============================================================================

// DecodeJSONBody 解码 JSON 请求体（1 MiB 上限，拒绝未知字段）。
// 失败时已写出 400 响应，调用方只需返回。
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst any, logger *zap.Logger) error {
	if r.Body == nil || r.Body == http.NoBody {
		err := errors.New("request body is empty")
		WriteErrorMessage(w, http.StatusBadRequest, err.Error(), logger)
		return err
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		msg := "failed to read request body"
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			msg = "request body too large"
		}
		WriteErrorMessage(w, http.StatusBadRequest, msg, logger)
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		err := errors.New("request body is empty")
		WriteErrorMessage(w, http.StatusBadRequest, err.Error(), logger)
		return err
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		WriteErrorMessage(w, http.StatusBadRequest, "invalid JSON body: "+err.Error(), logger)
		return err
	}
	return nil
}

// =============================================================================
// 📊 响应包装器（用于捕获状态码）
// =============================================================================

// ResponseWriter 包装 http.ResponseWriter 以捕获状态码
type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
	Written    bool
}

// NewResponseWriter 创建新的 ResponseWriter
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		StatusCode:     http.StatusOK,
	}
}

// WriteHeader 重写 WriteHeader 以捕获状态码
func (rw *ResponseWriter) WriteHeader(code int) {
	if !rw.Written {
		rw.StatusCode = code
		rw.Written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

// Write 重写 Write 以标记已写入
func (rw *ResponseWriter) Write(b []byte) (int, error) {
	if !rw.Written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}
