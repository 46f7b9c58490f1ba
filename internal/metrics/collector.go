package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// =============================================================================
// 📊 指标收集器
// =============================================================================

// Collector 指标收集器
type Collector struct {
	// HTTP 指标
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpResponseSize    *prometheus.HistogramVec

	// LLM 指标
	llmRequestsTotal   *prometheus.CounterVec
	llmRequestDuration *prometheus.HistogramVec
	llmThoughts        *prometheus.HistogramVec

	// Agent 指标
	agentExecutionsTotal   *prometheus.CounterVec
	agentExecutionDuration *prometheus.HistogramVec

	// 向量存储指标
	vectorOpsTotal   *prometheus.CounterVec
	vectorOpDuration *prometheus.HistogramVec
	vectorDocuments  prometheus.Gauge

	logger *zap.Logger
}

// 直方图桶
var (
	llmBuckets     = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60}
	agentBuckets   = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}
	vectorBuckets  = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5}
	thoughtBuckets = []float64{0, 1, 2, 3, 5, 8}
	sizeBuckets    = prometheus.ExponentialBuckets(100, 10, 8)
)

// NewCollector 创建指标收集器，指标注册到 Prometheus 默认 Registry。
// 同一进程内 namespace 不可重复，否则注册时 panic。
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := vecFactory{factory: promauto.With(prometheus.DefaultRegisterer), namespace: namespace}

	c := &Collector{
		httpRequestsTotal:   f.counter("http_requests_total", "Total number of HTTP requests", "method", "path", "status"),
		httpRequestDuration: f.histogram("http_request_duration_seconds", "HTTP request duration in seconds", prometheus.DefBuckets, "method", "path"),
		httpResponseSize:    f.histogram("http_response_size_bytes", "HTTP response size in bytes", sizeBuckets, "method", "path"),

		llmRequestsTotal:   f.counter("llm_requests_total", "Total number of LLM provider calls", "provider", "model", "status"),
		llmRequestDuration: f.histogram("llm_request_duration_seconds", "LLM provider call duration in seconds", llmBuckets, "provider", "model"),
		llmThoughts:        f.histogram("llm_thoughts_per_response", "Number of trace steps in successful LLM responses", thoughtBuckets, "provider"),

		agentExecutionsTotal:   f.counter("agent_executions_total", "Total number of agent executions", "status"),
		agentExecutionDuration: f.histogram("agent_execution_duration_seconds", "Agent execution duration in seconds", agentBuckets, "status"),

		vectorOpsTotal:   f.counter("vector_store_operations_total", "Total number of vector store operations", "operation", "status"),
		vectorOpDuration: f.histogram("vector_store_operation_duration_seconds", "Vector store operation duration in seconds", vectorBuckets, "operation"),
		vectorDocuments: f.factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vector_store_documents",
			Help:      "Number of documents added to the vector store",
		}),

		logger: logger.With(zap.String("component", "metrics")),
	}

	c.logger.Info("metrics collector initialized", zap.String("namespace", namespace))
	return c
}

// vecFactory 为同一 namespace 批量创建向量指标
type vecFactory struct {
	factory   promauto.Factory
	namespace string
}

func (f vecFactory) counter(name, help string, labels ...string) *prometheus.CounterVec {
	return f.factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: f.namespace,
		Name:      name,
		Help:      help,
	}, labels)
}

func (f vecFactory) histogram(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return f.factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: f.namespace,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}, labels)
}

// =============================================================================
// 🎯 HTTP 指标记录
// =============================================================================

// RecordHTTPRequest 记录 HTTP 请求
func (c *Collector) RecordHTTPRequest(method, path string, status int, duration time.Duration, responseSize int64) {
	c.httpRequestsTotal.WithLabelValues(method, path, statusClass(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	c.httpResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}

// =============================================================================
// 🤖 LLM 指标记录
// =============================================================================

// RecordLLMRequest 记录 LLM 请求。status 为 "success" 或错误类别。
func (c *Collector) RecordLLMRequest(provider, model, status string, duration time.Duration, thoughts int) {
	c.llmRequestsTotal.WithLabelValues(provider, model, status).Inc()
	c.llmRequestDuration.WithLabelValues(provider, model).Observe(duration.Seconds())
	if status == StatusSuccess {
		c.llmThoughts.WithLabelValues(provider).Observe(float64(thoughts))
	}
}

// =============================================================================
// 🎭 Agent 指标记录
// =============================================================================

// RecordAgentExecution 记录 Agent 执行
func (c *Collector) RecordAgentExecution(status string, duration time.Duration) {
	c.agentExecutionsTotal.WithLabelValues(status).Inc()
	c.agentExecutionDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// =============================================================================
// 🔍 向量存储指标记录
// =============================================================================

// RecordVectorOp 记录向量存储操作，成功的 add 同时累加文档数
func (c *Collector) RecordVectorOp(operation, status string, duration time.Duration) {
	c.vectorOpsTotal.WithLabelValues(operation, status).Inc()
	c.vectorOpDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if operation == OpAdd && status == StatusSuccess {
		c.vectorDocuments.Inc()
	}
}

// =============================================================================
// 🔧 辅助函数
// =============================================================================

// statusClass 将 HTTP 状态码归类为 2xx/3xx/4xx/5xx
func statusClass(code int) string {
	switch {
	case code >= 100 && code < 600:
		return strconv.Itoa(code/100) + "xx"
	default:
		return "unknown"
	}
}
