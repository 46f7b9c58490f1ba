package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/agentcore/agent"
	"github.com/BaSui01/agentcore/api/handlers"
	"github.com/BaSui01/agentcore/config"
	"github.com/BaSui01/agentcore/internal/metrics"
	"github.com/BaSui01/agentcore/internal/server"
	"github.com/BaSui01/agentcore/llm"
	"github.com/BaSui01/agentcore/llm/factory"
	"github.com/BaSui01/agentcore/llm/middleware"
	"github.com/BaSui01/agentcore/llm/providers"
	"github.com/BaSui01/agentcore/llm/tokenizer"
	"github.com/BaSui01/agentcore/rag"
)

// =============================================================================
// 🖥️ 服务器装配
// =============================================================================

// Server 持有进程内的全部组件：Provider、Store、编排器与 HTTP 处理器
type Server struct {
	cfg       *config.Config
	logger    *zap.Logger
	tracer    trace.Tracer
	collector *metrics.Collector

	provider llm.Provider
	store    rag.VectorStore
	agent    *agent.ReActAgent
	tok      tokenizer.Tokenizer

	healthHandler *handlers.HealthHandler
	agentHandler  *handlers.AgentHandler
	vectorHandler *handlers.VectorHandler
}

// NewServer 根据配置装配组件。Provider 名称无效时返回错误；
// 缺少 API Key 不阻止启动，调用时返回 api_error。
func NewServer(cfg *config.Config, logger *zap.Logger, tracer trace.Tracer, collector *metrics.Collector) (*Server, error) {
	s := &Server{
		cfg:       cfg,
		logger:    logger,
		tracer:    tracer,
		collector: collector,
	}

	apiKey := config.ResolveAPIKey(cfg)
	base, err := factory.NewProviderFromConfig(cfg.LLM.DefaultProvider, providers.Config{
		APIKey:       apiKey,
		BaseURL:      cfg.LLM.BaseURL,
		Model:        cfg.LLM.Model,
		Timeout:      cfg.LLM.Timeout,
		MaxRetries:   cfg.LLM.MaxRetries,
		MaxTokens:    cfg.LLM.MaxTokens,
		SystemPrompt: cfg.Agent.SystemPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	if apiKey == "" && factory.APIKeyEnv(cfg.LLM.DefaultProvider) != "" {
		logger.Warn("LLM API key not configured, agent requests will fail",
			zap.String("provider", base.Name()),
			zap.String("env", config.APIKeyEnv),
		)
	}

	s.provider = middleware.Chain(base,
		middleware.WithTracing(tracer),
		middleware.WithMetrics(collector),
		middleware.WithLogging(logger),
	)

	s.store = metrics.InstrumentStore(
		rag.NewInMemoryVectorStore(rag.WithDimensions(cfg.Store.Dimensions)),
		collector,
	)

	var opts []agent.Option
	if cfg.Agent.Retrieval {
		s.tok = agent.DefaultTokenizer(base)
		opts = append(opts,
			agent.WithRetrieval(cfg.Agent.TopK, cfg.Agent.TokenBudget),
			agent.WithTokenizer(s.tok),
		)
	}
	s.agent = agent.New(s.provider, s.store, opts...)

	s.healthHandler = handlers.NewHealthHandler(logger)
	s.healthHandler.RegisterCheck(handlers.NewFuncCheck("vector_store", func(ctx context.Context) error {
		_, err := s.store.Search(ctx, "", 1)
		return err
	}))
	s.agentHandler = handlers.NewAgentHandler(metrics.InstrumentExecutor(s.agent, collector), logger)
	s.vectorHandler = handlers.NewVectorHandler(s.store, logger)

	logger.Info("components initialized",
		zap.String("provider", base.Name()),
		zap.Bool("retrieval", cfg.Agent.Retrieval),
	)
	return s, nil
}

// routes 注册 API 路由，方法不匹配时由 ServeMux 返回 405
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler.HandleHealth)
	mux.HandleFunc("GET /healthz", s.healthHandler.HandleHealthz)
	mux.HandleFunc("GET /ready", s.healthHandler.HandleReady)
	mux.HandleFunc("GET /version", s.healthHandler.HandleVersion(Version, BuildTime, GitCommit))

	mux.HandleFunc("POST /api/agent", s.agentHandler.HandleExecute)
	mux.HandleFunc("POST /api/vector", s.vectorHandler.HandleAdd)
	mux.HandleFunc("GET /api/vector", s.vectorHandler.HandleSearch)
	mux.HandleFunc("GET /api/vector/search", s.vectorHandler.HandleSearch)

	return mux
}

// Handler 返回带完整中间件链的 API 处理器
func (s *Server) Handler(ctx context.Context) http.Handler {
	return Chain(s.routes(),
		Recovery(s.logger),
		RequestID(),
		SecurityHeaders(),
		CORS(s.cfg.Server.CORSAllowedOrigins),
		RateLimiter(ctx, s.cfg.Server.RateLimitRPS, s.cfg.Server.RateLimitBurst, s.logger),
		OTelTracing(s.tracer),
		MetricsMiddleware(s.collector),
		RequestLogger(s.logger),
	)
}

// MetricsHandler 返回独立端口上的 Prometheus 抓取端点
func (s *Server) MetricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Run 启动 API 与指标两个服务器，ctx 结束后优雅关闭
func (s *Server) Run(ctx context.Context) error {
	sc := s.cfg.Server

	httpCfg := server.Config{
		Name:            "http",
		Addr:            ":" + strconv.Itoa(sc.HTTPPort),
		ReadTimeout:     sc.ReadTimeout,
		WriteTimeout:    sc.WriteTimeout,
		IdleTimeout:     sc.IdleTimeout,
		MaxHeaderBytes:  1 << 20,
		ShutdownTimeout: sc.ShutdownTimeout,
	}
	metricsCfg := httpCfg
	metricsCfg.Name = "metrics"
	metricsCfg.Addr = ":" + strconv.Itoa(sc.MetricsPort)

	go s.warmTokenizer(ctx)

	return server.Run(ctx,
		server.NewManager(s.Handler(ctx), httpCfg, s.logger),
		server.NewManager(s.MetricsHandler(), metricsCfg, s.logger),
	)
}

// warmTokenizer 在后台预加载分词器数据，首个检索请求不必等待下载
func (s *Server) warmTokenizer(ctx context.Context) {
	if s.tok == nil {
		return
	}
	start := time.Now()
	if err := tokenizer.Warm(ctx, s.tok); err != nil {
		s.logger.Warn("tokenizer warm-up failed", zap.String("tokenizer", s.tok.Name()), zap.Error(err))
		return
	}
	s.logger.Info("tokenizer ready",
		zap.String("tokenizer", s.tok.Name()),
		zap.Duration("duration", time.Since(start)),
	)
}
