package metrics

import (
	"context"
	"time"

	"github.com/BaSui01/agentcore/rag"
	"github.com/BaSui01/agentcore/types"
)

// Status labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Vector store operation labels.
const (
	OpAdd    = "add"
	OpSearch = "search"
)

// statusOf 成功为 "success"，核心错误为其类别，其余为 "error"
func statusOf(err error) string {
	if err == nil {
		return StatusSuccess
	}
	if kind, ok := types.KindOf(err); ok {
		return string(kind)
	}
	return StatusError
}

// instrumentedStore 记录每次 Add/Search 的结果与耗时
type instrumentedStore struct {
	next      rag.VectorStore
	collector *Collector
}

// InstrumentStore wraps s so every operation is recorded on c.
func InstrumentStore(s rag.VectorStore, c *Collector) rag.VectorStore {
	return &instrumentedStore{next: s, collector: c}
}

func (s *instrumentedStore) Add(ctx context.Context, text string, metadata map[string]any) error {
	start := time.Now()
	err := s.next.Add(ctx, text, metadata)
	s.collector.RecordVectorOp(OpAdd, statusOf(err), time.Since(start))
	return err
}

func (s *instrumentedStore) Search(ctx context.Context, query string, limit int) ([]rag.SearchResult, error) {
	start := time.Now()
	results, err := s.next.Search(ctx, query, limit)
	s.collector.RecordVectorOp(OpSearch, statusOf(err), time.Since(start))
	return results, err
}

// Executor 与 handlers.Executor 形状一致
type Executor interface {
	Execute(ctx context.Context, task string) (*types.AgentResponse, error)
}

type instrumentedExecutor struct {
	next      Executor
	collector *Collector
}

// InstrumentExecutor wraps e so every execution is recorded on c.
func InstrumentExecutor(e Executor, c *Collector) Executor {
	return &instrumentedExecutor{next: e, collector: c}
}

func (e *instrumentedExecutor) Execute(ctx context.Context, task string) (*types.AgentResponse, error) {
	start := time.Now()
	resp, err := e.next.Execute(ctx, task)
	e.collector.RecordAgentExecution(statusOf(err), time.Since(start))
	return resp, err
}
