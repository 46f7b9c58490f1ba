package mocks

import (
	"context"
	"sync"

	"github.com/BaSui01/agentcore/rag"
)

// MockStore 是 rag.VectorStore 的模拟实现
type MockStore struct {
	mu sync.RWMutex

	results []rag.SearchResult
	err     error

	added    []string
	searches []MockSearchCall
}

var _ rag.VectorStore = (*MockStore)(nil)

// MockSearchCall 记录一次检索
type MockSearchCall struct {
	Query string
	Limit int
}

// NewMockStore 创建空结果的 MockStore
func NewMockStore() *MockStore {
	return &MockStore{results: []rag.SearchResult{}}
}

// WithResults 设置固定检索结果
func (m *MockStore) WithResults(results ...rag.SearchResult) *MockStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = results
	return m
}

// WithError 设置 Add 与 Search 返回的错误
func (m *MockStore) WithError(err error) *MockStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

func (m *MockStore) Add(ctx context.Context, text string, metadata map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.added = append(m.added, text)
	return nil
}

// Search 返回固定结果的前 limit 条
func (m *MockStore) Search(ctx context.Context, query string, limit int) ([]rag.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches = append(m.searches, MockSearchCall{Query: query, Limit: limit})
	if m.err != nil {
		return nil, m.err
	}
	if limit <= 0 {
		return []rag.SearchResult{}, nil
	}
	n := min(limit, len(m.results))
	out := make([]rag.SearchResult, n)
	copy(out, m.results[:n])
	return out, nil
}

// Added 返回已添加的文本
func (m *MockStore) Added() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.added...)
}

// Searches 返回检索调用记录
func (m *MockStore) Searches() []MockSearchCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]MockSearchCall(nil), m.searches...)
}
