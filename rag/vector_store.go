package rag

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// VectorStore 检索存储的能力契约。实现必须可被并发调用。
type VectorStore interface {
	// Add 追加一篇文档
	Add(ctx context.Context, text string, metadata map[string]any) error

	// Search 返回与 query 最相似的至多 limit 条结果，按得分降序
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// SearchResult 检索结果
type SearchResult struct {
	Text     string         `json:"text"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Document 存储中的文档
type Document struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	AddedAt   time.Time      `json:"added_at"`
	embedding []float64
}

// ====== 内存向量存储 ======

// InMemoryVectorStore 内存向量存储，只追加不删除。
// Add 持写锁，Search 持读锁，因此每次检索看到一致的快照。
type InMemoryVectorStore struct {
	mu        sync.RWMutex
	documents []Document
	embedder  Embedder
	now       func() time.Time
}

var _ VectorStore = (*InMemoryVectorStore)(nil)

// StoreOption 配置 InMemoryVectorStore
type StoreOption func(*InMemoryVectorStore)

// WithEmbedder 替换默认的 HashingEmbedder
func WithEmbedder(e Embedder) StoreOption {
	return func(s *InMemoryVectorStore) {
		if e != nil {
			s.embedder = e
		}
	}
}

// WithDimensions 设置默认 HashingEmbedder 的维度
func WithDimensions(dims int) StoreOption {
	return func(s *InMemoryVectorStore) {
		s.embedder = NewHashingEmbedder(dims)
	}
}

// NewInMemoryVectorStore 创建内存向量存储
func NewInMemoryVectorStore(opts ...StoreOption) *InMemoryVectorStore {
	s := &InMemoryVectorStore{
		documents: make([]Document, 0),
		embedder:  NewHashingEmbedder(DefaultDimensions),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add 追加文档。嵌入在锁外计算，metadata 被复制。
func (s *InMemoryVectorStore) Add(ctx context.Context, text string, metadata map[string]any) error {
	doc := Document{
		ID:        uuid.NewString(),
		Text:      text,
		Metadata:  maps.Clone(metadata),
		AddedAt:   s.now(),
		embedding: s.embedder.Embed(text),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, doc)
	return nil
}

// Search 检索相似文档。limit <= 0 时返回空切片。
func (s *InMemoryVectorStore) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		return []SearchResult{}, nil
	}
	queryVec := s.embedder.Embed(query)

	s.mu.RLock()
	results := make([]SearchResult, 0, len(s.documents))
	for _, doc := range s.documents {
		results = append(results, SearchResult{
			Text:     doc.Text,
			Score:    CosineSimilarity(queryVec, doc.embedding),
			Metadata: maps.Clone(doc.Metadata),
		})
	}
	s.mu.RUnlock()

	// 稳定排序：同分时保持插入顺序
	slices.SortStableFunc(results, func(a, b SearchResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if limit < len(results) {
		results = results[:limit]
	}
	return results, nil
}

// Count 返回文档数量
func (s *InMemoryVectorStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// Documents 返回文档快照（不含嵌入向量）
func (s *InMemoryVectorStore) Documents() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, len(s.documents))
	for i, d := range s.documents {
		d.Metadata = maps.Clone(d.Metadata)
		d.embedding = nil
		out[i] = d
	}
	return out
}
