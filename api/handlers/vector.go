package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/agentcore/rag"
)

// Search limit bounds for GET /api/vector.
const (
	DefaultSearchLimit = 5
	MaxSearchLimit     = 100
)

// VectorHandler serves /api/vector and /api/vector/search.
type VectorHandler struct {
	store  rag.VectorStore
	logger *zap.Logger
}

// AddDocumentRequest POST /api/vector 请求体
type AddDocumentRequest struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// SearchResponse GET /api/vector 响应体
type SearchResponse struct {
	Results []rag.SearchResult `json:"results"`
}

// NewVectorHandler creates a vector store handler
func NewVectorHandler(store rag.VectorStore, logger *zap.Logger) *VectorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VectorHandler{
		store:  store,
		logger: logger.With(zap.String("component", "vector_handler")),
	}
}

// HandleAdd appends one document. Blank content is rejected.
func (h *VectorHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	var req AddDocumentRequest
	if err := DecodeJSONBody(w, r, &req, logger); err != nil {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		WriteErrorMessage(w, http.StatusBadRequest, "content is required", logger)
		return
	}

	if err := h.store.Add(r.Context(), req.Content, req.Metadata); err != nil {
		WriteError(w, err, logger)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// HandleSearch returns the documents most similar to ?q=, at most ?limit=.
func (h *VectorHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	logger := requestLogger(h.logger, r)

	query := r.URL.Query()
	limit, ok := parseLimit(query.Get("limit"))
	if !ok {
		WriteErrorMessage(w, http.StatusBadRequest, "limit must be a non-negative integer", logger)
		return
	}

	results, err := h.store.Search(r.Context(), query.Get("q"), limit)
	if err != nil {
		WriteError(w, err, logger)
		return
	}
	if results == nil {
		results = []rag.SearchResult{}
	}

	WriteJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// parseLimit 解析 limit 参数：缺省为 5，上限 100，负数或非整数无效
func parseLimit(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSearchLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return min(n, MaxSearchLimit), true
}
