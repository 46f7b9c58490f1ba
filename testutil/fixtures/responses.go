// =============================================================================
// 📦 测试数据工厂 - Agent 响应与检索结果
// =============================================================================
// 提供预定义的 AgentResponse / SearchResult 数据，用于测试
// =============================================================================
package fixtures

import (
	"github.com/BaSui01/agentcore/rag"
	"github.com/BaSui01/agentcore/types"
)

// =============================================================================
// 🎯 AgentResponse 工厂
// =============================================================================

// ReActResponse 返回 thought → action → observation 三步轨迹的响应
func ReActResponse(task, result string) *types.AgentResponse {
	return types.NewAgentResponse(result, []types.Thought{
		types.NewThought(types.ThoughtTypeThought, "Analyzing: "+task),
		types.NewThought(types.ThoughtTypeAction, "Generate response"),
		types.NewThought(types.ThoughtTypeObservation, "Completed: "+task),
	}, 20)
}

// =============================================================================
// 🔍 检索结果工厂
// =============================================================================

// SearchResults 按给定文本生成得分递减的检索结果
func SearchResults(texts ...string) []rag.SearchResult {
	out := make([]rag.SearchResult, len(texts))
	for i, text := range texts {
		out[i] = rag.SearchResult{
			Text:     text,
			Score:    1.0 - float64(i)*0.1,
			Metadata: map[string]any{"rank": i},
		}
	}
	return out
}

// Corpus 返回一组主题分明的示例文档
func Corpus() []string {
	return []string{
		"Go channels synchronize goroutines by passing values.",
		"The Eiffel Tower is located in Paris, France.",
		"Photosynthesis converts light energy into chemical energy.",
		"A mutex guards shared state against concurrent writes.",
	}
}
