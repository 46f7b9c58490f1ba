package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/BaSui01/agentcore/llm/tokenizer"
	"github.com/BaSui01/agentcore/types"
)

const (
	contextHeader = "Context:\n"
	taskHeader    = "\nTask: "
)

// augment 检索与任务相关的文档，按得分从高到低拼成上下文块：
//
//	Context:
//	- text
//	...
//
//	Task: {task}
//
// 上下文行的 token 总数不超过 TokenBudget；没有可用结果时返回原任务。
// 分词器出错时整次执行失败，不会悄悄丢弃上下文。
func (a *ReActAgent) augment(ctx context.Context, task string) (string, error) {
	results, err := a.store.Search(ctx, task, a.cfg.TopK)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return task, nil
	}
	if err := tokenizer.Warm(ctx, a.tok); err != nil {
		return "", types.NewNetworkError(err)
	}

	budget := tokenizer.NewBudget(a.tok, a.cfg.TokenBudget)
	var sb strings.Builder
	lines := 0
	for _, r := range results {
		line := "- " + r.Text + "\n"
		ok, err := budget.Take(line)
		if err != nil {
			return "", fmt.Errorf("count context tokens with %s: %w", a.tok.Name(), err)
		}
		if !ok {
			break
		}
		sb.WriteString(line)
		lines++
	}
	if lines == 0 {
		return task, nil
	}
	return contextHeader + sb.String() + taskHeader + task, nil
}
