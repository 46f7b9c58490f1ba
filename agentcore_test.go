package agentcore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/agentcore/rag"
	"github.com/BaSui01/agentcore/testutil/fixtures"
	"github.com/BaSui01/agentcore/testutil/mocks"
)

func TestNew_RequiresProvider(t *testing.T) {
	_, err := New()
	assert.Error(t, err)
}

func TestNew_RetrievalOverInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := rag.NewInMemoryVectorStore()
	for _, doc := range fixtures.Corpus() {
		require.NoError(t, store.Add(ctx, doc, nil))
	}

	p := mocks.NewMockProvider().WithEcho()
	a, err := New(WithProvider(p), WithStore(store), WithRetrieval(1, 256))
	require.NoError(t, err)

	resp, err := a.Execute(ctx, "Where is the Eiffel Tower located?")
	require.NoError(t, err)
	assert.Contains(t, resp.Result, "Eiffel Tower")
	assert.Contains(t, p.LastTask(), "Task: Where is the Eiffel Tower located?")
}
