package rag

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"pgregory.net/rapid"
)

// ============================================================
// Basic behavior
// ============================================================

func TestInMemoryVectorStore_AddThenSearch(t *testing.T) {
	store := NewInMemoryVectorStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "doc1", map[string]any{}))

	results, err := store.Search(ctx, "doc1", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "doc1", results[0].Text)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
}

func TestInMemoryVectorStore_EmptyStore(t *testing.T) {
	results, err := NewInMemoryVectorStore().Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestInMemoryVectorStore_ZeroAndNegativeLimit(t *testing.T) {
	store := NewInMemoryVectorStore()
	require.NoError(t, store.Add(context.Background(), "hello", nil))

	for _, limit := range []int{0, -1} {
		results, err := store.Search(context.Background(), "hello", limit)
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	}
}

func TestInMemoryVectorStore_RanksRelevantFirst(t *testing.T) {
	store := NewInMemoryVectorStore()
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "Quarterly revenue grew by ten percent", map[string]any{"id": 1}))
	require.NoError(t, store.Add(ctx, "The cat sat on the mat", map[string]any{"id": 2}))
	require.NoError(t, store.Add(ctx, "A dog chased the mouse", map[string]any{"id": 3}))

	results, err := store.Search(ctx, "cat sat on the mat", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 2, results[0].Metadata["id"])
	assert.Greater(t, results[0].Score, 0.5)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestInMemoryVectorStore_TiesKeepInsertionOrder(t *testing.T) {
	store := NewInMemoryVectorStore()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Add(ctx, "same text", map[string]any{"i": i}))
	}

	results, err := store.Search(ctx, "same text", 5)
	require.NoError(t, err)
	for i, r := range results {
		assert.Equal(t, i, r.Metadata["i"])
	}
}

func TestInMemoryVectorStore_MetadataIsCopied(t *testing.T) {
	store := NewInMemoryVectorStore()
	meta := map[string]any{"source": "a"}
	require.NoError(t, store.Add(context.Background(), "text", meta))
	meta["source"] = "mutated"

	results, err := store.Search(context.Background(), "text", 1)
	require.NoError(t, err)
	assert.Equal(t, "a", results[0].Metadata["source"])

	results[0].Metadata["source"] = "changed by caller"
	again, _ := store.Search(context.Background(), "text", 1)
	assert.Equal(t, "a", again[0].Metadata["source"])
}

func TestInMemoryVectorStore_Documents(t *testing.T) {
	store := NewInMemoryVectorStore(WithDimensions(64))
	require.NoError(t, store.Add(context.Background(), "one", nil))
	require.NoError(t, store.Add(context.Background(), "two", nil))

	docs := store.Documents()
	require.Len(t, docs, 2)
	assert.Equal(t, 2, store.Count())
	assert.NotEqual(t, docs[0].ID, docs[1].ID)
	assert.Len(t, docs[0].ID, 36)
	assert.False(t, docs[0].AddedAt.IsZero())
	assert.Nil(t, docs[0].embedding)
}

type constEmbedder struct{}

func (constEmbedder) Embed(string) []float64 { return []float64{1, 0} }

func TestInMemoryVectorStore_WithEmbedder(t *testing.T) {
	store := NewInMemoryVectorStore(WithEmbedder(constEmbedder{}))
	require.NoError(t, store.Add(context.Background(), "x", nil))

	results, err := store.Search(context.Background(), "completely different", 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, results[0].Score, 1e-12)
}

// ============================================================
// Concurrency
// ============================================================

func TestInMemoryVectorStore_ConcurrentAddAndSearch(t *testing.T) {
	store := NewInMemoryVectorStore()
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			return store.Add(ctx, fmt.Sprintf("document number %d", i), map[string]any{"i": i})
		})
		g.Go(func() error {
			results, err := store.Search(ctx, "document", 10)
			if err != nil {
				return err
			}
			if len(results) > 10 {
				return fmt.Errorf("got %d results", len(results))
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 50, store.Count())
}

// ============================================================
// Properties
// ============================================================

func TestInMemoryVectorStore_SearchLengthProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store := NewInMemoryVectorStore()
		ctx := context.Background()

		n := rapid.IntRange(0, 20).Draw(rt, "n")
		for i := 0; i < n; i++ {
			text := rapid.StringMatching(`[a-z ]{0,30}`).Draw(rt, "text")
			if err := store.Add(ctx, text, nil); err != nil {
				rt.Fatalf("add: %v", err)
			}
		}

		query := rapid.String().Draw(rt, "query")
		limit := rapid.IntRange(-5, 30).Draw(rt, "limit")

		results, err := store.Search(ctx, query, limit)
		if err != nil {
			rt.Fatalf("search: %v", err)
		}
		if results == nil {
			rt.Fatalf("nil results")
		}

		want := limit
		if want < 0 {
			want = 0
		}
		if want > n {
			want = n
		}
		if len(results) != want {
			rt.Fatalf("len = %d, want %d", len(results), want)
		}
		for i, r := range results {
			if r.Score < 0 || r.Score > 1 || math.IsNaN(r.Score) {
				rt.Fatalf("score %v out of range", r.Score)
			}
			if i > 0 && results[i-1].Score < r.Score {
				rt.Fatalf("results not sorted at %d", i)
			}
		}
	})
}

func TestHashingEmbedder_UnitNormProperty(t *testing.T) {
	e := NewHashingEmbedder(0)
	require.Equal(t, DefaultDimensions, e.Dimensions())

	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[A-Za-z0-9]{1,10}( [A-Za-z0-9]{1,10}){0,8}`).Draw(rt, "text")
		vec := e.Embed(text)

		var sq float64
		for _, v := range vec {
			sq += v * v
		}
		if math.Abs(sq-1) > 1e-9 {
			rt.Fatalf("norm^2 = %v", sq)
		}
		if s := CosineSimilarity(vec, e.Embed(text)); math.Abs(s-1) > 1e-9 {
			rt.Fatalf("self similarity = %v", s)
		}
	})
}

func TestCosineSimilarity_EdgeCases(t *testing.T) {
	assert.Zero(t, CosineSimilarity(nil, nil))
	assert.Zero(t, CosineSimilarity([]float64{1}, []float64{1, 0}))
	assert.Zero(t, CosineSimilarity([]float64{0, 0}, []float64{1, 0}))
	assert.Zero(t, CosineSimilarity([]float64{1, 0}, []float64{-1, 0}), "negative similarity clamps to 0")
	assert.Equal(t, []string{"hello", "wörld", "42"}, Tokenize("Hello, Wörld! 42"))
}
