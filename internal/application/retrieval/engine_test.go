package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consultor-ai-api/internal/domain/entity"
	"consultor-ai-api/internal/infrastructure/knowledge"
)

func TestSearchSortsDescending(t *testing.T) {
	e := NewEngine(knowledge.NewRepository())

	out, err := e.Search(context.Background(), SearchInput{Query: "cómo mejorar el liderazgo de mi equipo"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Results)

	for i := 1; i < len(out.Results); i++ {
		assert.GreaterOrEqual(t, out.Results[i-1].SimilarityScore, out.Results[i].SimilarityScore)
	}
}

func TestSearchFrameworkFilter(t *testing.T) {
	e := NewEngine(knowledge.NewRepository())

	out, err := e.Search(context.Background(), SearchInput{
		Query:     "flujo de efectivo",
		Framework: entity.FrameworkCash,
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Results)

	for _, r := range out.Results {
		assert.Equal(t, entity.FrameworkCash, r.Framework)
	}
}

func TestSearchTopKBounds(t *testing.T) {
	e := NewEngine(knowledge.NewRepository())

	out, err := e.Search(context.Background(), SearchInput{Query: "equipo", TopK: 2})
	require.NoError(t, err)
	assert.Len(t, out.Results, 2)
}

func TestSearchEmptyQuery(t *testing.T) {
	e := NewEngine(knowledge.NewRepository())

	_, err := e.Search(context.Background(), SearchInput{Query: "   "})
	assert.Error(t, err)
}

func TestSearchIncludeEmbedding(t *testing.T) {
	e := NewEngine(knowledge.NewRepository())

	out, err := e.Search(context.Background(), SearchInput{Query: "equipo", IncludeEmbedding: true})
	require.NoError(t, err)
	assert.Len(t, out.QueryEmbedding, entity.EmbeddingDim)
}

func TestSelectPassagesNeverExceedsCap(t *testing.T) {
	e := NewEngine(knowledge.NewRepository())

	passages, err := e.SelectPassages(context.Background(), SearchInput{Query: "estrategia de equipo con kpi y cash"})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(passages), MaxSelected)
	assert.NotEmpty(t, passages)
}

func TestSimilarChunks(t *testing.T) {
	e := NewEngine(knowledge.NewRepository())

	results, err := e.SimilarChunks(context.Background(), "chunk_001")
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, r := range results {
		assert.NotEqual(t, "chunk_001", r.ChunkID)
	}
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].SimilarityScore, results[i].SimilarityScore)
	}
}

func TestSimilarChunksUnknownID(t *testing.T) {
	e := NewEngine(knowledge.NewRepository())

	_, err := e.SimilarChunks(context.Background(), "chunk_999")
	assert.Error(t, err)
}
