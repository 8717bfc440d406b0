package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"consultor-ai-api/internal/domain/entity"
)

func peopleChunk() entity.KnowledgeChunk {
	return entity.KnowledgeChunk{
		DocID:     "people_leadership_001",
		ChunkID:   "chunk_001",
		Title:     "Liderazgo y A-Players",
		Text:      "Los A-players son fundamentales para el crecimiento del equipo.",
		Topics:    []string{"liderazgo", "contratación"},
		Framework: entity.FrameworkPeople,
		KeyTerms:  []string{"a-players", "equipo"},
		Embedding: []float64{0.8, 0.6, 0.9, 0.7, 0.5},
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "identical", a: []float64{1, 0, 0}, b: []float64{1, 0, 0}, want: 1},
		{name: "orthogonal", a: []float64{1, 0, 0}, b: []float64{0, 1, 0}, want: 0},
		{name: "zero vector", a: []float64{0, 0, 0}, b: []float64{1, 1, 1}, want: 0},
		{name: "length mismatch", a: []float64{1, 0}, b: []float64{1, 0, 0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestScoreCombination(t *testing.T) {
	s := NewScorer(NewEmbedder())

	// 查询同时命中主题、关键术语和支柱加成词
	score, reason := s.Score("liderazgo equipo", peopleChunk())

	assert.Greater(t, score, ScoreThreshold)
	// 未重归一化，理论上可超过 1.0，但组合权重保证有上界
	assert.LessOrEqual(t, score, 1.2)
	assert.Contains(t, reason, "Coincide en temas")
}

func TestScoreFrameworkBoost(t *testing.T) {
	s := NewScorer(NewEmbedder())
	chunk := peopleChunk()

	boosted, _ := s.Score("contratar gente nueva", chunk)
	plain, _ := s.Score("temas generales cualquiera", chunk)

	// "contratar" 是 People 加成词，0.2·0.3 的固定差值
	assert.Greater(t, boosted, plain)
}

func TestScoreDefaultEmbedding(t *testing.T) {
	s := NewScorer(NewEmbedder())
	chunk := peopleChunk()
	chunk.Embedding = nil

	score, _ := s.Score("equipo", chunk)
	assert.Greater(t, score, 0.0)
}

func TestRelevanceReasonPriority(t *testing.T) {
	chunk := peopleChunk()

	// 主题命中优先
	reason := relevanceReason("liderazgo", chunk, 0.9)
	assert.Contains(t, reason, "Coincide en temas: liderazgo")

	// 无主题命中时取关键术语
	reason = relevanceReason("a-players", chunk, 0.9)
	assert.Contains(t, reason, "Términos relevantes: a-players")

	// 都未命中但组合评分高
	reason = relevanceReason("xyz", chunk, 0.85)
	assert.Contains(t, reason, "Alta similitud semántica (85%)")

	// 兜底
	reason = relevanceReason("xyz", chunk, 0.1)
	assert.Equal(t, "Relacionado con framework People", reason)
}

func TestKeywordOverlapBidirectional(t *testing.T) {
	chunk := peopleChunk()

	// "player" 是 "a-players" 的子串，反向匹配也算命中
	assert.Equal(t, 1.0, keywordOverlap("players", chunk))
	assert.Equal(t, 0.0, keywordOverlap("zzz", chunk))
	assert.Equal(t, 0.0, keywordOverlap("", chunk))
}
