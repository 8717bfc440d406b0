package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consultor-ai-api/internal/domain/entity"
)

func TestBuildCitationsFormat(t *testing.T) {
	passages := []entity.SearchResult{
		{
			KnowledgeChunk: entity.KnowledgeChunk{
				DocID:     "people_leadership_001",
				ChunkID:   "chunk_001",
				TStart:    245,
				Framework: entity.FrameworkPeople,
			},
			SimilarityScore: 0.82,
			RelevanceReason: "Coincide en temas: liderazgo",
		},
	}

	citations := buildCitations(passages)
	require.Len(t, citations, 1)

	// doc_id 去下划线、去数字、逐词首字母大写
	assert.Equal(t, "People - People Leadership", citations[0].Source)
	// 245s → 04:05
	assert.Equal(t, "04:05", citations[0].Timestamp)
	assert.Equal(t, 0.82, citations[0].Relevance)
	assert.Equal(t, "People", citations[0].Framework)
	assert.Equal(t, "Coincide en temas: liderazgo", citations[0].Context)
}

func TestBuildCitationsCapsAtFour(t *testing.T) {
	var passages []entity.SearchResult
	for i := 0; i < 6; i++ {
		passages = append(passages, entity.SearchResult{
			KnowledgeChunk: entity.KnowledgeChunk{DocID: "cash_flow_001", Framework: entity.FrameworkCash},
		})
	}

	assert.Len(t, buildCitations(passages), maxCitations)
}

func TestBuildCitationsEmpty(t *testing.T) {
	assert.Nil(t, buildCitations(nil))
}

func TestTitleizeDocID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "people_leadership_001", want: "People Leadership"},
		{in: "strategy_value_prop_001", want: "Strategy Value Prop"},
		{in: "cash_flow_001", want: "Cash Flow"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, titleizeDocID(tt.in))
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "00:00", formatTimestamp(0))
	assert.Equal(t, "04:05", formatTimestamp(245))
	assert.Equal(t, "13:09", formatTimestamp(789))
	assert.Equal(t, "00:00", formatTimestamp(-7))
}
