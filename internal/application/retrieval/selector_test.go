package retrieval

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consultor-ai-api/internal/domain/entity"
)

func result(docID string, framework entity.Framework, score float64) entity.SearchResult {
	return entity.SearchResult{
		KnowledgeChunk: entity.KnowledgeChunk{
			DocID:     docID,
			ChunkID:   fmt.Sprintf("%s_%f", docID, score),
			Framework: framework,
		},
		SimilarityScore: score,
	}
}

func TestSelectFiltersAndSorts(t *testing.T) {
	s := NewSelector()

	input := []entity.SearchResult{
		result("doc_a", entity.FrameworkPeople, 0.9),
		result("doc_b", entity.FrameworkStrategy, 0.85),
		result("doc_c", entity.FrameworkExecution, 0.4),
		result("doc_d", entity.FrameworkCash, 0.2),
		result("doc_e", entity.FrameworkPeople, 0.1),
	}

	selected := s.Select(input)

	// 只有 ≥0.3 的三条入选，保持降序
	require.Len(t, selected, 3)
	assert.Equal(t, 0.9, selected[0].SimilarityScore)
	assert.Equal(t, 0.85, selected[1].SimilarityScore)
	assert.Equal(t, 0.4, selected[2].SimilarityScore)
}

func TestSelectDegradesToTopThree(t *testing.T) {
	s := NewSelector()

	input := []entity.SearchResult{
		result("doc_a", entity.FrameworkPeople, 0.25),
		result("doc_b", entity.FrameworkStrategy, 0.2),
		result("doc_c", entity.FrameworkExecution, 0.15),
		result("doc_d", entity.FrameworkCash, 0.1),
	}

	// 全部低于阈值时退化为前 3 条而非空结果
	selected := s.Select(input)
	require.Len(t, selected, 3)
	assert.Equal(t, "doc_a", selected[0].DocID)
	assert.Equal(t, "doc_c", selected[2].DocID)
}

func TestSelectDegradedFewerThanThree(t *testing.T) {
	s := NewSelector()

	input := []entity.SearchResult{
		result("doc_a", entity.FrameworkPeople, 0.1),
	}
	selected := s.Select(input)
	require.Len(t, selected, 1)
}

func TestSelectEmpty(t *testing.T) {
	s := NewSelector()
	assert.Nil(t, s.Select(nil))
}

func TestSelectCapsAtSix(t *testing.T) {
	s := NewSelector()

	var input []entity.SearchResult
	for i := 0; i < 10; i++ {
		input = append(input, result(fmt.Sprintf("doc_%d", i), entity.FrameworkStrategy, 0.9-float64(i)*0.01))
	}

	selected := s.Select(input)
	assert.LessOrEqual(t, len(selected), MaxSelected)
}

func TestSelectFrameworkDiversity(t *testing.T) {
	s := NewSelector()

	// 同一支柱霸榜时，前 4 个席位放宽，其后必须换支柱或换文档
	input := []entity.SearchResult{
		result("doc_a", entity.FrameworkPeople, 0.9),
		result("doc_b", entity.FrameworkStrategy, 0.88),
		result("doc_c", entity.FrameworkExecution, 0.86),
		result("doc_d", entity.FrameworkCash, 0.84),
		result("doc_e", entity.FrameworkPeople, 0.82),
		result("doc_f", entity.FrameworkPeople, 0.8),
	}

	selected := s.Select(input)
	require.Len(t, selected, 6)

	// 四个支柱都有候选时，前 4 条至少覆盖 2 个支柱
	frameworks := map[entity.Framework]bool{}
	for _, r := range selected[:4] {
		frameworks[r.Framework] = true
	}
	assert.GreaterOrEqual(t, len(frameworks), 2)
}

func TestSelectSecondPassSkipsUsedDocs(t *testing.T) {
	s := NewSelector()

	input := []entity.SearchResult{
		result("doc_a", entity.FrameworkPeople, 0.9),
		result("doc_a", entity.FrameworkPeople, 0.85),
		result("doc_a", entity.FrameworkPeople, 0.8),
		result("doc_a", entity.FrameworkPeople, 0.75),
		result("doc_a", entity.FrameworkPeople, 0.7),
		result("doc_b", entity.FrameworkPeople, 0.65),
	}

	selected := s.Select(input)

	// 前 4 条放宽入选；第二遍只补来源文档未出现过的 doc_b
	require.Len(t, selected, 5)
	assert.Equal(t, "doc_b", selected[4].DocID)
}
