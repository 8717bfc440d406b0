package retrieval

import "consultor-ai-api/internal/domain/entity"

const (
	// ScoreThreshold 入选最低组合评分
	ScoreThreshold = 0.3
	// MaxSelected 选段数量上限
	MaxSelected = 6
	// degradedTopK 全部低于阈值时的兜底返回数量
	degradedTopK = 3
	// frameworkRelaxLimit 前几个席位放宽支柱去重约束
	frameworkRelaxLimit = 4
)

// Selector 多样性选段器。输入必须已按组合评分降序排序。
type Selector struct{}

// NewSelector 创建选段器
func NewSelector() *Selector {
	return &Selector{}
}

// Select 两遍贪心选段：
// 先按支柱去重（前 frameworkRelaxLimit 个席位放宽），
// 再用来源文档未出现过的条目补满；任何情况下不超过 MaxSelected。
// 全部低于阈值时退化为未过滤列表的前 degradedTopK 条，保证有选段可用。
func (s *Selector) Select(results []entity.SearchResult) []entity.SearchResult {
	if len(results) == 0 {
		return nil
	}

	filtered := make([]entity.SearchResult, 0, len(results))
	for _, r := range results {
		if r.SimilarityScore >= ScoreThreshold {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 0 {
		n := degradedTopK
		if len(results) < n {
			n = len(results)
		}
		out := make([]entity.SearchResult, n)
		copy(out, results[:n])
		return out
	}

	selected := make([]entity.SearchResult, 0, MaxSelected)
	usedFrameworks := make(map[entity.Framework]bool)
	usedDocs := make(map[string]bool)
	taken := make(map[string]bool)

	for _, r := range filtered {
		if len(selected) >= MaxSelected {
			break
		}
		if !usedFrameworks[r.Framework] || len(selected) < frameworkRelaxLimit {
			selected = append(selected, r)
			usedFrameworks[r.Framework] = true
			usedDocs[r.DocID] = true
			taken[r.ChunkID] = true
		}
	}

	for _, r := range filtered {
		if len(selected) >= MaxSelected {
			break
		}
		if taken[r.ChunkID] || usedDocs[r.DocID] {
			continue
		}
		selected = append(selected, r)
		usedDocs[r.DocID] = true
		taken[r.ChunkID] = true
	}

	return selected
}
