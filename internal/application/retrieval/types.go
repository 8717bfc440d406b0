package retrieval

import "consultor-ai-api/internal/domain/entity"

// SearchInput 知识检索输入。
type SearchInput struct {
	Query string
	TopK  int

	// Framework 非空时仅检索该支柱的条目
	Framework entity.Framework
	// Language 非空时仅检索该语言的条目
	Language string

	// IncludeEmbedding 为 true 时在输出中携带查询向量（调试用）
	IncludeEmbedding bool
}

// SearchOutput 知识检索输出。
type SearchOutput struct {
	Results []entity.SearchResult

	QueryEmbedding []float64
	Debug          *DebugInfo
}

// DebugInfo 检索调试信息
type DebugInfo struct {
	TotalCandidates    int
	FilteredCandidates int
	ScoringTimeMs      int64
}
