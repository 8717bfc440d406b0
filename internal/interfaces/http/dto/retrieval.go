package dto

import "consultor-ai-api/internal/domain/entity"

// SearchRequest 检索调试请求
type SearchRequest struct {
	Query            string `json:"query" binding:"required"`
	TopK             int    `json:"top_k,omitempty" binding:"omitempty,min=1,max=50"`
	Framework        string `json:"framework,omitempty" binding:"omitempty,oneof=People Strategy Execution Cash"`
	Language         string `json:"language,omitempty"`
	IncludeEmbedding bool   `json:"include_embedding,omitempty"`
}

// SearchResultDTO 单条检索结果
type SearchResultDTO struct {
	DocID           string   `json:"doc_id"`
	ChunkID         string   `json:"chunk_id"`
	Title           string   `json:"title"`
	Text            string   `json:"text_clean"`
	Topics          []string `json:"topics"`
	Framework       string   `json:"framework"`
	SimilarityScore float64  `json:"similarity_score"`
	RelevanceReason string   `json:"relevance_reason"`
}

// SearchResponse 检索调试响应
type SearchResponse struct {
	Results        []SearchResultDTO `json:"results"`
	QueryEmbedding []float64         `json:"query_embedding,omitempty"`
	TotalCandidates int              `json:"total_candidates"`
}

// NewSearchResults 转换检索结果列表
func NewSearchResults(results []entity.SearchResult) []SearchResultDTO {
	out := make([]SearchResultDTO, 0, len(results))
	for _, r := range results {
		out = append(out, SearchResultDTO{
			DocID:           r.DocID,
			ChunkID:         r.ChunkID,
			Title:           r.Title,
			Text:            r.Text,
			Topics:          r.Topics,
			Framework:       string(r.Framework),
			SimilarityScore: r.SimilarityScore,
			RelevanceReason: r.RelevanceReason,
		})
	}
	return out
}
