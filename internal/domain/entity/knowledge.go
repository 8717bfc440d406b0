// Package entity 定义领域实体
package entity

// Framework 业务咨询四大支柱（领域术语，非软件框架）
type Framework string

const (
	FrameworkPeople    Framework = "People"
	FrameworkStrategy  Framework = "Strategy"
	FrameworkExecution Framework = "Execution"
	FrameworkCash      Framework = "Cash"
)

// Frameworks 固定顺序的全部支柱
var Frameworks = []Framework{FrameworkPeople, FrameworkStrategy, FrameworkExecution, FrameworkCash}

// EmbeddingDim 启发式向量的固定维度
const EmbeddingDim = 5

// DefaultEmbedding 返回缺省向量（目录条目缺失预计算向量时惰性赋值）
func DefaultEmbedding() []float64 {
	return []float64{0.5, 0.5, 0.5, 0.5, 0.5}
}

// KnowledgeChunk 知识库条目。进程启动时从固定目录加载，此后不可变，
// 仅允许对缺失的 Embedding 做一次惰性缺省赋值。
type KnowledgeChunk struct {
	DocID     string    `json:"doc_id"`
	ChunkID   string    `json:"chunk_id"`
	Title     string    `json:"title"`
	Text      string    `json:"text_clean"`
	TStart    int       `json:"t_start"`
	TEnd      int       `json:"t_end"`
	Topics    []string  `json:"topics"`
	Framework Framework `json:"framework"`
	KeyTerms  []string  `json:"key_terms"`
	Stage     string    `json:"stage,omitempty"`
	Language  string    `json:"language"`
	Embedding []float64 `json:"embedding,omitempty"`
}

// SearchResult 单次查询的评分结果，响应合成后即丢弃
type SearchResult struct {
	KnowledgeChunk
	SimilarityScore float64 `json:"similarity_score"`
	RelevanceReason string  `json:"relevance_reason"`
}

// Citation 面向用户的引用记录，每次响应派生一组
type Citation struct {
	Source    string  `json:"source"`
	Timestamp string  `json:"timestamp"`
	Relevance float64 `json:"relevance,omitempty"`
	Framework string  `json:"framework,omitempty"`
	Context   string  `json:"context,omitempty"`
}
