package retrieval

import (
	"fmt"
	"math"
	"strings"

	"consultor-ai-api/internal/domain/entity"
)

// 组合评分权重：0.4·语义 + 0.4·关键词 + 0.2·支柱加成。
// 结果不再归一化，极端情况下可略超 1.0；下游只做相对排序，保持原样。
const (
	semanticWeight  = 0.4
	keywordWeight   = 0.4
	boostWeight     = 0.2
	frameworkBoost  = 0.3
	highSimilarity  = 0.7
)

// 支柱加成关键词：查询小写后做子串匹配
var boostKeywords = map[entity.Framework][]string{
	entity.FrameworkPeople:    {"equipo", "liderazgo", "cultura", "contratar", "delegar", "personas"},
	entity.FrameworkStrategy:  {"estrategia", "valor", "cliente", "nicho", "bhag", "posicionamiento"},
	entity.FrameworkExecution: {"proceso", "kpi", "junta", "l10", "scorecard", "ejecución"},
	entity.FrameworkCash:      {"cash", "flujo", "dinero", "precio", "cobranza", "efectivo"},
}

// Scorer 组合相似度评分器
type Scorer struct {
	embedder *Embedder
}

// NewScorer 创建评分器
func NewScorer(embedder *Embedder) *Scorer {
	return &Scorer{embedder: embedder}
}

// Score 计算查询与条目的组合评分及相关性说明
func (s *Scorer) Score(query string, chunk entity.KnowledgeChunk) (float64, string) {
	queryEmbedding := s.embedder.Embed(query)
	return s.scoreWithEmbedding(query, queryEmbedding, chunk)
}

// scoreWithEmbedding 允许复用已计算的查询向量（批量评分路径）
func (s *Scorer) scoreWithEmbedding(query string, queryEmbedding []float64, chunk entity.KnowledgeChunk) (float64, string) {
	embedding := chunk.Embedding
	if len(embedding) == 0 {
		embedding = entity.DefaultEmbedding()
	}

	semantic := CosineSimilarity(queryEmbedding, embedding)
	keyword := keywordOverlap(query, chunk)

	var boost float64
	if hasFrameworkKeyword(query, chunk.Framework) {
		boost = frameworkBoost
	}

	combined := semantic*semanticWeight + keyword*keywordWeight + boost*boostWeight
	return combined, relevanceReason(query, chunk, combined)
}

// CosineSimilarity 余弦相似度；任一向量模为零时定义为 0
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// keywordOverlap 查询分词对条目 key_terms ∪ topics ∪ 正文分词的
// 双向子串匹配比例
func keywordOverlap(query string, chunk entity.KnowledgeChunk) float64 {
	queryWords := strings.Fields(strings.ToLower(query))
	if len(queryWords) == 0 {
		return 0
	}

	chunkWords := make([]string, 0, len(chunk.KeyTerms)+len(chunk.Topics))
	chunkWords = append(chunkWords, chunk.KeyTerms...)
	chunkWords = append(chunkWords, chunk.Topics...)
	chunkWords = append(chunkWords, strings.Fields(strings.ToLower(chunk.Text))...)

	matches := 0
	for _, word := range queryWords {
		for _, cw := range chunkWords {
			if strings.Contains(cw, word) || strings.Contains(word, cw) {
				matches++
				break
			}
		}
	}
	return float64(matches) / float64(len(queryWords))
}

func hasFrameworkKeyword(query string, framework entity.Framework) bool {
	queryLower := strings.ToLower(query)
	for _, kw := range boostKeywords[framework] {
		if strings.Contains(queryLower, kw) {
			return true
		}
	}
	return false
}

// relevanceReason 相关性说明，按优先级：
// 主题命中 > 关键术语命中 > 高语义相似 > 支柱相关兜底
func relevanceReason(query string, chunk entity.KnowledgeChunk, combined float64) string {
	queryWords := strings.Fields(strings.ToLower(query))

	var matchingTopics []string
	for _, topic := range chunk.Topics {
		if containsAnyWord(topic, queryWords) {
			matchingTopics = append(matchingTopics, topic)
		}
	}
	if len(matchingTopics) > 0 {
		return fmt.Sprintf("Coincide en temas: %s", strings.Join(matchingTopics, ", "))
	}

	var matchingTerms []string
	for _, term := range chunk.KeyTerms {
		if containsAnyWord(term, queryWords) {
			matchingTerms = append(matchingTerms, term)
		}
	}
	if len(matchingTerms) > 0 {
		return fmt.Sprintf("Términos relevantes: %s", strings.Join(matchingTerms, ", "))
	}

	if combined > highSimilarity {
		return fmt.Sprintf("Alta similitud semántica (%d%%)", int(math.Round(combined*100)))
	}
	return fmt.Sprintf("Relacionado con framework %s", chunk.Framework)
}

func containsAnyWord(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
