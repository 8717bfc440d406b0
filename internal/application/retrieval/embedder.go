// Package retrieval 实现启发式向量检索管线：
// 关键词桶向量化、组合相似度评分与多样性选段。
// 刻意不接入真实 embedding 或外部向量索引——可复现的确定性评分
// 过程本身就是契约。
package retrieval

import (
	"math"
	"strings"

	"consultor-ai-api/internal/domain/entity"
)

// 各维度对应的支柱关键词（精确分词匹配）
var (
	peopleTokens    = tokenSet("liderazgo", "equipo", "cultura", "contratar", "delegar")
	strategyTokens  = tokenSet("estrategia", "valor", "cliente", "nicho", "bhag")
	executionTokens = tokenSet("proceso", "kpi", "junta", "l10", "scorecard")
	cashTokens      = tokenSet("cash", "flujo", "dinero", "precio", "cobranza")
)

const (
	frameworkWeight = 0.2
	generalWeight   = 0.1
)

// Embedder 启发式向量化器。纯函数且确定：相同文本恒产生相同向量，
// 既用于查询也用于目录条目。
type Embedder struct{}

// NewEmbedder 创建向量化器
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// Embed 将自由文本映射为固定 5 维向量。
// 维度 0-3 按 People/Strategy/Execution/Cash 关键词累加 0.2，
// 维度 4 每个分词无条件累加 0.1，最终做 L2 归一化。
func (e *Embedder) Embed(text string) []float64 {
	words := strings.Fields(strings.ToLower(text))
	embedding := make([]float64, entity.EmbeddingDim)

	for _, word := range words {
		if peopleTokens[word] {
			embedding[0] += frameworkWeight
		}
		if strategyTokens[word] {
			embedding[1] += frameworkWeight
		}
		if executionTokens[word] {
			embedding[2] += frameworkWeight
		}
		if cashTokens[word] {
			embedding[3] += frameworkWeight
		}
		embedding[4] += generalWeight
	}

	return normalize(embedding)
}

// normalize L2 归一化；全零向量原样返回，避免除零
func normalize(vec []float64) []float64 {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return vec
	}
	magnitude := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= magnitude
	}
	return vec
}

func tokenSet(tokens ...string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}
